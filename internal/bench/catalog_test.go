package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Order(t *testing.T) {
	want := []string{
		"single_core",
		"multi_core",
		"cpu_usage",
		"float_matrix",
		"memory_read",
		"thread_switching",
		"disk_write",
		"random_numbers",
		"latency",
		"matrix_inverse",
		"prime_generation",
		"sorting",
		"compression",
		"decompression",
		"hashing",
		"file_read",
		"file_write",
		"memory_allocation",
		"context_switch",
		"task_switching",
	}

	assert.Equal(t, want, IDs(Catalog()))
}

func TestCatalog_Entries(t *testing.T) {
	c := Catalog()
	seen := make(map[string]bool, len(c))
	for _, d := range c {
		assert.NotEmpty(t, d.Label, "label for %s", d.ID)
		assert.NotNil(t, d.Run, "run for %s", d.ID)
		assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
	}

	assert.Equal(t, "Single-core calculation", c[0].Label)
	assert.Equal(t, "CPU Task Switching Latency", c[19].Label)
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	c := Catalog()
	c[0] = Descriptor{ID: "mutated"}

	require.Equal(t, "single_core", Catalog()[0].ID)
}

func TestIndexOf(t *testing.T) {
	c := Catalog()
	assert.Equal(t, 0, IndexOf(c, "single_core"))
	assert.Equal(t, 10, IndexOf(c, "prime_generation"))
	assert.Equal(t, -1, IndexOf(c, "missing"))
}
