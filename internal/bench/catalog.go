package bench

import "slices"

// CPUUsageID is the one workload whose measured value is a percentage
// rather than seconds.
const CPUUsageID = "cpu_usage"

var catalog = []Descriptor{
	{ID: "single_core", Label: "Single-core calculation", Run: singleCore},
	{ID: "multi_core", Label: "Multi-core calculation", Run: multiCore},
	{ID: CPUUsageID, Label: "CPU Usage (%)", Run: cpuUsage},
	{ID: "float_matrix", Label: "Floating Point Operations (Matrix)", Run: floatMatrix},
	{ID: "memory_read", Label: "Memory Read Performance", Run: memoryRead},
	{ID: "thread_switching", Label: "Thread Switching Performance", Run: emptyLoop},
	{ID: "disk_write", Label: "Disk I/O (Write Speed)", Run: diskWrite},
	{ID: "random_numbers", Label: "Random Number Generation", Run: randomNumbers},
	{ID: "latency", Label: "Latency Test", Run: latency},
	{ID: "matrix_inverse", Label: "Matrix Operations (Inverse)", Run: matrixInverse},
	{ID: "prime_generation", Label: "Prime Number Generation", Run: primeGeneration},
	{ID: "sorting", Label: "Sorting Algorithm Performance", Run: sorting},
	{ID: "compression", Label: "Compression Test (zlib)", Run: compression},
	{ID: "decompression", Label: "Decompression Test (zlib)", Run: decompression},
	{ID: "hashing", Label: "SHA256 Hashing Performance", Run: hashing},
	{ID: "file_read", Label: "File Read Performance", Run: fileRead},
	{ID: "file_write", Label: "File Write Performance", Run: fileWrite},
	{ID: "memory_allocation", Label: "Memory Allocation Speed", Run: memoryAllocation},
	{ID: "context_switch", Label: "Context Switching", Run: emptyLoop},
	{ID: "task_switching", Label: "CPU Task Switching Latency", Run: emptyLoop},
}

// Catalog returns the workloads in execution order. The slice is a copy.
func Catalog() []Descriptor {
	return slices.Clone(catalog)
}

// IndexOf returns the position of id in catalog, or -1.
func IndexOf(catalog []Descriptor, id string) int {
	return slices.IndexFunc(catalog, func(d Descriptor) bool {
		return d.ID == id
	})
}

// IDs returns the workload ids of catalog in order.
func IDs(catalog []Descriptor) []string {
	ids := make([]string, len(catalog))
	for i, d := range catalog {
		ids[i] = d.ID
	}
	return ids
}
