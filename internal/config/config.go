// Package config loads the YAML run configuration. Every field has a
// default, so a missing file is equivalent to an empty one.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/sysbench/internal/bench"
	"github.com/utkarsh5026/sysbench/pool"
)

// Summary formats accepted by Output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

var outputs = []string{OutputTable, OutputJSON}

// Config is the run configuration. Command-line flags override it.
type Config struct {
	Workloads   Workloads     `yaml:"workloads"`
	Delay       time.Duration `yaml:"delay"`
	TempDir     string        `yaml:"temp_dir"`
	Output      string        `yaml:"output"`
	MetricsFile string        `yaml:"metrics_file"`
	LogLevel    string        `yaml:"log_level"`
	Pool        Pool          `yaml:"pool"`
}

// Workloads narrows the catalog. An empty Only list means every workload;
// Skip is applied after Only.
type Workloads struct {
	Only []string `yaml:"only"`
	Skip []string `yaml:"skip"`
}

// Pool sizes the worker pool used by the multi-core workload. Zero Workers
// means one per logical core.
type Pool struct {
	Workers  int  `yaml:"workers"`
	Affinity bool `yaml:"affinity"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Delay:    bench.DefaultDelay,
		Output:   OutputTable,
		LogLevel: "warn",
	}
}

// Load reads path over the defaults. An empty or missing path yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if !slices.Contains(outputs, c.Output) {
		return fmt.Errorf("output must be one of %v, got %q", outputs, c.Output)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", c.Delay)
	}
	if c.Pool.Workers < 0 {
		return fmt.Errorf("pool workers must not be negative, got %d", c.Pool.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Selection applies Workloads to catalog.
func (c *Config) Selection(catalog []bench.Descriptor) (bench.Selection, error) {
	sel := bench.SelectAll(len(catalog))
	if len(c.Workloads.Only) > 0 {
		var err error
		if sel, err = bench.SelectIDs(catalog, c.Workloads.Only...); err != nil {
			return nil, fmt.Errorf("workloads.only: %w", err)
		}
	}

	sel, err := sel.Without(catalog, c.Workloads.Skip...)
	if err != nil {
		return nil, fmt.Errorf("workloads.skip: %w", err)
	}
	return sel, nil
}

// PoolOptions translates the pool section into worker pool options.
func (c *Config) PoolOptions() []pool.WorkerPoolOption {
	var opts []pool.WorkerPoolOption
	if c.Pool.Workers > 0 {
		opts = append(opts, pool.WithWorkerCount(c.Pool.Workers))
	}
	if c.Pool.Affinity {
		opts = append(opts, pool.WithCPUAffinity())
	}
	return opts
}
