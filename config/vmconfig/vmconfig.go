// Package vmconfig is the VM's ambient tuning configuration: memory size,
// interrupt nesting depth, assembler include search path, and debug-trace
// toggles. None of this is part of the core VM contract (a CPU/Memory/ISA
// can be built directly without it); it exists for the embedding
// environment to size and configure a machine without recompiling.
package vmconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk TOML shape.
type Config struct {
	Memory struct {
		DefaultSize uint32 `toml:"default_size"`
	} `toml:"memory"`

	Interrupts struct {
		MaxNesting uint8 `toml:"max_nesting"`
	} `toml:"interrupts"`

	Assembler struct {
		IncludePaths []string `toml:"include_paths"`
	} `toml:"assembler"`

	Debug struct {
		TraceCycles     bool `toml:"trace_cycles"`
		TraceInterrupts bool `toml:"trace_interrupts"`
		TraceAssembler  bool `toml:"trace_assembler"`
	} `toml:"debug"`
}

// DefaultConfig returns a Config with the VM's built-in defaults: 64KiB of
// main memory, a nesting depth of 4, no extra include paths, and tracing off.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Memory.DefaultSize = 64 * 1024
	cfg.Interrupts.MaxNesting = 4
	cfg.Assembler.IncludePaths = nil
	cfg.Debug.TraceCycles = false
	cfg.Debug.TraceInterrupts = false
	cfg.Debug.TraceAssembler = false
	return cfg
}

// LoadFrom reads and parses a TOML config file at path, falling back to
// DefaultConfig if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("vmconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo writes cfg to path as TOML, creating parent directories as needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("vmconfig: create directory %s: %w", dir, err)
	}

	f, err := os.Create(path) // #nosec G304 -- caller-provided config path
	if err != nil {
		return fmt.Errorf("vmconfig: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("vmconfig: encode %s: %w", path, err)
	}
	return nil
}
