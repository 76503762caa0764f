package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configName = "wrangle.toml"

// Target names accepted in the targets list.
const (
	targetGo         = "go"
	targetCXX        = "cxx"
	targetDescriptor = "descriptor"
)

// Config is the contents of a wrangle.toml file. Relative paths are
// resolved against Dir.
type Config struct {
	Schema     string   `toml:"schema"`
	Output     string   `toml:"output"`
	Package    string   `toml:"package"`
	Targets    []string `toml:"targets"`
	CXXHeader  string   `toml:"cxx-header"`
	CXXContext string   `toml:"cxx-context"`
	Descriptor string   `toml:"descriptor"`
	Lock       string   `toml:"lock"`

	Format        bool     `toml:"format"`
	FormatCommand []string `toml:"format-command"`
	FormatPattern string   `toml:"format-pattern"`

	// Dir is the directory containing the config file (set at load time).
	Dir string `toml:"-"`
}

func defaultConfig(dir string) *Config {
	return &Config{
		Schema:     "instructions.json",
		Output:     ".",
		Targets:    []string{targetGo},
		CXXHeader:  "instructions.hxx",
		Descriptor: "instructions.cbor",
		Dir:        dir,
	}
}

// loadConfig reads the config file at path. If the file doesn't exist and
// missingOK is set, the defaults for the file's directory are returned.
func loadConfig(path string, missingOK bool) (*Config, error) {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	cfg := defaultConfig(dir)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && missingOK {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse error in %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Schema == "" {
		return fmt.Errorf("no schema configured")
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("no targets configured")
	}
	for _, t := range c.Targets {
		switch t {
		case targetGo, targetCXX, targetDescriptor:
		default:
			return fmt.Errorf("unknown target %q (want %s, %s or %s)", t, targetGo, targetCXX, targetDescriptor)
		}
	}
	return nil
}

func (c *Config) hasTarget(name string) bool {
	for _, t := range c.Targets {
		if t == name {
			return true
		}
	}
	return false
}

func (c *Config) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// SchemaPath returns the absolute path of the schema file.
func (c *Config) SchemaPath() string {
	return c.path(c.Schema)
}

// OutputDir returns the absolute path of the output directory.
func (c *Config) OutputDir() string {
	return c.path(c.Output)
}

// formatPattern returns the names format-command applies to. Without an
// explicit pattern only the C++ header is formatted, since the command is
// usually a C++ formatter.
func (c *Config) formatPattern() string {
	if c.FormatPattern != "" {
		return c.FormatPattern
	}
	return c.CXXHeader
}

// LockPath returns the absolute path of the opcode lock file, or "" if
// opcodes aren't locked.
func (c *Config) LockPath() string {
	return c.path(c.Lock)
}

func absPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	return filepath.Abs(p)
}
