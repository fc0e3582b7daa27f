package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFileName = "jackc.toml"

// Config is the content of a jackc.toml project file:
//
//	[source]
//	dirs = ["src"]
//	[output]
//	dir = "build"
//	bundle = "build/program.cbor"
//	[log]
//	verbosity = 2
//	file = "jackc.log"
type Config struct {
	Source SourceConfig `toml:"source"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`

	// Dir is the directory holding the config file, relative paths are resolved against it.
	Dir string `toml:"-"`
}

type SourceConfig struct {
	Dirs []string `toml:"dirs"`
}

// OutputConfig: an empty Dir writes every .vm file next to its .jack file, an empty
// Bundle writes no bundle.
type OutputConfig struct {
	Dir    string `toml:"dir"`
	Bundle string `toml:"bundle"`
}

type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{Dirs: []string{"."}},
		Log:    LogConfig{Verbosity: 1},
		Dir:    ".",
	}
}

// LoadConfig parses the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	config.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if len(config.Source.Dirs) == 0 {
		config.Source.Dirs = []string{"."}
	}
	for i, dir := range config.Source.Dirs {
		config.Source.Dirs[i] = config.resolve(dir)
	}
	config.Output.Dir = config.resolve(config.Output.Dir)
	config.Output.Bundle = config.resolve(config.Output.Bundle)
	config.Log.File = config.resolve(config.Log.File)
	return config, nil
}

// FindConfig loads jackc.toml from dir when there is one, otherwise it returns the defaults.
func FindConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return LoadConfig(path)
}

func (config *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(config.Dir, path)
}

// Options is what one run of the compiler does, the config with flags applied on top.
type Options struct {
	Paths     []string
	OutputDir string
	Bundle    string
	Verbosity int
	LogFile   string
}

func (config *Config) Options() Options {
	return Options{
		Paths:     append([]string(nil), config.Source.Dirs...),
		OutputDir: config.Output.Dir,
		Bundle:    config.Output.Bundle,
		Verbosity: config.Log.Verbosity,
		LogFile:   config.Log.File,
	}
}

// FlagValues holds the command line flags, set names the flags given explicitly.
type FlagValues struct {
	Path      string
	Output    string
	Bundle    string
	Verbosity int
	LogFile   string
	set       map[string]bool
}

// Apply overrides options with every flag that was given on the command line.
func (values FlagValues) Apply(options Options) Options {
	if values.set["path"] {
		options.Paths = []string{values.Path}
	}
	if values.set["o"] {
		options.OutputDir = values.Output
	}
	if values.set["bundle"] {
		options.Bundle = values.Bundle
	}
	if values.set["v"] {
		options.Verbosity = values.Verbosity
	}
	if values.set["log"] {
		options.LogFile = values.LogFile
	}
	return options
}
