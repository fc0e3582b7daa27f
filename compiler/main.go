package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// jackc compiles jack classes into vm code, one ClassName.vm per class.

var (
	path       = flag.String("path", ".", "a jack file or a directory of jack files")
	output     = flag.String("o", "", "the directory to save vm files, next to the jack files when empty")
	bundle     = flag.String("bundle", "", "also save every compiled class into this cbor bundle")
	configPath = flag.String("config", "", "the project file, jackc.toml of the path directory when empty")
	verbosity  = flag.Int("v", 1, "log verbosity")
	logFile    = flag.String("log", "", "the log file, stderr when empty")
)

func main() {
	flag.Parse()
	options, err := loadOptions()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
	var logPath *string
	if options.LogFile != "" {
		logPath = &options.LogFile
	}
	commonlog.Configure(options.Verbosity, logPath)
	log := commonlog.GetLogger("jackc")
	_, err = NewDriver(options, log).Run()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}

func loadOptions() (Options, error) {
	values := FlagValues{
		Path:      *path,
		Output:    *output,
		Bundle:    *bundle,
		Verbosity: *verbosity,
		LogFile:   *logFile,
		set:       map[string]bool{},
	}
	flag.Visit(func(f *flag.Flag) { values.set[f.Name] = true })
	var config *Config
	var err error
	if *configPath != "" {
		config, err = LoadConfig(*configPath)
	} else {
		config, err = FindConfig(configDir(*path))
	}
	if err != nil {
		return Options{}, err
	}
	return values.Apply(config.Options()), nil
}

// configDir is where jackc.toml is looked for: the path itself, or the directory of a file.
func configDir(path string) string {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}
