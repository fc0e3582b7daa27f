package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/xiaobogaga/jackc/compiler/internal"
	"github.com/xiaobogaga/jackc/vmcode"
)

// Driver runs one compilation: find .jack files, compile every one of them, then write the
// results. Nothing is written unless every class compiled.
type Driver struct {
	options Options
	log     commonlog.Logger
}

func NewDriver(options Options, log commonlog.Logger) *Driver {
	return &Driver{options: options, log: log}
}

type compiledFile struct {
	path  string
	class *internal.CompiledClass
}

func (driver *Driver) Run() ([]string, error) {
	files, err := discoverJackFiles(driver.options.Paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no jack files found in %s", strings.Join(driver.options.Paths, ", "))
	}
	driver.log.Infof("compiler: found %d jack files", len(files))
	compiled := make([]compiledFile, 0, len(files))
	for _, file := range files {
		class, err := driver.compileFile(file)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledFile{path: file, class: class})
	}
	written := make([]string, 0, len(compiled)+1)
	for _, file := range compiled {
		path, err := driver.writeVMFile(file)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	if driver.options.Bundle != "" {
		if err = driver.writeBundle(compiled); err != nil {
			return nil, err
		}
		written = append(written, driver.options.Bundle)
	}
	return written, nil
}

func (driver *Driver) compileFile(file string) (*internal.CompiledClass, error) {
	driver.log.Debugf("compiler: compiling %s", file)
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	class, err := internal.CompileClass(string(source))
	if err != nil {
		driver.log.Errorf("compiler: %s: %s", file, err.Error())
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if base := strings.TrimSuffix(filepath.Base(file), ".jack"); base != class.Name {
		driver.log.Warningf("compiler: %s declares class %s", file, class.Name)
	}
	return class, nil
}

// writeVMFile writes ClassName.vm into the output dir, or next to the source file when
// there is no output dir.
func (driver *Driver) writeVMFile(file compiledFile) (string, error) {
	dir := driver.options.OutputDir
	if dir == "" {
		dir = filepath.Dir(file.path)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	buf := &bytes.Buffer{}
	if err := vmcode.Write(buf, file.class.Instructions); err != nil {
		return "", err
	}
	// The text must read back as the same number of valid instructions.
	parsed, err := vmcode.Parse(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("class %s: %w", file.class.Name, err)
	}
	if len(parsed) != len(file.class.Instructions) {
		return "", fmt.Errorf("class %s: wrote %d instructions, read back %d", file.class.Name, len(file.class.Instructions), len(parsed))
	}
	path := filepath.Join(dir, file.class.Name+".vm")
	if err = os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}
	driver.log.Infof("compiler: save vm file: %s", path)
	return path, nil
}

func (driver *Driver) writeBundle(compiled []compiledFile) error {
	bundle := vmcode.NewBundle()
	for _, file := range compiled {
		bundle.Add(file.class.Name, file.class.Instructions)
	}
	data, err := vmcode.MarshalBundle(bundle)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(driver.options.Bundle); dir != "" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err = os.WriteFile(driver.options.Bundle, data, 0644); err != nil {
		return err
	}
	driver.log.Infof("compiler: save bundle %s with %d classes, id %s", driver.options.Bundle, len(bundle.Units), bundle.ID)
	return nil
}

// discoverJackFiles returns the .jack files of every path. A path is a .jack file or a
// directory whose .jack files (not recursive) are taken in name order.
func discoverJackFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !isJackFile(path) {
				return nil, fmt.Errorf("%s is not a jack file", path)
			}
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !isJackFile(entry.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}

func isJackFile(fileName string) bool {
	return strings.HasSuffix(fileName, ".jack")
}
