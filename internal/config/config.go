// Package config loads the optional dtogen.yaml project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "dtogen.yaml"

// File represents the root of a dtogen YAML configuration file.
type File struct {
	// Version of the config schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Packages lists the Go package patterns to analyze.
	Packages []string `yaml:"packages"`

	// Output controls rendering of the generated files.
	Output Output `yaml:"output,omitempty"`
}

// Output holds code generation options.
type Output struct {
	// FileSuffix is appended to generated file base names.
	FileSuffix string `yaml:"file_suffix,omitempty"`

	// Comments toggles per-assignment strategy comments.
	Comments *bool `yaml:"comments,omitempty"`
}

// Load reads and parses a YAML config file from the given path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a config File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	if len(f.Packages) == 0 {
		f.Packages = []string{"./..."}
	}

	if f.Output.FileSuffix == "" {
		f.Output.FileSuffix = "_gen.go"
	}
}

// Default returns the configuration used when no config file exists.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

// CommentsEnabled reports whether assignment comments are on (default true).
func (o Output) CommentsEnabled() bool {
	return o.Comments == nil || *o.Comments
}
