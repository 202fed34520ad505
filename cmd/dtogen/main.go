// Package main provides the CLI entrypoint for dtogen.
//
// dtogen is a codegen tool that:
//   - Parses Go packages (AST + go/types) to find dto-annotated structs
//   - Resolves each annotated struct to a validated conversion plan
//   - Generates converter functions into the structs' own packages
//   - Reports every mapping error in one run, with source positions
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"dto-generator/internal/cli"
	"dto-generator/internal/config"
)

func main() {
	var root cli.CLI

	kctx := kong.Parse(&root,
		kong.Name("dtogen"),
		kong.Description("Generate struct-to-struct converter functions from dto annotations."),
		kong.UsageOnError(),
	)

	cfg, err := loadConfig(root.Config)
	if err != nil {
		kctx.FatalIfErrorf(err)
	}

	level := slog.LevelInfo
	if root.Verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err = kctx.Run(&cli.Context{
		Logger: logger,
		Config: cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	kctx.FatalIfErrorf(err)
}

// loadConfig loads the explicit config path, falls back to dtogen.yaml in the
// working directory, and finally to built-in defaults.
func loadConfig(path string) (*config.File, error) {
	if path != "" {
		return config.Load(path)
	}

	if _, err := os.Stat(config.DefaultPath); err == nil {
		return config.Load(config.DefaultPath)
	}

	return config.Default(), nil
}
