// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Command gen-schema writes the JSON Schema that save files are validated
// against, so editors and external tools can check saves offline.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/riftwalk/riftwalk/internal/save"
)

func main() {
	out := pflag.StringP("out", "o", filepath.Join("schemas", "save.schema.json"), "output path")
	pflag.Parse()

	if err := write(*out); err != nil {
		fmt.Fprintf(os.Stderr, "gen-schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s\n", *out)
}

func write(path string) error {
	schema, err := save.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, schema, 0o600); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}
