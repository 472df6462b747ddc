//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Guide rebuilds the binary and regenerates the documentation configured by
// scriptdoc.properties in the working directory.
func Guide() error {
	mg.Deps(Build)
	bin := filepath.Join(binDir, binName)
	if err := sh.RunV(bin, "generate"); err != nil {
		return fmt.Errorf("generating guide: %w", err)
	}
	return nil
}

// Preview renders one script in the terminal: mage preview scripts/01-intro.go
func Preview(script string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "preview", script)
}
