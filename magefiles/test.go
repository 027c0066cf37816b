// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const cliPkg = "/internal/cli"

// Test groups test targets (all, unit, cli, cover).
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Unit runs tests for every package except the CLI.
func (Test) Unit() error {
	pkgs, err := listPackages(func(pkg string) bool { return !strings.HasSuffix(pkg, cliPkg) })
	if err != nil {
		return err
	}
	if len(pkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	return sh.RunV(binGo, append([]string{"test", "-v"}, pkgs...)...)
}

// CLI runs the in-process command tests.
func (Test) CLI() error {
	return sh.RunV(binGo, "test", "-v", "."+cliPkg+"/...")
}

// Cover runs all tests and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverFile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverFile)
}

// listPackages returns the module's packages accepted by keep. Build
// tooling under magefiles is never included.
func listPackages(keep func(string) bool) ([]string, error) {
	out, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return nil, err
	}
	var pkgs []string
	for pkg := range strings.SplitSeq(out, "\n") {
		if pkg == "" || strings.HasSuffix(pkg, "/magefiles") || !keep(pkg) {
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}
