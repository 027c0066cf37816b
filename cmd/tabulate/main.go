// Package main provides the tabulate CLI.
package main

import "github.com/mesh-intelligence/tabulate/internal/cli"

func main() {
	cli.Execute()
}
