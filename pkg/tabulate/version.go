// Package tabulate holds build metadata for the tabulate module.
package tabulate

// Version is the released version of the tabulate CLI and engine.
const Version = "0.3.0"
