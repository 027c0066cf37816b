// Package types defines the export options, column vocabulary, host hooks,
// and standard errors for the tabulate export engine.
package types
