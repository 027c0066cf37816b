// Package main provides build targets for the tabulate project using Mage.
//
// Usage:
//
//	mage build          Compile tabulate binary to bin/
//	mage test:all       Run all tests
//	mage test:unit      Run tests for every package except the CLI
//	mage test:cli       Run only the in-process CLI tests
//	mage test:cover     Run all tests with a coverage profile
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install tabulate to GOPATH/bin
//	mage stats          Print Go LOC for production and test code
package main
