// Package app wires the format engine, the optional schema validator and the
// document service together, runs one command over its inputs and prints the
// results: documents go to standard output unless they are written to files,
// detect and validate print one report line per input.
package app
