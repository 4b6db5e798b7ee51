// Package document runs format operations over a batch of inputs: it reads
// files or standard input under size and count limits, resolves each input's
// format, applies the requested operation through the format engine, writes
// the results and keeps statistics for the final summary.
package document
