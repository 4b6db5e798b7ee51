// Package formatter implements the JSON/YAML format engine: it detects
// whether a text blob is JSON or YAML, pretty-prints and minifies it,
// converts between the two formats and validates it with line-accurate
// error reporting.
//
// The engine is stateless. Every call builds its own decoder and encoder, so
// an Engine value can be shared freely between goroutines. Documents are held
// as yaml.Node trees regardless of the source format, which keeps mapping key
// order and number literals intact across conversions.
package formatter
