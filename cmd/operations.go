package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/docformat/internal/app"
	"github.com/oshokin/docformat/internal/service/document"
)

//nolint:gochecknoglobals,lll // Cobra commands require global definitions for proper command-line parsing and execution.
var (
	detectCmd = newOperationCommand(document.OperationDetect,
		"Report whether each input is JSON, YAML or undetermined.",
		`Prints one "<input>: json|yaml|undetermined" line per input.
Bare scalars such as "42" or "hello" are undetermined.`)

	formatCmd = newOperationCommand(document.OperationFormat,
		"Pretty-print JSON and YAML documents.",
		`Re-serializes each input with canonical indentation.
JSON keeps its key order and number literals; YAML is emitted in block style.`)

	minifyCmd = newOperationCommand(document.OperationMinify,
		"Remove insignificant whitespace from JSON documents.",
		`Serializes each JSON input on a single line. YAML inputs are rejected.`)

	convertCmd = newOperationCommand(document.OperationConvert,
		"Convert JSON to YAML and YAML to JSON.",
		`Converts each input to the other format. Files written with --write or
--output get the extension of the target format.`)

	validateCmd = newOperationCommand(document.OperationValidate,
		"Check that documents parse, optionally against a JSON Schema.",
		`Prints "<input>: valid" or "<input>: invalid: line N: message" per input
and exits with code 1 when any input is invalid. With --schema, valid documents
are also checked against a JSON Schema written in JSON or YAML.`)
)

func newOperationCommand(operation document.Operation, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   string(operation) + " [flags] [files...]",
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, inputs []string) error {
			return app.ExecuteCommand(cmd.Context(), appConfig, operation, inputs, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	for _, cmd := range []*cobra.Command{formatCmd, convertCmd, validateCmd} {
		cmd.Flags().StringP(
			"format",
			"f",
			"",
			"input format: json or yaml (detected when omitted).")
	}

	for _, cmd := range []*cobra.Command{formatCmd, minifyCmd, convertCmd} {
		cmd.Flags().StringP(
			"output",
			"o",
			"",
			"directory to write results to (the path will be created if it doesn't exist).")

		cmd.Flags().BoolP(
			"write",
			"w",
			false,
			"rewrite the input files instead of printing the results.")

		cmd.MarkFlagsMutuallyExclusive("output", "write")
	}

	validateCmd.Flags().StringP(
		"schema",
		"s",
		"",
		"JSON Schema file (JSON or YAML) the documents must satisfy.")

	rootCmd.AddCommand(detectCmd, formatCmd, minifyCmd, convertCmd, validateCmd)
}
