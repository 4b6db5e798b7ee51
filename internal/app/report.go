package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/oshokin/docformat/internal/constants"
	"github.com/oshokin/docformat/internal/service/document"
	"github.com/oshokin/docformat/internal/utils"
)

// reporter prints results for humans and pipelines.
type reporter struct {
	out     io.Writer
	valid   *color.Color
	invalid *color.Color
	detail  *color.Color
	header  *color.Color
}

func newReporter(out io.Writer, noColor bool) *reporter {
	r := &reporter{
		out:     out,
		valid:   color.New(color.FgGreen),
		invalid: color.New(color.FgRed, color.Bold),
		detail:  color.New(color.FgYellow),
		header:  color.New(color.FgCyan),
	}

	if noColor {
		for _, c := range []*color.Color{r.valid, r.invalid, r.detail, r.header} {
			c.DisableColor()
		}
	}

	return r
}

func (r *reporter) print(operation document.Operation, results []*document.Result) error {
	switch operation {
	case document.OperationDetect:
		return r.printDetect(results)
	case document.OperationValidate:
		return r.printValidate(results)
	default:
		return r.printDocuments(results)
	}
}

func (r *reporter) printDetect(results []*document.Result) error {
	for _, result := range results {
		if result.Failed() {
			continue
		}

		if _, err := fmt.Fprintf(r.out, "%s: %s\n", inputName(result.Input), result.Format); err != nil {
			return err
		}
	}

	return nil
}

func (r *reporter) printValidate(results []*document.Result) error {
	for _, result := range results {
		if result.Failed() || result.Validation == nil {
			continue
		}

		name := inputName(result.Input)

		var err error

		switch {
		case !result.Validation.Valid:
			_, err = r.invalid.Fprintf(r.out, "%s: invalid: %s\n", name, describeFailure(result))
		case len(result.SchemaErrors) > 0:
			if _, err = r.invalid.Fprintf(r.out, "%s: invalid: does not match schema\n", name); err == nil {
				err = r.printSchemaErrors(result.SchemaErrors)
			}
		default:
			_, err = r.valid.Fprintf(r.out, "%s: valid\n", name)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (r *reporter) printSchemaErrors(schemaErrors []string) error {
	for _, schemaErr := range schemaErrors {
		if _, err := r.detail.Fprintf(r.out, "  %s\n", schemaErr); err != nil {
			return err
		}
	}

	return nil
}

// printDocuments prints the documents that were not written to files.
// Several documents are separated by a header naming their input.
func (r *reporter) printDocuments(results []*document.Result) error {
	var printable []*document.Result

	for _, result := range results {
		if !result.Failed() && result.Destination == "" {
			printable = append(printable, result)
		}
	}

	for _, result := range printable {
		if len(printable) > 1 {
			if _, err := r.header.Fprintf(r.out, "==> %s <==\n", inputName(result.Input)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(r.out, utils.EnsureTrailingNewline(result.Output)); err != nil {
			return err
		}
	}

	return nil
}

func describeFailure(result *document.Result) string {
	message := strings.TrimSpace(result.Validation.ErrorMessage)
	if result.Validation.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s", result.Validation.LineNumber, message)
	}

	return message
}

func inputName(input string) string {
	if input == constants.StdinPath {
		return constants.StdinName
	}

	return input
}
