package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/docformat/internal/config"
	"github.com/oshokin/docformat/internal/formatter"
	"github.com/oshokin/docformat/internal/logger"
	"github.com/oshokin/docformat/internal/schema"
	"github.com/oshokin/docformat/internal/service/document"
)

// Static error definitions for better error handling.
var (
	// ErrValidationFailed indicates that at least one input did not pass validation.
	ErrValidationFailed = errors.New("validation failed")
	// ErrSomeFilesFailed indicates that at least one input could not be processed.
	ErrSomeFilesFailed = errors.New("some files failed")
)

// ExecuteCommand runs operation over inputs, reading stdin for "-" or when
// no inputs are given, and prints the results to stdout.
func ExecuteCommand(
	ctx context.Context,
	cfg *config.Config,
	operation document.Operation,
	inputs []string,
	stdin io.Reader,
	stdout io.Writer,
) error {
	engine := formatter.New(formatter.WithIndent(cfg.Indent))

	var validator document.SchemaValidator

	if operation == document.OperationValidate && cfg.SchemaPath != "" {
		compiled, err := schema.CompileFile(cfg.SchemaPath)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}

		logger.Debugf(ctx, "Loaded schema %s", cfg.SchemaPath)

		validator = compiled
	}

	s := document.NewService(cfg, engine, validator, stdin)

	results, err := s.Process(ctx, document.Request{
		Operation:    operation,
		Inputs:       inputs,
		Format:       cfg.ParsedFormat,
		OutputPath:   cfg.OutputPath,
		WriteInPlace: cfg.WriteInPlace,
	})
	if err != nil {
		return err
	}

	r := newReporter(stdout, cfg.NoColor)
	if err = r.print(operation, results); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	if len(results) > 1 || s.Statistics().FilesWritten > 0 {
		s.PrintSummary(ctx)
	}

	return outcome(operation, results)
}

// outcome turns per-input failures into the command's error.
func outcome(operation document.Operation, results []*document.Result) error {
	var failed, invalid int

	for _, result := range results {
		switch {
		case result.Failed():
			failed++
		case operation == document.OperationValidate && !result.IsValid():
			invalid++
		}
	}

	switch {
	case failed > 0:
		return fmt.Errorf("%w: %d of %d", ErrSomeFilesFailed, failed, len(results))
	case invalid > 0:
		return fmt.Errorf("%w: %d of %d", ErrValidationFailed, invalid, len(results))
	default:
		return nil
	}
}
