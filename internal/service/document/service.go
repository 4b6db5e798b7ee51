package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/docformat/internal/config"
	"github.com/oshokin/docformat/internal/constants"
	"github.com/oshokin/docformat/internal/formatter"
	"github.com/oshokin/docformat/internal/logger"
)

// Service runs format operations over batches of inputs.
type Service interface {
	// Process applies the request's operation to every input.
	// Per-input failures are reported in the results; only cancellation and
	// request-level problems are returned as errors.
	Process(ctx context.Context, req Request) ([]*Result, error)
	// Statistics returns a snapshot of the counters collected so far.
	Statistics() Statistics
	// PrintSummary logs a summary of the collected statistics.
	PrintSummary(ctx context.Context)
}

// ServiceImpl implements Service on top of a format engine.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// engine performs the format operations.
	engine Engine
	// validator checks documents against a schema; nil disables schema checks.
	validator SchemaValidator
	// stdin is read for the "-" input.
	stdin io.Reader
	// progressWriter receives the progress bar.
	progressWriter io.Writer
	// stats tracks statistics for the current session.
	stats *Statistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates a document service instance with dependency-injected components.
// validator may be nil.
func NewService(cfg *config.Config, engine Engine, validator SchemaValidator, stdin io.Reader) Service {
	return &ServiceImpl{
		cfg:            cfg,
		engine:         engine,
		validator:      validator,
		stdin:          stdin,
		progressWriter: os.Stderr,
		stats:          new(Statistics),
		statsMutex:     new(sync.Mutex),
	}
}

// Process applies the request's operation to every input.
func (s *ServiceImpl) Process(ctx context.Context, req Request) ([]*Result, error) {
	if !req.Operation.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Operation)
	}

	inputs := req.Inputs
	if len(inputs) == 0 {
		inputs = []string{constants.StdinPath}
	}

	if int64(len(inputs)) > s.cfg.MaxFiles {
		return nil, fmt.Errorf("%w: got %d, the limit is %d", ErrTooManyFiles, len(inputs), s.cfg.MaxFiles)
	}

	stdinCount := 0

	for _, input := range inputs {
		if input == constants.StdinPath {
			stdinCount++
		}
	}

	if stdinCount > 1 {
		return nil, ErrStdinRepeated
	}

	s.statsMutex.Lock()
	s.stats.StartTime = time.Now()
	s.statsMutex.Unlock()

	var (
		results = make([]*Result, len(inputs))
		bar     = s.newProgressBar(len(inputs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(max(s.cfg.MaxConcurrentFiles, 1)))

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = s.processInput(gctx, req, input)
			s.recordResult(results[i])

			if bar != nil {
				_ = bar.Add(1)
			}

			return nil
		})
	}

	err := g.Wait()

	if bar != nil {
		_ = bar.Finish()
	}

	s.statsMutex.Lock()
	s.stats.EndTime = time.Now()
	s.statsMutex.Unlock()

	if err != nil {
		return nil, err
	}

	return results, nil
}

// newProgressBar returns a bar for multi-file batches, or nil when it should stay hidden.
func (s *ServiceImpl) newProgressBar(total int) *progressbar.ProgressBar {
	if !s.cfg.ShowProgress || total < 2 || logger.Level() > zapcore.InfoLevel {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(s.progressWriter),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// processInput reads one input and applies the operation to it.
func (s *ServiceImpl) processInput(ctx context.Context, req Request, input string) *Result {
	ctx = logger.WithKV(ctx, "input", displayName(input))

	result := &Result{
		Input:     input,
		Operation: req.Operation,
	}

	content, err := s.readInput(input)
	if err != nil {
		result.Err = err
		logger.Errorf(ctx, "Failed to read input: %v", err)

		return result
	}

	result.InputSize = int64(len(content))

	if err = s.apply(ctx, req, result, string(content)); err != nil {
		result.Err = err
		logger.Errorf(ctx, "Failed to %s input: %v", req.Operation, err)

		return result
	}

	if !req.Operation.producesOutput() {
		return result
	}

	destination := s.destination(req, input, result.OutputFormat)
	if destination == "" {
		return result
	}

	written, err := writeOutput(destination, result.Output)
	if err != nil {
		result.Err = err
		logger.Errorf(ctx, "Failed to write output: %v", err)

		return result
	}

	result.Destination = destination
	result.OutputSize = written

	logger.Debugf(ctx, "Wrote %s", destination)

	return result
}

// apply runs the operation on content and fills the result.
func (s *ServiceImpl) apply(ctx context.Context, req Request, result *Result, content string) error {
	if req.Operation == OperationDetect {
		result.Format = s.engine.Detect(content)

		return nil
	}

	result.Format = s.resolveFormat(result.Input, content, req.Format)
	if !result.Format.IsDetermined() {
		return ErrUndeterminedFormat
	}

	logger.Debugf(ctx, "Resolved format: %s", result.Format)

	var err error

	switch req.Operation {
	case OperationFormat:
		result.Output, err = s.engine.Prettify(content, result.Format)
		result.OutputFormat = result.Format
	case OperationMinify:
		result.Output, err = s.engine.MinifyAs(content, result.Format)
		result.OutputFormat = formatter.JSON
	case OperationConvert:
		result.Output, result.OutputFormat, err = s.engine.Convert(content, result.Format)
	case OperationValidate:
		s.validate(result, content)
	}

	return err
}

func (s *ServiceImpl) validate(result *Result, content string) {
	validation := s.engine.Validate(content, result.Format)
	result.Validation = &validation

	if !validation.Valid || s.validator == nil {
		return
	}

	result.SchemaErrors = s.validator.Validate(content, result.Format).Errors
}

// resolveFormat picks the format of an input: the forced one, the detected one,
// or, for content that cannot be classified, the one its file extension suggests.
func (s *ServiceImpl) resolveFormat(input, content string, forced formatter.Format) formatter.Format {
	if forced.IsDetermined() {
		return forced
	}

	if detected := s.engine.Detect(content); detected.IsDetermined() {
		return detected
	}

	return formatter.FormatFromExtension(input)
}

// Statistics returns a snapshot of the counters collected so far.
func (s *ServiceImpl) Statistics() Statistics {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	return *s.stats
}
