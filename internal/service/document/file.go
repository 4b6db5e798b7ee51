package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/docformat/internal/constants"
	"github.com/oshokin/docformat/internal/formatter"
	"github.com/oshokin/docformat/internal/utils"
)

// readInput reads a file, or standard input for "-", refusing anything
// larger than the configured limit.
func (s *ServiceImpl) readInput(input string) ([]byte, error) {
	var reader io.Reader

	if input == constants.StdinPath {
		reader = s.stdin
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}

		defer f.Close()

		reader = f
	}

	limit := s.cfg.ParsedMaxInputSize

	// One extra byte tells an input of exactly the limit from a larger one.
	content, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %s", ErrInputTooLarge,
			displayName(input), humanize.Bytes(utils.SafeInt64ToUint64(limit)))
	}

	return content, nil
}

// destination returns the file an output should be written to,
// or an empty string when it belongs on standard output.
func (s *ServiceImpl) destination(req Request, input string, outputFormat formatter.Format) string {
	isStdin := input == constants.StdinPath

	switch {
	case req.WriteInPlace && !isStdin:
		if req.Operation == OperationConvert {
			return utils.ReplaceExtension(input, outputFormat.Extension())
		}

		return input
	case req.OutputPath != "":
		name := filepath.Base(input)
		if isStdin || req.Operation == OperationConvert || filepath.Ext(name) == "" {
			name = utils.ReplaceExtension(displayName(input), outputFormat.Extension())
		}

		return filepath.Join(req.OutputPath, name)
	default:
		return ""
	}
}

// writeOutput writes text to path, creating parent folders as needed.
func writeOutput(path, text string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), constants.DefaultFolderPermissions); err != nil {
		return 0, fmt.Errorf("failed to create output folder: %w", err)
	}

	content := []byte(utils.EnsureTrailingNewline(text))

	if err := os.WriteFile(path, content, constants.DefaultFilePermissions); err != nil {
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}

	return int64(len(content)), nil
}

// displayName returns the base name of an input, "stdin" for standard input.
func displayName(input string) string {
	if input == constants.StdinPath {
		return constants.StdinName
	}

	return filepath.Base(input)
}
