package document

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/docformat/internal/logger"
	"github.com/oshokin/docformat/internal/utils"
)

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// recordResult updates the counters with the outcome of one input.
func (s *ServiceImpl) recordResult(result *Result) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.FilesProcessed++
	s.stats.BytesRead += result.InputSize

	if result.Failed() {
		s.stats.FilesFailed++

		return
	}

	s.stats.FilesSucceeded++

	if result.Validation != nil && !result.IsValid() {
		s.stats.FilesInvalid++
	}

	if result.Destination != "" {
		s.stats.FilesWritten++
		s.stats.BytesWritten += result.OutputSize
	}
}

// PrintSummary logs a summary of the collected statistics.
func (s *ServiceImpl) PrintSummary(ctx context.Context) {
	stats := s.Statistics()
	if stats.FilesProcessed == 0 {
		return
	}

	logger.Infof(ctx, "Processed %d file(s) in %s: %d succeeded, %d failed",
		stats.FilesProcessed,
		formatDuration(stats.EndTime.Sub(stats.StartTime)),
		stats.FilesSucceeded,
		stats.FilesFailed)

	if stats.FilesInvalid > 0 {
		logger.Warnf(ctx, "%d file(s) did not pass validation", stats.FilesInvalid)
	}

	if stats.FilesWritten > 0 {
		logger.Infof(ctx, "Wrote %d file(s): read %s, wrote %s",
			stats.FilesWritten,
			humanize.Bytes(utils.SafeInt64ToUint64(stats.BytesRead)),
			humanize.Bytes(utils.SafeInt64ToUint64(stats.BytesWritten)))
	}
}
