package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// LogFilePattern matches the daily log files written by NewFromConfig.
const LogFilePattern = "stitchbook-*.log"

// PruneLogs removes daily log files in dir last modified more than
// retentionDays ago and returns how many were removed. keep is never removed.
// A retentionDays value of 0 disables pruning.
func PruneLogs(ctx context.Context, logger *slog.Logger, dir string, retentionDays int, keep string) int {
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	if logger == nil {
		logger = NewNop()
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	if abs, err := filepath.Abs(keep); err == nil && keep != "" {
		keep = abs
	}

	matches, err := filepath.Glob(filepath.Join(dir, LogFilePattern))
	if err != nil {
		return 0
	}
	removed := 0
	for _, path := range matches {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if path == keep {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			WarnWithContext(ctx, logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", path),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed++
		logger.DebugContext(ctx, "log pruned", String("path", path), String(FieldEventType, "log_pruned"))
	}
	return removed
}
