// Package logger provides slog attribute helpers for the session domain.
// Helpers return an empty Attr for zero values, so call sites never need
// explicit nil checks: log.Warn("msg", logger.Error(err)) is always safe.
package logger
