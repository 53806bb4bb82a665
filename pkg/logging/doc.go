// Package logging provides structured logging utilities for pcbridge.
//
// It wraps the standard library slog package with project defaults: JSON
// records to stderr, module/version context on every record, LOG_LEVEL
// environment configuration, and source location tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("pcbridge", version)
//
//	    slog.Info("sampling", "interval", interval)
//	    slog.Debug("probed key", "key", "Tp01")
//	    slog.Error("send failed", "error", err)
//	}
//
// Supported levels (case-insensitive): DEBUG, INFO (default), WARN/WARNING,
// ERROR.
package logging
