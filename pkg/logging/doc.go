// Package logging provides structured logging utilities for wlsctl.
//
// # Overview
//
// This package wraps the standard library slog package with wlsctl defaults:
// JSON output to stderr, module/version attributes on every record, level
// configuration from a flag or the LOG_LEVEL environment variable, and source
// locations for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-request and per-poll detail with source location
//   - INFO: lifecycle transitions (default)
//   - WARN/WARNING: recoverable conditions such as failed status polls
//   - ERROR: operation failures
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("wlsctl", version)
//	    slog.Info("stopping server", "server", name)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("wlsctl", version, "debug")
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "server reported shutdown",
//	    "module": "wlsctl",
//	    "version": "v1.0.0",
//	    "server": "ManagedServer1",
//	    "attempt": 4
//	}
//
// Credentials are never passed to the logger.
package logging
