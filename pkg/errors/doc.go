// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Lifecycle operations fail with one of four taxonomy types, each carrying
// an ErrorCode:
//
//   - PreconditionError: invalid local input, detected before any request
//   - TransportError: non-2xx response or network failure
//   - TimeoutError: a bounded wait ended without the awaited server state
//   - CancelledError: the caller's context was cancelled
//
// CodeOf classifies any error:
//
//	switch errors.CodeOf(err) {
//	case errors.ErrCodeTimeout:
//	    // server never confirmed shutdown
//	case errors.ErrCodeTransport:
//	    // the request itself failed
//	}
//
// Configuration and adapter failures use StructuredError:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRequest,
//	    "failed to load batch file",
//	    cause,
//	    map[string]any{"path": path},
//	)
package errors
