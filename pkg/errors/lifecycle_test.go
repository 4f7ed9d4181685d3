package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ""},
		{"precondition", &PreconditionError{Entity: "app", Op: "deploy", Field: "artifact", Message: "is required"}, ErrCodePrecondition},
		{"transport status", &TransportError{Op: "undeploy", Status: 500}, ErrCodeTransport},
		{"transport network", &TransportError{Op: "start", Network: true, Cause: errors.New("dial tcp")}, ErrCodeTransport},
		{"timeout", &TimeoutError{Server: "ms1", Awaiting: "SHUTDOWN", Timeout: time.Minute, Attempts: 60}, ErrCodeTimeout},
		{"cancelled", &CancelledError{Entity: "ms1", Op: "restart", Cause: context.Canceled}, ErrCodeCancelled},
		{"wrapped timeout", fmt.Errorf("restart: %w", &TimeoutError{Server: "ms1"}), ErrCodeTimeout},
		{"bare context", context.DeadlineExceeded, ErrCodeCancelled},
		{"structured", New(ErrCodeInvalidRequest, "bad"), ErrCodeInvalidRequest},
		{"unknown", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransportErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *TransportError
		want string
	}{
		{
			name: "status with body",
			err:  &TransportError{Op: "deploy", URL: "http://h/x", Status: 404, Body: "not found"},
			want: "deploy http://h/x: status 404: not found",
		},
		{
			name: "status without body",
			err:  &TransportError{Op: "deploy", URL: "http://h/x", Status: 503},
			want: "deploy http://h/x: status 503",
		},
		{
			name: "network",
			err:  &TransportError{Op: "start", URL: "http://h/x", Network: true, Cause: errors.New("connection refused")},
			want: "start http://h/x: network error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeoutAndTransportAreDistinct(t *testing.T) {
	var err error = &TimeoutError{Server: "ms1", Awaiting: "SHUTDOWN", Timeout: 60 * time.Second, Attempts: 60}

	var te *TransportError
	if errors.As(err, &te) {
		t.Fatal("timeout must not match TransportError")
	}

	var to *TimeoutError
	if !errors.As(err, &to) {
		t.Fatal("expected TimeoutError")
	}
	if to.Server != "ms1" {
		t.Errorf("expected server ms1, got %s", to.Server)
	}
}

func TestCancelledUnwrap(t *testing.T) {
	err := &CancelledError{Entity: "ms1", Op: "restart", Cause: context.Canceled}
	if !errors.Is(err, context.Canceled) {
		t.Error("expected errors.Is to find context.Canceled")
	}
}
