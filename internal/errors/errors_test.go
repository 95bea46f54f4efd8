// Package apperrors provides tests for application error types.
package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", -7, "-n"),
			expected: "invalid value -7 for flag -n",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cause       error
		expectedMsg string
		checkIs     error
		checkUnwrap bool
	}{
		{
			name:        "Error returns cause message",
			cause:       errors.New("product overflow"),
			expectedMsg: "product overflow",
		},
		{
			name:        "Unwrap returns cause",
			cause:       errors.New("original error"),
			expectedMsg: "original error",
			checkUnwrap: true,
		},
		{
			name:        "errors.Is works with wrapped error",
			cause:       context.Canceled,
			expectedMsg: "context canceled",
			checkIs:     context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CalculationError{Cause: tt.cause}

			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}

			if tt.checkUnwrap && err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}

			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()
	err := TimeoutError{Operation: "factorial", Limit: 30 * time.Second}
	expected := `operation "factorial" timed out after 30s`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	var timeoutErr TimeoutError
	if !errors.As(error(err), &timeoutErr) {
		t.Error("expected error to be TimeoutError type")
	}
}

func TestInvalidBoundError(t *testing.T) {
	t.Parallel()

	t.Run("message names field and bound", func(t *testing.T) {
		t.Parallel()
		err := NewInvalidBoundError(-5)
		if !strings.Contains(err.Error(), "factorial undefined for negative numbers") {
			t.Errorf("message should state the cause, got %q", err.Error())
		}
		if !strings.Contains(err.Error(), "-5") {
			t.Errorf("message should include the bound, got %q", err.Error())
		}
	})

	t.Run("IsInvalidBound recognizes it", func(t *testing.T) {
		t.Parallel()
		if !IsInvalidBound(NewInvalidBoundError(-1)) {
			t.Error("IsInvalidBound should be true for NewInvalidBoundError")
		}
		if IsInvalidBound(errors.New("other")) {
			t.Error("IsInvalidBound should be false for unrelated errors")
		}
	})

	t.Run("survives wrapping", func(t *testing.T) {
		t.Parallel()
		wrapped := WrapError(NewInvalidBoundError(-2), "computing factorial")
		if !IsInvalidBound(wrapped) {
			t.Error("IsInvalidBound should see through WrapError")
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		if WrapError(nil, "context") != nil {
			t.Error("WrapError(nil) should return nil")
		}
	})

	t.Run("wrapped error preserves cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("root cause")
		wrapped := WrapError(cause, "operation %s failed", "compute")
		if !errors.Is(wrapped, cause) {
			t.Error("wrapped error should match cause with errors.Is")
		}
		expected := "operation compute failed: root cause"
		if wrapped.Error() != expected {
			t.Errorf("expected %q, got %q", expected, wrapped.Error())
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped canceled", WrapError(context.Canceled, "run"), true},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "deadline exceeded maps to timeout code",
			err:         context.DeadlineExceeded,
			wantCode:    ExitErrorTimeout,
			wantMessage: "timed out",
		},
		{
			name:        "timeout error maps to timeout code",
			err:         TimeoutError{Operation: "factorial", Limit: time.Second},
			wantCode:    ExitErrorTimeout,
			wantMessage: "timed out",
		},
		{
			name:        "canceled maps to canceled code",
			err:         context.Canceled,
			wantCode:    ExitErrorCanceled,
			wantMessage: "canceled",
		},
		{
			name:        "validation error maps to config code",
			err:         NewInvalidBoundError(-1),
			wantCode:    ExitErrorConfig,
			wantMessage: "Error: validation error",
		},
		{
			name:        "generic error maps to generic code",
			err:         errors.New("boom"),
			wantCode:    ExitErrorGeneric,
			wantMessage: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, 10*time.Millisecond, &buf)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(buf.String(), tt.wantMessage) {
				t.Errorf("output %q should contain %q", buf.String(), tt.wantMessage)
			}
			if !strings.HasPrefix(buf.String(), "Error: ") {
				t.Errorf("output should start with %q, got %q", "Error: ", buf.String())
			}
		})
	}
}
