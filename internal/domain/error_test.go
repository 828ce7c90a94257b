package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "cart.add",
				Message: "invalid input",
			},
			expected: "cart.add: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EUNAVAILABLE,
				Op:      "catalog.list",
				Message: "inventory service unreachable",
				Err:     errors.New("connection refused"),
			},
			expected: "catalog.list: inventory service unreachable: connection refused",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to decode response",
				Err:     errors.New("unexpected EOF"),
			},
			expected: "failed to decode response: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error",
			err:      Invalid("cart.add", "bad quantity"),
			expected: EINVALID,
		},
		{
			name:     "wrapped domain error",
			err:      fmt.Errorf("outer: %w", Conflict("purchase.submit", "Insufficient stock")),
			expected: ECONFLICT,
		},
		{
			name:     "plain error maps to internal",
			err:      errors.New("something broke"),
			expected: EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "user-facing message preserved",
			err:      Conflict("purchase.submit", "Insufficient stock"),
			expected: "Insufficient stock",
		},
		{
			name:     "internal error hides details",
			err:      Internal(errors.New("nil pointer"), "cart.view", "cart blew up"),
			expected: "An internal error occurred. Please try again later.",
		},
		{
			name:     "unknown error type hides details",
			err:      errors.New("raw error"),
			expected: "An internal error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := NotFound("catalog.get", "product", "5")
	if !IsCode(err, ENOTFOUND) {
		t.Error("expected ENOTFOUND")
	}
	if IsCode(err, EINVALID) {
		t.Error("did not expect EINVALID")
	}
}

func TestWrapError_NilPassthrough(t *testing.T) {
	if got := WrapError(nil, EINTERNAL, "op", "msg"); got != nil {
		t.Errorf("WrapError(nil) = %v, want nil", got)
	}
}
