package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "plain",
			err:  New(ErrCodeBadRequest, "Too many words! (maximum of %d)", MaxWords),
			want: "BAD_REQUEST: Too many words! (maximum of 5)",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeTimeout, context.DeadlineExceeded, "timed out after %s", "10s"),
			want: "TIMEOUT: timed out after 10s: context deadline exceeded",
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

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeTimeout, context.DeadlineExceeded, "search deadline")
	if errors.Unwrap(err) != context.DeadlineExceeded {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is(err, DeadlineExceeded) = false")
	}

	// Codes survive further fmt wrapping.
	outer := fmt.Errorf("generate: %w", err)
	if !Is(outer, ErrCodeTimeout) || GetCode(outer) != ErrCodeTimeout {
		t.Errorf("code lost through fmt.Errorf: %v", outer)
	}
}

func TestCodeHelpers(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   Code
		client bool
		msg    string
	}{
		{"bad request", New(ErrCodeBadRequest, "No words provided!"), ErrCodeBadRequest, true, "No words provided!"},
		{"invalid word", New(ErrCodeInvalidWord, "word cannot be empty"), ErrCodeInvalidWord, true, "word cannot be empty"},
		{"invalid orientation", New(ErrCodeInvalidOrientation, "bad"), ErrCodeInvalidOrientation, true, "bad"},
		{"invalid format", New(ErrCodeInvalidFormat, "pdf"), ErrCodeInvalidFormat, true, "pdf"},
		{"invalid options", New(ErrCodeInvalidOptions, "negative"), ErrCodeInvalidOptions, true, "negative"},
		{"timeout", Wrap(ErrCodeTimeout, context.DeadlineExceeded, "slow"), ErrCodeTimeout, false, "slow"},
		{"rate limited", New(ErrCodeRateLimited, "slow down"), ErrCodeRateLimited, false, "slow down"},
		{"plain error", errors.New("disk full"), "", false, "disk full"},
		{"outer code wins", Wrap(ErrCodeInternal, New(ErrCodeBadRequest, "inner"), "outer"), ErrCodeInternal, false, "outer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if got := IsClientError(tt.err); got != tt.client {
				t.Errorf("IsClientError() = %v, want %v", got, tt.client)
			}
			if got := UserMessage(tt.err); got != tt.msg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestNilError(t *testing.T) {
	if Is(nil, ErrCodeBadRequest) || GetCode(nil) != "" || IsClientError(nil) {
		t.Error("nil error should carry no code")
	}
}
