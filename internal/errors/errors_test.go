package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "resource not found",
			},
			want: "resource not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUpstream,
				Message: "fetch news",
				Cause:   errors.New("connection refused"),
			},
			want: "fetch news: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("title", "title is required")
	if err.Code != ErrCodeValidation {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if GetField(err) != "title" {
		t.Errorf("GetField() = %q, want title", GetField(err))
	}
	if !IsValidation(fmt.Errorf("outer: %w", err)) {
		t.Error("IsValidation should see through wrapping")
	}
}

func TestWrap_NilError(t *testing.T) {
	if got := Wrap(nil, ErrCodeInternal, "nothing"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}
	if got := WrapTransport(nil, "nothing"); got != nil {
		t.Errorf("WrapTransport(nil) = %v, want nil", got)
	}
}

func TestWrapTransport(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		check func(error) bool
	}{
		{name: "deadline", cause: fmt.Errorf("do: %w", context.DeadlineExceeded), check: IsTimeout},
		{name: "canceled", cause: context.Canceled, check: IsCanceled},
		{name: "other", cause: errors.New("dial tcp: refused"), check: IsUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapTransport(tt.cause, "call gateway")
			if !tt.check(err) {
				t.Errorf("unexpected code %q for %v", GetCode(err), tt.cause)
			}
			if !errors.Is(err, tt.cause) {
				t.Error("cause should be preserved")
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("x"), want: ""},
		{name: "unauthorized", err: Unauthorized("sign in"), want: ErrCodeUnauthorized},
		{name: "wrapped malformed", err: fmt.Errorf("decode: %w", Wrap(errors.New("eof"), ErrCodeMalformed, "bad body")), want: ErrCodeMalformed},
		{name: "not found", err: NotFound("missing"), want: ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	if !IsMalformed(Wrapf(errors.New("eof"), ErrCodeMalformed, "decode %s", "news")) {
		t.Error("IsMalformed should match")
	}
	if !IsInternal(Internal("boom")) {
		t.Error("IsInternal should match")
	}
	if !IsNotFound(NotFound("gone")) {
		t.Error("IsNotFound should match")
	}
	if IsUpstream(Validation("bad")) {
		t.Error("IsUpstream should not match a validation error")
	}
}
