package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRemote, cause, "failed to fetch")

	if err.Code != ErrCodeRemote {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRemote)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeRemote, "x"), ErrCodeRemote, true},
		{"DifferentCode", New(ErrCodeRemote, "x"), ErrCodeNotFound, false},
		{"PlainError", errors.New("plain"), ErrCodeRemote, false},
		{"WrappedError", Wrap(ErrCodeTimeout, errors.New("slow"), "y"), ErrCodeTimeout, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidSource, "x")); got != ErrCodeInvalidSource {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeInvalidSource)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "bad format")
	if got := UserMessage(err); got != "bad format" {
		t.Errorf("UserMessage = %q, want %q", got, "bad format")
	}
	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
