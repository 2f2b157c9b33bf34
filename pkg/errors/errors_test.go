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
	err := Wrap(ErrCodeDegenerateBounds, cause, "build mapper")

	if err.Code != ErrCodeDegenerateBounds {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDegenerateBounds)
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

	want := "DEGENERATE_BOUNDS: build mapper: underlying error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidColor, "test"),
			code:     ErrCodeInvalidColor,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeInvalidColor, "test"),
			code:     ErrCodeDegenerateBounds,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmtWrap(New(ErrCodeMissingCoordinate, "no lat")),
			code:     ErrCodeMissingCoordinate,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeConfiguration, "x")); got != ErrCodeConfiguration {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeConfiguration)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestGetCodeOr(t *testing.T) {
	if got := GetCodeOr(New(ErrCodeInvalidColor, "x"), ErrCodeInternal); got != ErrCodeInvalidColor {
		t.Errorf("GetCodeOr() = %v, want %v", got, ErrCodeInvalidColor)
	}
	if got := GetCodeOr(errors.New("plain"), ErrCodeInternal); got != ErrCodeInternal {
		t.Errorf("GetCodeOr(plain) = %v, want %v", got, ErrCodeInternal)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad file")); got != "bad file" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad file")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain")
	}
}

func TestIsRecoverable(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeConfiguration, true},
		{ErrCodeInvalidColor, true},
		{ErrCodeMissingCoordinate, true},
		{ErrCodeInvalidCoordinate, true},
		{ErrCodeDegenerateBounds, false},
		{ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsRecoverable(New(tt.code, "x")); got != tt.want {
				t.Errorf("IsRecoverable(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func fmtWrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "context: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
