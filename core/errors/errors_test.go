package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestSourceUnavailableError(t *testing.T) {
	tests := []struct {
		name    string
		err     *SourceUnavailableError
		wantMsg string
	}{
		{
			name:    "source and reason",
			err:     &SourceUnavailableError{Source: "kjv.txt", Reason: "invalid UTF-8"},
			wantMsg: "source unavailable: kjv.txt: invalid UTF-8",
		},
		{
			name:    "with cause",
			err:     &SourceUnavailableError{Source: "kjv.txt", Reason: "open", Err: fs.ErrNotExist},
			wantMsg: "source unavailable: kjv.txt: open: file does not exist",
		},
		{
			name:    "bare",
			err:     &SourceUnavailableError{},
			wantMsg: "source unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrSourceUnavailable) {
				t.Errorf("errors.Is(%v, ErrSourceUnavailable) = false, want true", tt.err)
			}
		})
	}

	t.Run("cause stays reachable", func(t *testing.T) {
		err := fmt.Errorf("load: %w", NewSourceUnavailable("a.txt", "open", fs.ErrNotExist))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Error("wrapped SourceUnavailableError does not unwrap to fs.ErrNotExist")
		}
		if !errors.Is(err, ErrSourceUnavailable) {
			t.Error("wrapped SourceUnavailableError does not match ErrSourceUnavailable")
		}
	})
}

func TestArityError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ArityError
		wantMsg string
	}{
		{
			name:    "too few",
			err:     NewArity(1, 1, "need 2 or 3 documents"),
			wantMsg: "invalid comparison arity: 1 documents, 1 names: need 2 or 3 documents",
		},
		{
			name:    "no reason",
			err:     NewArity(3, 2, ""),
			wantMsg: "invalid comparison arity: 3 documents, 2 names",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidComparisonArity) {
				t.Errorf("Unwrap() does not reach ErrInvalidComparisonArity")
			}
			if errors.Is(tt.err, ErrSourceUnavailable) {
				t.Errorf("ArityError must not match ErrSourceUnavailable")
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "book", ID: "Obadiah"},
			wantMsg:  "book not found: Obadiah",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "edition"},
			wantMsg:  "edition not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "test.txt", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		wantMsg string
	}{
		{
			name:    "with field",
			err:     &ValidationError{Field: "editions", Message: "need 2 or 3"},
			wantMsg: "validation failed for editions: need 2 or 3",
		},
		{
			name:    "without field",
			err:     &ValidationError{Message: "invalid format"},
			wantMsg: "validation failed: invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, ErrInvalidInput) {
				t.Errorf("Unwrap() = %v, want %v", got, ErrInvalidInput)
			}
		})
	}
}

func TestIOError(t *testing.T) {
	baseErr := fmt.Errorf("permission denied")
	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "write", Path: "/out/report.txt", Err: baseErr},
			wantMsg: "failed to write /out/report.txt: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "write", Err: baseErr},
			wantMsg: "failed to write: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, baseErr) {
				t.Errorf("Unwrap() = %v, want %v", got, baseErr)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &ParseError{Format: "YAML", Path: "plan.yaml", Message: "unexpected EOF"},
			wantMsg: "failed to parse YAML at plan.yaml: unexpected EOF",
		},
		{
			name:    "without path",
			err:     &ParseError{Format: "plan", Message: "no editions"},
			wantMsg: "failed to parse plan: no editions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, ErrInvalidInput) {
				t.Errorf("Unwrap() = %v, want %v", got, ErrInvalidInput)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("yaml: line 3: mapping values are not allowed")
		err := &ParseError{Format: "YAML", Path: "plan.yaml", Message: "invalid syntax", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("compression", "lz4 not available")
	if got, want := err.Error(), "unsupported compression: lz4 not available"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Unwrap() does not reach ErrUnsupported")
	}
	if got, want := (&UnsupportedError{Feature: "format"}).Error(), "unsupported format"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestHelperFunctions(t *testing.T) {
	t.Run("NewNotFound", func(t *testing.T) {
		err := NewNotFound("book", "Jude")
		if err.Resource != "book" || err.ID != "Jude" {
			t.Errorf("NewNotFound() = %+v, want Resource=book, ID=Jude", err)
		}
	})

	t.Run("NewValidation", func(t *testing.T) {
		err := NewValidation("name", "must not be empty")
		if err.Field != "name" || err.Message != "must not be empty" {
			t.Errorf("NewValidation() = %+v, unexpected values", err)
		}
	})

	t.Run("NewIO", func(t *testing.T) {
		baseErr := fmt.Errorf("disk full")
		err := NewIO("write", "/tmp/test", baseErr)
		if err.Operation != "write" || err.Path != "/tmp/test" || err.Err != baseErr {
			t.Errorf("NewIO() = %+v, unexpected values", err)
		}
	})

	t.Run("NewParse", func(t *testing.T) {
		err := NewParse("YAML", "plan.yaml", "invalid syntax")
		if err.Format != "YAML" || err.Path != "plan.yaml" || err.Message != "invalid syntax" {
			t.Errorf("NewParse() = %+v, unexpected values", err)
		}
	})

	t.Run("NewSourceUnavailable", func(t *testing.T) {
		err := NewSourceUnavailable("a.txt", "read", nil)
		if err.Source != "a.txt" || err.Reason != "read" || err.Err != nil {
			t.Errorf("NewSourceUnavailable() = %+v, unexpected values", err)
		}
	})
}

func TestErrCheckFailed(t *testing.T) {
	err := Wrap(ErrCheckFailed, "verify kjv")
	if !Is(err, ErrCheckFailed) {
		t.Errorf("Is(%v, ErrCheckFailed) = false", err)
	}
	if Is(err, ErrInvalidInput) {
		t.Error("ErrCheckFailed should not match ErrInvalidInput")
	}
}

func TestWrap(t *testing.T) {
	t.Run("wraps error", func(t *testing.T) {
		baseErr := fmt.Errorf("base error")
		wrapped := Wrap(baseErr, "context message")
		if wrapped == nil {
			t.Fatal("Wrap() returned nil")
		}
		if !errors.Is(wrapped, baseErr) {
			t.Errorf("Wrap() error does not unwrap to base error")
		}
		wantMsg := "context message: base error"
		if wrapped.Error() != wantMsg {
			t.Errorf("Wrap() = %q, want %q", wrapped.Error(), wantMsg)
		}
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := fmt.Errorf("base error")
	wrapped := Wrapf(baseErr, "failed to load %s", "kjv.txt")
	if !errors.Is(wrapped, baseErr) {
		t.Errorf("Wrapf() error does not unwrap to base error")
	}
	if got, want := wrapped.Error(), "failed to load kjv.txt: base error"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}
	if got := Wrapf(nil, "context %s", "test"); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}
}

func TestIsAs(t *testing.T) {
	err := Wrap(NewArity(4, 4, ""), "compare")
	if !Is(err, ErrInvalidComparisonArity) {
		t.Error("Is() failed to match ArityError to ErrInvalidComparisonArity")
	}
	var arityErr *ArityError
	if !As(err, &arityErr) {
		t.Fatal("As() failed to match ArityError")
	}
	if arityErr.Documents != 4 {
		t.Errorf("As() arityErr.Documents = %d, want 4", arityErr.Documents)
	}
}
