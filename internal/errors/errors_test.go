package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestDataError(t *testing.T) {
	t.Run("full context", func(t *testing.T) {
		err := NewDataError("patientId is required", ErrMissingField).
			WithSource("data.json").WithIndex(2).WithField("patientId")

		want := "data error [source=data.json, record=2, field=patientId]: patientId is required: required field missing"
		if got := err.Error(); got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("whole file", func(t *testing.T) {
		err := NewDataError("cannot decode", nil).WithSource("x.yaml")
		if got := err.Error(); got != "data error [source=x.yaml]: cannot decode" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("matches sentinel through cause", func(t *testing.T) {
		err := NewDataError("dup", ErrDuplicatePatient)
		if !Is(err, ErrDuplicatePatient) {
			t.Error("Is(err, ErrDuplicatePatient) = false, want true")
		}
		if Is(err, ErrMissingField) {
			t.Error("Is(err, ErrMissingField) = true, want false")
		}
	})

	t.Run("matches when wrapped", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", NewDataError("bad", ErrMalformedTimestamp))
		var dataErr *DataError
		if !As(err, &dataErr) {
			t.Fatal("As(err, *DataError) = false, want true")
		}
		if dataErr.Index != -1 {
			t.Errorf("Index = %d, want -1", dataErr.Index)
		}
		if !Is(err, ErrMalformedTimestamp) {
			t.Error("wrapped error should still match its sentinel")
		}
	})
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("snapshot", "records.json")
	if got := err.Error(); got != "snapshot 'records.json' not found" {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	withCause := NewNotFoundError("theme", "ocean").WithCause(New("missing file"))
	if !strings.HasSuffix(withCause.Error(), ": missing file") {
		t.Errorf("Error() = %q, want cause suffix", withCause.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("unknown sort direction").WithField("sort").WithValue("sideways")

	want := "validation error [field=sort, value=sideways]: unknown sort direction"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", New("boom"), false},
		{"data error", NewDataError("bad", nil), true},
		{"wrapped validation error", Wrap(NewValidationError("bad"), "ctx"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	if got := GetSeverity(nil); got != SeverityDebug {
		t.Errorf("GetSeverity(nil) = %v, want debug", got)
	}
	if got := GetSeverity(New("x")); got != SeverityError {
		t.Errorf("GetSeverity(plain) = %v, want error", got)
	}
	if got := GetSeverity(NewNotFoundError("a", "b")); got != SeverityWarning {
		t.Errorf("GetSeverity(not found) = %v, want warning", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrDuplicatePatient, "record %d", 4)
	if err.Error() != "record 4: duplicate patient id" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !Is(err, ErrDuplicatePatient) {
		t.Error("Wrapf should preserve the chain")
	}
}
