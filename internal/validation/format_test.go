package validation

import (
	"errors"
	"testing"
)

type mode string

func TestFormatValidValues(t *testing.T) {
	cases := []struct {
		name   string
		values []mode
		want   string
	}{
		{name: "empty", values: nil, want: ""},
		{name: "single", values: []mode{"direct"}, want: "direct"},
		{name: "several", values: []mode{"direct", "subtree"}, want: "direct, subtree"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatValidValues(tc.values); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatInvalidValueErrorWrapsBase(t *testing.T) {
	errInvalidMode := errors.New("invalid mode")

	err := FormatInvalidValueError(errInvalidMode, mode("sideways"), []mode{"direct", "subtree"})
	if !errors.Is(err, errInvalidMode) {
		t.Fatalf("expected error to wrap %v, got %v", errInvalidMode, err)
	}

	want := `invalid mode: "sideways" (valid: direct, subtree)`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
