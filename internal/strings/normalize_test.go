package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only spaces", input: " \t\n ", want: ""},
		{name: "collapses", input: "  buy   more\tmilk \n", want: "buy more milk"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tc.input); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeLowerTrimSpace(t *testing.T) {
	if got := NormalizeLowerTrimSpace("  Home Office "); got != "home office" {
		t.Fatalf("expected %q, got %q", "home office", got)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"a\r\nb":       "a\nb",
		"a\rb":         "a\nb",
		"a\r\n\r\nb\r": "a\n\nb\n",
	}
	for input, want := range cases {
		if got := NormalizeNewlines(input); got != want {
			t.Fatalf("NormalizeNewlines(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	if got := TrimTrailingNewlines("text\r\n\n"); got != "text" {
		t.Fatalf("expected %q, got %q", "text", got)
	}
}

func TestFirstLine(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"single", "single"},
		{"\n\n  # Heading \nbody", "# Heading"},
		{"first\r\nsecond", "first"},
	}
	for _, tc := range cases {
		if got := FirstLine(tc.input); got != tc.want {
			t.Fatalf("FirstLine(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
