package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "123 Main St", "123 Main St"},
		{"leading and trailing", "  123 Main St  ", "123 Main St"},
		{"internal runs collapse", "123   Main \t St", "123 Main St"},
		{"newlines collapse", "123\nMain\nSt", "123 Main St"},
		{"empty", "", ""},
		{"only whitespace", "   \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeFlightNumber(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ua 1234", "UA1234"},
		{"UA1234", "UA1234"},
		{" aa  321b ", "AA321B"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeFlightNumber(tt.input); got != tt.want {
			t.Errorf("NormalizeFlightNumber(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
