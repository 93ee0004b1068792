package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "ten digit local",
			input: "7045551234",
			want:  "+17045551234",
		},
		{
			name:  "formatted local",
			input: "(704) 555-1234",
			want:  "+17045551234",
		},
		{
			name:  "already e164",
			input: "+17045551234",
			want:  "+17045551234",
		},
		{
			name:  "with surrounding whitespace",
			input: "  704 555 1234  ",
			want:  "+17045551234",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "garbage",
			input: "call me maybe",
			want:  "",
		},
		{
			name:  "too short",
			input: "5551234",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
