package sanitizer

import "testing"

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare digits",
			input: "9876543210",
			want:  "9876543210",
		},
		{
			name:  "with dashes",
			input: "98765-43210",
			want:  "9876543210",
		},
		{
			name:  "with spaces",
			input: "98765 43210",
			want:  "9876543210",
		},
		{
			name:  "with parentheses and dots",
			input: "(98765).43210",
			want:  "9876543210",
		},
		{
			name:  "leading and trailing spaces",
			input: "  9876543210  ",
			want:  "9876543210",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "letters stripped",
			input: "call 9876543210 now",
			want:  "9876543210",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizePhone(tt.input)
			if got != tt.want {
				t.Errorf("SanitizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Rahul Sharma", "Rahul Sharma"},
		{"extra inner spaces", "Rahul   Sharma", "Rahul Sharma"},
		{"surrounding whitespace", "  Rahul Sharma \n", "Rahul Sharma"},
		{"case preserved", "RAHUL sharma", "RAHUL sharma"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercased", "Rahul@Example.COM", "rahul@example.com"},
		{"trimmed", "  rahul@example.com ", "rahul@example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeSlice(t *testing.T) {
	got := SanitizeSlice([]string{" a ", "a", "", "b"}, trim)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("SanitizeSlice dedup failed, got %v", got)
	}
}
