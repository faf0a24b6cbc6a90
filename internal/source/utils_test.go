package source

import "testing"

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		in, want string
		changed  bool
	}{
		{"a\r\nb", "a\nb", true},
		{"a\rb", "a\rb", false},
		{"plain", "plain", false},
		{"\r\n\r\n", "\n\n", true},
	}
	for _, tt := range tests {
		got, changed := normalizeCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("normalizeCRLF(%q) = %q, %v", tt.in, got, changed)
		}
	}
}

func TestToLineCol(t *testing.T) {
	idx := buildLineIndex([]byte("x\nyy\nz"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{2, 1}},
		{4, LineCol{2, 3}},
		{5, LineCol{3, 1}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.want {
			t.Errorf("toLineCol(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
}
