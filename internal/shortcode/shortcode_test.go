package shortcode

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := Generate()
		if len(code) != Length {
			t.Fatalf("Generate() = %q, want %d characters", code, Length)
		}
		for _, c := range code {
			if !strings.ContainsRune(Alphabet, c) {
				t.Fatalf("Generate() = %q contains %q, not in alphabet", code, c)
			}
		}
		seen[code] = true
	}
	// 1000 draws from 32^6 codes colliding down to a handful would mean the
	// generator is badly broken.
	if len(seen) < 990 {
		t.Errorf("got only %d distinct codes out of 1000 draws", len(seen))
	}
}

func TestAlphabetExcludesAmbiguousChars(t *testing.T) {
	if len(Alphabet) != 32 {
		t.Fatalf("alphabet has %d symbols, want 32", len(Alphabet))
	}
	for _, c := range "0O1I" {
		if strings.ContainsRune(Alphabet, c) {
			t.Errorf("alphabet contains ambiguous character %q", c)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc234", "ABC234"},
		{"  XYZ789 ", "XYZ789"},
		{"AbC234", "ABC234"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
