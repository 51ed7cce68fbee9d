package language

import (
	"strings"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"en", true},
		{"es", true},
		{"zh-cn", true},
		{"hi", true},
		{"ja", true},
		{"EN", false},
		{"zh", false},
		{"zh-CN", false},
		{"", false},
		{"xx", false},
		{"en ", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := Supported(tt.code); got != tt.want {
				t.Errorf("Supported(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestCodes(t *testing.T) {
	got := Codes()
	if len(got) != 17 {
		t.Fatalf("Expected 17 codes, got %d", len(got))
	}
	if got[0] != "en" || got[len(got)-1] != "hi" {
		t.Errorf("Unexpected code order: %v", got)
	}
	for _, c := range got {
		if !Supported(c) {
			t.Errorf("Codes() returned unsupported code %q", c)
		}
		if c != strings.ToLower(c) {
			t.Errorf("Code %q is not lowercase", c)
		}
	}
}

func TestCodesCopy(t *testing.T) {
	a := Codes()
	a[0] = "mutated"
	if b := Codes(); b[0] != "en" {
		t.Errorf("Codes() exposes internal state: got %q", b[0])
	}
}
