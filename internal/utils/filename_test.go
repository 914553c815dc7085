package utils

import "testing"

func TestSanitizePromptPrefix(t *testing.T) {
	cases := []struct {
		name     string
		prompt   string
		maxRunes int
		expected string
	}{
		{"plain", "bluecircle", 30, "bluecircle"},
		{"spaces and punctuation", "a blue circle, please!", 30, "a_blue_circle__please_"},
		{"truncated", "aaaaaaaaaabbbbbbbbbbccccccccccdddddddddd", 30, "aaaaaaaaaabbbbbbbbbbcccccccccc"},
		{"empty", "", 30, ""},
		{"only specials", "!?.,", 30, "____"},
		{"unicode letters kept", "café au lait", 30, "café_au_lait"},
		{"digits kept", "circle 42", 30, "circle_42"},
	}

	for _, tc := range cases {
		if got := SanitizePromptPrefix(tc.prompt, tc.maxRunes); got != tc.expected {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.expected, got)
		}
	}
}

func TestSanitizePromptPrefixNoLimit(t *testing.T) {
	if got := SanitizePromptPrefix("abc def", 0); got != "abc_def" {
		t.Fatalf("expected full string with maxRunes=0, got %q", got)
	}
}
