package utils

import "unicode"

// SanitizePromptPrefix builds a filesystem-safe filename fragment from a
// prompt. The prompt is truncated to maxRunes and every rune that is not a
// letter or digit is replaced with an underscore.
func SanitizePromptPrefix(prompt string, maxRunes int) string {
	runes := []rune(prompt)
	if maxRunes > 0 && len(runes) > maxRunes {
		runes = runes[:maxRunes]
	}
	out := make([]rune, len(runes))
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out[i] = r
		} else {
			out[i] = '_'
		}
	}
	return string(out)
}
