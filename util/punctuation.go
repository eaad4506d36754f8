package util

import (
	"unicode"
)

// IsPunctuation reports whether s is non-empty and consists entirely of
// punctuation, symbols or white space, including the CJK and full-width forms.
func IsPunctuation(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isPunct(r) {
			return false
		}
	}
	return true
}

func isPunct(r rune) bool {
	if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r) {
		return true
	}
	// CJK Symbols and Punctuation, except the iteration marks and 〇
	if r >= 0x3000 && r <= 0x303F {
		return r != 0x3005 && r != 0x3006 && r != 0x3007
	}
	// Full-width ASCII punctuation. Half-width katakana (U+FF66 on) are letters.
	if r >= 0xFF00 && r <= 0xFF65 {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	return false
}

// DropPunctuation returns the tokens that are not pure punctuation or
// blanks, in order.
func DropPunctuation(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !IsPunctuation(tok) {
			kept = append(kept, tok)
		}
	}
	return kept
}
