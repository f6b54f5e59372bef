package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize splits input text into decoder-ready tokens. Text is lowercased,
// split on whitespace, and punctuation becomes standalone tokens so that
// phrase-table entries containing punctuation ("sin embargo ,") can match.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case isPunct(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(unicode.ToLower(r))
		}
	}
	flush()

	return tokens
}

func isPunct(r rune) bool {
	switch r {
	case '.', ',', '!', '?', ';', ':', '"', '\'', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}
