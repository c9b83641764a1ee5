package cw

import (
	"strings"
	"unicode/utf8"
)

// Translate returns one symbol string per rune of text, in order. Runes
// without a mapping yield unknownSymbol. Lookup is case sensitive, so callers
// upper-case the text first.
func Translate(text string, unknownSymbol string) []string {
	morse := make([]string, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		if code, ok := Symbols[r]; ok {
			morse = append(morse, code)
		} else {
			morse = append(morse, unknownSymbol)
		}
	}
	return morse
}

// Encode renders text as space separated symbols with " / " between words.
// Unmapped characters are dropped.
func Encode(text string) string {
	var words []string
	for _, word := range strings.Fields(strings.ToUpper(text)) {
		var codes []string
		for _, code := range Translate(word, "") {
			if code != "" {
				codes = append(codes, code)
			}
		}
		if len(codes) > 0 {
			words = append(words, strings.Join(codes, " "))
		}
	}
	return strings.Join(words, " "+WordSeparator+" ")
}

// Decode reverses Encode. Unknown symbol groups are skipped.
func Decode(morse string) string {
	var result strings.Builder
	words := strings.Split(morse, WordSeparator)
	first := true
	for _, word := range words {
		codes := strings.Fields(word)
		if len(codes) == 0 {
			continue
		}
		if !first {
			result.WriteRune(' ')
		}
		first = false
		for _, code := range codes {
			if r, ok := fromSymbol[code]; ok {
				result.WriteRune(r)
			}
		}
	}
	return result.String()
}
