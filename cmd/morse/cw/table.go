// Package cw holds the International Morse Code symbol table, the text
// translator and the words-per-minute timing model.
package cw

const (
	Dit = '.'
	Dah = '-'

	// WordSeparator is the notation used between words by Encode and Decode.
	WordSeparator = "/"
)

// Symbols maps every supported character to its dit/dah sequence in
// transmission order. Read only.
var Symbols = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.",
	'!': "-.-.--", '/': "-..-.",
}

var fromSymbol map[string]rune

func init() {
	fromSymbol = make(map[string]rune, len(Symbols))
	for k, v := range Symbols {
		fromSymbol[v] = k
	}
}

// Lookup returns the symbol string for r, or "" when r has no mapping.
func Lookup(r rune) string {
	return Symbols[r]
}
