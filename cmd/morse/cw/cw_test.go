package cw

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		unknown  string
		expected []string
	}{
		{"empty", "", "", []string{}},
		{"sos", "SOS", "", []string{"...", "---", "..."}},
		{"letter and digit", "A1", "?", []string{".-", ".----"}},
		{"unmapped", "@", "?", []string{"?"}},
		{"unmapped default", "A@B", "", []string{".-", "", "-..."}},
		{"space is unmapped", "E T", "", []string{".", "", "-"}},
		{"lower case is unmapped", "a", "x", []string{"x"}},
		{"punctuation", ".,?'!/", "", []string{".-.-.-", "--..--", "..--..", ".----.", "-.-.--", "-..-."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Translate(tt.text, tt.unknown)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Translate(%q, %q) = %q, want %q", tt.text, tt.unknown, result, tt.expected)
			}
		})
	}
}

func TestTranslatePreservesLength(t *testing.T) {
	inputs := []string{"", "HELLO WORLD", "ÅÄÖ 123", "  \t\n", "CQ CQ DE SM0ABC/P"}
	for _, in := range inputs {
		if got, want := len(Translate(in, "")), utf8.RuneCountInString(in); got != want {
			t.Errorf("len(Translate(%q)) = %d, want %d", in, got, want)
		}
	}
}

func TestSymbolTableShape(t *testing.T) {
	if len(Symbols) != 42 {
		t.Fatalf("len(Symbols) = %d, want 42", len(Symbols))
	}
	for r := 'A'; r <= 'Z'; r++ {
		if Lookup(r) == "" {
			t.Errorf("missing letter %q", r)
		}
	}
	for r := '0'; r <= '9'; r++ {
		if Lookup(r) == "" {
			t.Errorf("missing digit %q", r)
		}
	}
	for r, code := range Symbols {
		if strings.Trim(code, ".-") != "" || code == "" {
			t.Errorf("symbol for %q is %q, want only dits and dahs", r, code)
		}
	}
}

func TestSymbolsAreUnique(t *testing.T) {
	seen := make(map[string]rune)
	for r, code := range Symbols {
		if other, ok := seen[code]; ok {
			t.Errorf("%q and %q share symbol %q", r, other, code)
		}
		seen[code] = r
	}
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		text    string
		encoded string
		decoded string
	}{
		{"sos", "... --- ...", "SOS"},
		{"hi  there", ".... .. / - .... . .-. .", "HI THERE"},
		{"a@b", ".- -...", "AB"},
		{"", "", ""},
	}

	for _, tt := range tests {
		encoded := Encode(tt.text)
		if encoded != tt.encoded {
			t.Errorf("Encode(%q) = %q, want %q", tt.text, encoded, tt.encoded)
		}
		if decoded := Decode(encoded); decoded != tt.decoded {
			t.Errorf("Decode(%q) = %q, want %q", encoded, decoded, tt.decoded)
		}
	}
}

func TestDecodeSkipsUnknownGroups(t *testing.T) {
	if got := Decode("... ........ ..."); got != "SS" {
		t.Errorf("Decode = %q, want %q", got, "SS")
	}
}

func TestComputeTiming(t *testing.T) {
	timing, err := ComputeTiming(20)
	if err != nil {
		t.Fatalf("ComputeTiming(20) returned error: %v", err)
	}
	if timing.Unit != 60*time.Millisecond {
		t.Errorf("Unit = %v, want 60ms", timing.Unit)
	}
	if timing.UnitMillis() != 60 {
		t.Errorf("UnitMillis() = %v, want 60", timing.UnitMillis())
	}
	if timing.ToneFor(Dah) != timing.Dah || timing.ToneFor(Dit) != timing.Dit {
		t.Errorf("ToneFor does not match Dit/Dah")
	}
}

func TestComputeTimingRatios(t *testing.T) {
	for _, wpm := range []float64{1, 5, 12.5, 20, 33, 60} {
		timing, err := ComputeTiming(wpm)
		if err != nil {
			t.Fatalf("ComputeTiming(%v) returned error: %v", wpm, err)
		}
		if timing.Dit != timing.Unit || timing.IntraChar != timing.Unit {
			t.Errorf("wpm %v: dit %v, intra %v, want %v", wpm, timing.Dit, timing.IntraChar, timing.Unit)
		}
		if timing.Dah != 3*timing.Dit {
			t.Errorf("wpm %v: dah %v, want %v", wpm, timing.Dah, 3*timing.Dit)
		}
		if timing.InterChar != 3*timing.Dit {
			t.Errorf("wpm %v: inter char %v, want %v", wpm, timing.InterChar, 3*timing.Dit)
		}
		if timing.InterWord != 7*timing.Dit {
			t.Errorf("wpm %v: inter word %v, want %v", wpm, timing.InterWord, 7*timing.Dit)
		}
		// unit * wpm is constant (1200ms)
		if k := timing.UnitMillis() * wpm; math.Abs(k-1200) > 1e-9 {
			t.Errorf("wpm %v: unit*wpm = %v, want 1200", wpm, k)
		}
	}
}

func TestComputeTimingRejectsInvalidSpeed(t *testing.T) {
	for _, wpm := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := ComputeTiming(wpm)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ComputeTiming(%v) error = %v, want ErrInvalidArgument", wpm, err)
		}
	}
}
