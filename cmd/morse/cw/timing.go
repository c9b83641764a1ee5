package cw

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Standard word "PARIS" is 50 units long.
const unitsPerWord = 50

var ErrInvalidArgument = errors.New("invalid argument")

// Timing holds the element and gap lengths for one speed. Every field is an
// exact multiple of Unit.
type Timing struct {
	WPM       float64
	Unit      time.Duration
	Dit       time.Duration
	Dah       time.Duration
	IntraChar time.Duration // between units of one character
	InterChar time.Duration // between characters of one word
	InterWord time.Duration
}

// ComputeTiming derives the timing profile for wpm words per minute.
func ComputeTiming(wpm float64) (Timing, error) {
	if math.IsNaN(wpm) || math.IsInf(wpm, 0) || wpm <= 0 {
		return Timing{}, fmt.Errorf("words per minute must be a positive number, got %v: %w", wpm, ErrInvalidArgument)
	}

	unit := time.Duration(float64(time.Minute) / (unitsPerWord * wpm))
	if unit <= 0 {
		return Timing{}, fmt.Errorf("words per minute %v is too fast: %w", wpm, ErrInvalidArgument)
	}

	return Timing{
		WPM:       wpm,
		Unit:      unit,
		Dit:       unit,
		Dah:       3 * unit,
		IntraChar: unit,
		InterChar: 3 * unit,
		InterWord: 7 * unit,
	}, nil
}

// UnitMillis is the unrounded unit length in milliseconds.
func (t Timing) UnitMillis() float64 {
	return 60000 / (unitsPerWord * t.WPM)
}

// ToneFor returns the tone length of a single dit or dah.
func (t Timing) ToneFor(unit rune) time.Duration {
	if unit == Dah {
		return t.Dah
	}
	return t.Dit
}
