package callsign

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrInvalidFormat   = errors.New("invalid call sign format")
	ErrInvalidBucket   = errors.New("invalid format bucket")
	ErrUnsortedBuckets = errors.New("format buckets must be sorted ascending by weight")
)

const (
	Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits  = "1234567890"
)

// Bucket is a set of formats that share a selection weight. In a format, L
// is a random letter, N a random digit and / is copied as is.
type Bucket struct {
	Weight  float64
	Formats []string
}

// DefaultBuckets is the standard call sign grammar. A bucket with weight 10
// is drawn twice as often as one with weight 5. Must stay sorted ascending by
// weight.
var DefaultBuckets = []Bucket{
	{
		Weight: 5,
		Formats: []string{
			"LNNL",
			"NL/LNLL",
			"NL/LLNLL",
			"NL/LLNLLL",
			"LLN/LNLL",
			"LLN/LLNL",
			"LLN/LLNLL",
			"LLN/LLNLLL",
			"LL/LLNL",
			"LL/LLNLL",
			"LLNNLLL",
		},
	},
	{
		Weight: 10,
		Formats: []string{
			"NLNL",
			"NLNLL",
			"NLNLLL",
		},
	},
	{
		Weight: 85,
		Formats: []string{
			"LNL",
			"LNLL",
			"LNLLL",
			"LLNL",
			"LLNL",
			"LLNLL",
			"LLNLLL",
		},
	},
}

// Source is the randomness a Generator draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// globalSource uses the math/rand/v2 top-level functions, which are safe for
// concurrent use.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Generator draws call signs from a validated bucket table.
type Generator struct {
	buckets    []Bucket
	cumulative []float64
	total      float64
	src        Source
	logger     *slog.Logger
}

var defaultGenerator = MustNewGenerator(DefaultBuckets, nil)

// NewGenerator validates buckets and returns a generator over them. A nil
// src uses the shared math/rand/v2 source.
func NewGenerator(buckets []Bucket, src Source) (*Generator, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("%w: no buckets", ErrInvalidBucket)
	}
	for i, b := range buckets {
		if b.Weight <= 0 {
			return nil, fmt.Errorf("%w: bucket %d has weight %v", ErrInvalidBucket, i, b.Weight)
		}
		if len(b.Formats) == 0 {
			return nil, fmt.Errorf("%w: bucket %d has no formats", ErrInvalidBucket, i)
		}
		if i > 0 && b.Weight < buckets[i-1].Weight {
			return nil, fmt.Errorf("%w: bucket %d weight %v after %v", ErrUnsortedBuckets, i, b.Weight, buckets[i-1].Weight)
		}
		for _, format := range b.Formats {
			if err := ValidateFormat(format); err != nil {
				return nil, fmt.Errorf("bucket %d: %w", i, err)
			}
		}
	}
	if src == nil {
		src = globalSource{}
	}

	cumulative := make([]float64, len(buckets))
	sum := 0.0
	for i, b := range buckets {
		sum += b.Weight
		cumulative[i] = sum
	}

	return &Generator{
		buckets:    buckets,
		cumulative: cumulative,
		total:      lo.SumBy(buckets, func(b Bucket) float64 { return b.Weight }),
		src:        src,
	}, nil
}

func MustNewGenerator(buckets []Bucket, src Source) *Generator {
	g, err := NewGenerator(buckets, src)
	if err != nil {
		panic(err)
	}
	return g
}

// WithLogger returns a copy of g that logs to logger.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	c := *g
	c.logger = logger
	return &c
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}

// Generate draws one call sign: a bucket by weight, a format uniformly within
// it, then a random letter or digit per position.
func (g *Generator) Generate() (string, error) {
	_, call, err := g.draw()
	return call, err
}

// CallSigns is an endless sequence of independent draws. Each range over it
// starts fresh.
func (g *Generator) CallSigns() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			call, err := g.Generate()
			if err != nil {
				g.log().Error("failed to generate call sign", "error", err)
				return
			}
			if !yield(call) {
				return
			}
		}
	}
}

func (g *Generator) draw() (int, string, error) {
	next := g.src.Float64() * (g.total + 1)
	index := g.bucketFor(next)
	formats := g.buckets[index].Formats
	format := formats[g.src.IntN(len(formats))]

	call, err := Render(g.src, format)
	if err != nil {
		return index, "", err
	}
	g.log().Debug("generated call sign", "next", next, "bucket", index, "format", format, "call", call)
	return index, call, nil
}

// bucketFor returns the first bucket whose cumulative weight reaches next.
// Draws past the total land in the last bucket.
func (g *Generator) bucketFor(next float64) int {
	for i, sum := range g.cumulative {
		if next <= sum {
			return i
		}
	}
	return len(g.cumulative) - 1
}

// Render fills format with random characters from src.
func Render(src Source, format string) (string, error) {
	var result strings.Builder
	result.Grow(len(format))

	for _, ch := range format {
		switch ch {
		case 'L':
			result.WriteByte(Letters[src.IntN(len(Letters))])
		case 'N':
			result.WriteByte(Digits[src.IntN(len(Digits))])
		case '/':
			result.WriteRune(ch)
		default:
			return "", fmt.Errorf("%w: unknown character %q in %q", ErrInvalidFormat, ch, format)
		}
	}
	return result.String(), nil
}

// ValidateFormat checks that format only uses L, N and /.
func ValidateFormat(format string) error {
	if format == "" {
		return fmt.Errorf("%w: empty format", ErrInvalidFormat)
	}
	for _, ch := range format {
		if ch != 'L' && ch != 'N' && ch != '/' {
			return fmt.Errorf("%w: unknown character %q in %q", ErrInvalidFormat, ch, format)
		}
	}
	return nil
}

// Generate draws a call sign from DefaultBuckets.
func Generate() string {
	call, err := defaultGenerator.Generate()
	if err != nil {
		// DefaultBuckets is validated when the package loads.
		panic(err)
	}
	return call
}

// CallSigns is an endless sequence of call signs from DefaultBuckets.
func CallSigns() iter.Seq[string] {
	return defaultGenerator.CallSigns()
}
