package callsign

import "github.com/samber/lo"

// BucketStat compares how often a bucket was drawn with its configured
// share of the total weight.
type BucketStat struct {
	Index      int
	Weight     float64
	Formats    int
	Count      int
	Configured float64
	Observed   float64
}

// Sample draws n call signs and tallies them per bucket.
func (g *Generator) Sample(n int) ([]BucketStat, error) {
	counts := make([]int, len(g.buckets))
	for i := 0; i < n; i++ {
		index, _, err := g.draw()
		if err != nil {
			return nil, err
		}
		counts[index]++
	}

	return lo.Map(g.buckets, func(b Bucket, i int) BucketStat {
		stat := BucketStat{
			Index:      i,
			Weight:     b.Weight,
			Formats:    len(b.Formats),
			Count:      counts[i],
			Configured: b.Weight / g.total,
		}
		if n > 0 {
			stat.Observed = float64(counts[i]) / float64(n)
		}
		return stat
	}), nil
}
