package core

import (
	"math"
	"sort"

	"github.com/huangsam/tensorprep/schema"
	"gonum.org/v1/gonum/stat"
)

// ComputeLengthStats summarizes the observation length distribution per
// activity class, sorted by activity id. The Pct column reports the length
// at the configured percentile, the value prepare would choose as pad size
// if that activity were the whole training set.
func ComputeLengthStats(observations []schema.Observation, percentile float64) []schema.LengthStats {
	type group struct {
		name    string
		lengths []float64
	}
	groups := make(map[int]*group)
	for i := range observations {
		o := &observations[i]
		g, ok := groups[o.ActivityID]
		if !ok {
			g = &group{name: o.ActivityName}
			groups[o.ActivityID] = g
		}
		g.lengths = append(g.lengths, float64(o.Length()))
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	stats := make([]schema.LengthStats, 0, len(ids))
	for _, id := range ids {
		g := groups[id]
		sort.Float64s(g.lengths)
		n := len(g.lengths)
		stats = append(stats, schema.LengthStats{
			ActivityID:   id,
			ActivityName: g.name,
			Count:        n,
			MinLength:    int(g.lengths[0]),
			MaxLength:    int(g.lengths[n-1]),
			MeanLength:   stat.Mean(g.lengths, nil),
			P50Length:    int(math.Ceil(stat.Quantile(0.5, stat.Empirical, g.lengths, nil))),
			PctLength:    int(math.Ceil(stat.Quantile(percentile, stat.Empirical, g.lengths, nil))),
		})
	}
	return stats
}

// LengthsByActivity returns the raw per-activity length samples, keyed by
// activity name, for chart rendering.
func LengthsByActivity(observations []schema.Observation) map[string][]int {
	lengths := make(map[string][]int)
	for i := range observations {
		o := &observations[i]
		lengths[o.ActivityName] = append(lengths[o.ActivityName], o.Length())
	}
	return lengths
}
