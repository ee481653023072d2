package gamestats

import "sort"

const (
	DefaultMinSampleSize = 5
	DefaultMaxResults    = 10
)

type RankOptions struct {
	MinSampleSize int
	MaxResults    int
}

// withDefaults replaces non-positive values with the package defaults.
func (o RankOptions) withDefaults() RankOptions {
	if o.MinSampleSize <= 0 {
		o.MinSampleSize = DefaultMinSampleSize
	}
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	return o
}

// RankedList holds the two leaderboard views over a facet.
type RankedList[T any] struct {
	MostPlayed     []T
	HighestWinRate []T
	MinSampleSize  int
}

// Rank orders a facet into most played and highest win rate views. Win rates
// are recomputed from the counters, so ranking an already ranked list gives
// the same result.
func Rank(items []Breakdown, opts RankOptions) RankedList[Breakdown] {
	opts = opts.withDefaults()

	normalized := make([]Breakdown, 0, len(items))
	for _, item := range items {
		normalized = append(normalized, item.Normalize())
	}

	mostPlayed := append([]Breakdown(nil), normalized...)
	sort.SliceStable(mostPlayed, func(i, j int) bool {
		if mostPlayed[i].Total != mostPlayed[j].Total {
			return mostPlayed[i].Total > mostPlayed[j].Total
		}
		return mostPlayed[i].Key < mostPlayed[j].Key
	})

	eligible := make([]Breakdown, 0, len(normalized))
	for _, item := range normalized {
		if item.Total >= opts.MinSampleSize {
			eligible = append(eligible, item)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].WinRate != eligible[j].WinRate {
			return eligible[i].WinRate > eligible[j].WinRate
		}
		if eligible[i].Total != eligible[j].Total {
			return eligible[i].Total > eligible[j].Total
		}
		return eligible[i].Key < eligible[j].Key
	})

	return RankedList[Breakdown]{
		MostPlayed:     truncate(mostPlayed, opts.MaxResults),
		HighestWinRate: truncate(eligible, opts.MaxResults),
		MinSampleSize:  opts.MinSampleSize,
	}
}

// MapRanked projects every entry of a ranked list, keeping order.
func MapRanked[T, U any](in RankedList[T], fn func(T) U) RankedList[U] {
	project := func(items []T) []U {
		out := make([]U, 0, len(items))
		for _, item := range items {
			out = append(out, fn(item))
		}
		return out
	}
	return RankedList[U]{
		MostPlayed:     project(in.MostPlayed),
		HighestWinRate: project(in.HighestWinRate),
		MinSampleSize:  in.MinSampleSize,
	}
}

// Keys returns the distinct keys across both views.
func (r RankedList[T]) Keys(key func(T) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(r.MostPlayed)+len(r.HighestWinRate))
	for _, list := range [][]T{r.MostPlayed, r.HighestWinRate} {
		for _, item := range list {
			k := key(item)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
