package gamestats

import (
	"sort"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
)

// Breakdown is the win/loss tally for one key of a facet.
type Breakdown struct {
	Key     string
	Total   int
	Wins    int
	Losses  int
	Draws   int
	WinRate float64
}

// ComputeWinRate returns wins/(wins+losses). Draws never take part.
func ComputeWinRate(wins, losses int) float64 {
	decided := wins + losses
	if decided <= 0 {
		return 0
	}
	return float64(wins) / float64(decided)
}

func (b *Breakdown) record(outcome gamelog.Outcome) {
	b.Total++
	switch outcome {
	case gamelog.OutcomeWin:
		b.Wins++
	case gamelog.OutcomeLoss:
		b.Losses++
	case gamelog.OutcomeDraw:
		b.Draws++
	}
}

// Normalize recomputes WinRate from the counters.
func (b Breakdown) Normalize() Breakdown {
	b.WinRate = ComputeWinRate(b.Wins, b.Losses)
	return b
}

// tally groups outcomes by key.
type tally struct {
	buckets map[string]*Breakdown
}

func newTally() *tally {
	return &tally{buckets: make(map[string]*Breakdown)}
}

func (t *tally) add(key string, outcome gamelog.Outcome) {
	if key == "" {
		return
	}
	b, ok := t.buckets[key]
	if !ok {
		b = &Breakdown{Key: key}
		t.buckets[key] = b
	}
	b.record(outcome)
}

// byVolume returns buckets ordered by total desc, then key asc.
func (t *tally) byVolume() []Breakdown {
	out := t.list()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// byKey returns buckets ordered by key asc.
func (t *tally) byKey() []Breakdown {
	out := t.list()
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (t *tally) list() []Breakdown {
	out := make([]Breakdown, 0, len(t.buckets))
	for _, b := range t.buckets {
		out = append(out, b.Normalize())
	}
	return out
}
