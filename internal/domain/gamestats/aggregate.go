package gamestats

import (
	"errors"
	"fmt"
	"time"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
)

// DayLayout is the key format of the ByDay facet.
const DayLayout = "2006-01-02"

var ErrOwnerRequired = errors.New("owner id is required for scope mine")

type Scope string

const (
	ScopeMine      Scope = "mine"
	ScopeCommunity Scope = "community"
)

type Query struct {
	Scope   Scope
	OwnerID string
	From    *time.Time
	To      *time.Time
}

func (q Query) Validate() error {
	switch q.Scope {
	case ScopeMine:
		if q.OwnerID == "" {
			return ErrOwnerRequired
		}
	case ScopeCommunity:
	default:
		return fmt.Errorf("unknown scope %q", q.Scope)
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return fmt.Errorf("from must not be after to")
	}
	return nil
}

// Selection converts the query into the repository filter.
func (q Query) Selection() gamelog.Selection {
	sel := gamelog.Selection{
		Community: q.Scope == ScopeCommunity,
		From:      q.From,
		To:        q.To,
	}
	if !sel.Community {
		sel.UserID = q.OwnerID
	}
	return sel
}

// Filter is the predicate shared by every facet.
func (q Query) Filter() func(gamelog.Log) bool {
	return q.Selection().Matches
}

type Summary struct {
	Total              int
	Wins               int
	Losses             int
	Draws              int
	WinRate            float64
	AvgDurationMinutes float64
}

type Facets struct {
	Summary     Summary
	ByFormat    []Breakdown
	ByMatchType []Breakdown
	ByDay       []Breakdown
	ByElement   []Breakdown
	ByMVPCard   []Breakdown
	ByDeck      []Breakdown
}

// reducer consumes every log that passed the filter.
type reducer func(gamelog.Log)

// Aggregate computes every facet from one filtered pass over logs.
func Aggregate(logs []gamelog.Log, q Query) (Facets, error) {
	if err := q.Validate(); err != nil {
		return Facets{}, err
	}

	var (
		summary       Summary
		totalDuration int
		byFormat      = newTally()
		byMatchType   = newTally()
		byDay         = newTally()
		byElement     = newTally()
		byMVPCard     = newTally()
		byDeck        = newTally()
	)

	reducers := []reducer{
		func(l gamelog.Log) {
			summary.Total++
			totalDuration += l.DurationMinutes
			switch l.Outcome {
			case gamelog.OutcomeWin:
				summary.Wins++
			case gamelog.OutcomeLoss:
				summary.Losses++
			case gamelog.OutcomeDraw:
				summary.Draws++
			}
		},
		func(l gamelog.Log) { byFormat.add(string(l.Format()), l.Outcome) },
		func(l gamelog.Log) { byMatchType.add(string(l.MatchType), l.Outcome) },
		func(l gamelog.Log) { byDay.add(l.PlayedAt.UTC().Format(DayLayout), l.Outcome) },
		func(l gamelog.Log) {
			draft, ok := l.LiveDraft()
			if !ok {
				return
			}
			seen := make(map[gamelog.Element]struct{}, len(draft.ElementsPlayed))
			for _, el := range draft.ElementsPlayed {
				if _, dup := seen[el]; dup {
					continue
				}
				seen[el] = struct{}{}
				byElement.add(string(el), l.Outcome)
			}
		},
		func(l gamelog.Log) {
			for _, cardID := range l.MVPCardSet() {
				byMVPCard.add(cardID, l.Outcome)
			}
		},
		func(l gamelog.Log) {
			if c, ok := l.Constructed(); ok && c.Deck.IsInternal() {
				byDeck.add(c.Deck.DeckID, l.Outcome)
			}
		},
	}

	match := q.Filter()
	for _, l := range logs {
		if !match(l) {
			continue
		}
		for _, r := range reducers {
			r(l)
		}
	}

	summary.WinRate = ComputeWinRate(summary.Wins, summary.Losses)
	if summary.Total > 0 {
		summary.AvgDurationMinutes = float64(totalDuration) / float64(summary.Total)
	}

	return Facets{
		Summary:     summary,
		ByFormat:    byFormat.byVolume(),
		ByMatchType: byMatchType.byVolume(),
		ByDay:       byDay.byKey(),
		ByElement:   byElement.byVolume(),
		ByMVPCard:   byMVPCard.byVolume(),
		ByDeck:      byDeck.byVolume(),
	}, nil
}
