package gamestats

import (
	"errors"
	"testing"
	"time"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 22, 30, 0, 0, time.UTC)
}

func sampleLogs() []gamelog.Log {
	return []gamelog.Log{
		{
			ID: "l1", UserID: "u1", Outcome: gamelog.OutcomeWin, PlayedAt: day(2), DurationMinutes: 30,
			MatchType: gamelog.MatchTypeOneVsOne,
			Variant:   gamelog.Constructed{Deck: gamelog.DeckRef{DeckID: "deck-a"}},
			Opponents: []gamelog.Opponent{{Name: "Alex", MVPCardIDs: []string{"card-x"}}},
		},
		{
			ID: "l2", UserID: "u1", Outcome: gamelog.OutcomeLoss, PlayedAt: day(2), DurationMinutes: 50,
			MatchType: gamelog.MatchTypeOneVsOne,
			Variant:   gamelog.Constructed{Deck: gamelog.DeckRef{ExternalDeckURL: "https://algomancer.cc/decks/ext"}},
		},
		{
			ID: "l3", UserID: "u1", Outcome: gamelog.OutcomeDraw, PlayedAt: day(5), DurationMinutes: 40,
			MatchType: gamelog.MatchTypeFFA, IsPublic: true,
			Variant: gamelog.LiveDraft{
				ElementsPlayed: []gamelog.Element{gamelog.ElementFire, gamelog.ElementWater, gamelog.ElementEarth},
				MVPCardIDs:     []string{"card-x", "card-y"},
			},
			Opponents: []gamelog.Opponent{{Name: "Sam", MVPCardIDs: []string{"card-x"}}},
		},
		{
			ID: "l4", UserID: "u2", Outcome: gamelog.OutcomeWin, PlayedAt: day(5),
			MatchType: gamelog.MatchTypeTwoVsTwo, IncludeInCommunityStats: true,
			Variant: gamelog.LiveDraft{ElementsPlayed: []gamelog.Element{gamelog.ElementFire}},
		},
		{
			ID: "l5", UserID: "u2", Outcome: gamelog.OutcomeLoss, PlayedAt: day(6),
			MatchType: gamelog.MatchTypeOneVsOne,
			Variant:   gamelog.Constructed{Deck: gamelog.DeckRef{DeckID: "deck-b"}},
		},
	}
}

func findBreakdown(items []Breakdown, key string) (Breakdown, bool) {
	for _, item := range items {
		if item.Key == key {
			return item, true
		}
	}
	return Breakdown{}, false
}

func TestAggregateMine(t *testing.T) {
	facets, err := Aggregate(sampleLogs(), Query{Scope: ScopeMine, OwnerID: "u1"})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	s := facets.Summary
	if s.Total != 3 || s.Wins != 1 || s.Losses != 1 || s.Draws != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.WinRate != 0.5 || s.AvgDurationMinutes != 40 {
		t.Fatalf("unexpected summary rates: %+v", s)
	}

	if len(facets.ByDay) != 2 || facets.ByDay[0].Key != "2026-03-02" || facets.ByDay[1].Key != "2026-03-05" {
		t.Fatalf("unexpected by day: %+v", facets.ByDay)
	}
	if facets.ByFormat[0].Key != "constructed" || facets.ByFormat[0].Total != 2 {
		t.Fatalf("unexpected by format: %+v", facets.ByFormat)
	}
	if len(facets.ByElement) != 3 {
		t.Fatalf("expected elements to be unwound, got %+v", facets.ByElement)
	}
	if len(facets.ByDeck) != 1 || facets.ByDeck[0].Key != "deck-a" {
		t.Fatalf("expected external decks to be excluded, got %+v", facets.ByDeck)
	}

	x, ok := findBreakdown(facets.ByMVPCard, "card-x")
	if !ok || x.Total != 2 || x.Wins != 1 || x.Draws != 1 {
		t.Fatalf("expected card-x once per log, got %+v", x)
	}
}

func TestAggregateCommunity(t *testing.T) {
	facets, err := Aggregate(sampleLogs(), Query{Scope: ScopeCommunity})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if facets.Summary.Total != 2 {
		t.Fatalf("expected only public or opted-in logs, got %+v", facets.Summary)
	}

	fire, ok := findBreakdown(facets.ByElement, "Fire")
	if !ok || fire.Total != 2 || fire.WinRate != 1 {
		t.Fatalf("unexpected fire breakdown: %+v", fire)
	}
}

func TestAggregateRange(t *testing.T) {
	from := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	to := day(5)
	facets, err := Aggregate(sampleLogs(), Query{Scope: ScopeMine, OwnerID: "u1", From: &from, To: &to})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if facets.Summary.Total != 1 {
		t.Fatalf("expected inclusive range to keep one log, got %+v", facets.Summary)
	}
}

func TestAggregateOwnerRequired(t *testing.T) {
	_, err := Aggregate(sampleLogs(), Query{Scope: ScopeMine})
	if !errors.Is(err, ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}

	facets, err := Aggregate(nil, Query{Scope: ScopeMine, OwnerID: "nobody"})
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if facets.Summary.Total != 0 || len(facets.ByDay) != 0 {
		t.Fatalf("expected empty facets, got %+v", facets)
	}
}

func TestComputeWinRate(t *testing.T) {
	if got := ComputeWinRate(0, 0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ComputeWinRate(3, 1); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}
