package gamestats

import "testing"

func TestRank(t *testing.T) {
	items := []Breakdown{
		{Key: "a", Total: 10, Wins: 8, Losses: 2},
		{Key: "b", Total: 4, Wins: 4, Losses: 0},
		{Key: "c", Total: 12, Wins: 6, Losses: 6, WinRate: 0.99},
	}

	got := Rank(items, RankOptions{MinSampleSize: 5})

	if got.MinSampleSize != 5 {
		t.Fatalf("unexpected min sample size: %d", got.MinSampleSize)
	}
	if len(got.MostPlayed) != 3 || got.MostPlayed[0].Key != "c" || got.MostPlayed[2].Key != "b" {
		t.Fatalf("unexpected most played: %+v", got.MostPlayed)
	}
	if len(got.HighestWinRate) != 2 {
		t.Fatalf("expected small sample to be excluded, got %+v", got.HighestWinRate)
	}
	if got.HighestWinRate[0].Key != "a" || got.HighestWinRate[0].WinRate != 0.8 {
		t.Fatalf("unexpected first entry: %+v", got.HighestWinRate[0])
	}
	if got.HighestWinRate[1].Key != "c" || got.HighestWinRate[1].WinRate != 0.5 {
		t.Fatalf("expected caller win rate to be recomputed, got %+v", got.HighestWinRate[1])
	}
}

func TestRankTieBreaksAndLimits(t *testing.T) {
	items := []Breakdown{
		{Key: "small", Total: 6, Wins: 3, Losses: 3},
		{Key: "big", Total: 20, Wins: 10, Losses: 10},
		{Key: "mid", Total: 6, Wins: 2, Losses: 2, Draws: 2},
	}

	got := Rank(items, RankOptions{MaxResults: 2})
	if got.MinSampleSize != DefaultMinSampleSize {
		t.Fatalf("expected default min sample size, got %d", got.MinSampleSize)
	}
	if len(got.MostPlayed) != 2 || got.MostPlayed[0].Key != "big" || got.MostPlayed[1].Key != "mid" {
		t.Fatalf("unexpected most played: %+v", got.MostPlayed)
	}
	if len(got.HighestWinRate) != 2 || got.HighestWinRate[0].Key != "big" || got.HighestWinRate[1].Key != "mid" {
		t.Fatalf("expected ties broken by total then key, got %+v", got.HighestWinRate)
	}

	again := Rank(got.MostPlayed, RankOptions{MaxResults: 2})
	if again.MostPlayed[0] != got.MostPlayed[0] {
		t.Fatalf("expected ranking to be idempotent")
	}
}

func TestMapRanked(t *testing.T) {
	ranked := Rank([]Breakdown{
		{Key: "x", Total: 6, Wins: 6},
		{Key: "y", Total: 2, Wins: 1, Losses: 1},
	}, RankOptions{})

	names := MapRanked(ranked, func(b Breakdown) string { return "card " + b.Key })
	if len(names.MostPlayed) != 2 || names.MostPlayed[0] != "card x" || names.HighestWinRate[0] != "card x" {
		t.Fatalf("unexpected projection: %+v", names)
	}

	keys := ranked.Keys(func(b Breakdown) string { return b.Key })
	if len(keys) != 2 {
		t.Fatalf("expected distinct keys across views, got %v", keys)
	}
}
