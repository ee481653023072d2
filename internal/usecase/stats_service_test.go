package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/catalog"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamestats"
	catalogmock "github.com/RomanDaru/algomancer.cc-sub000/internal/mocks/domain/catalog"
	gamelogmock "github.com/RomanDaru/algomancer.cc-sub000/internal/mocks/domain/gamelog"
)

func communityLogs() []gamelog.Log {
	played := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	logs := make([]gamelog.Log, 0, 6)
	for i := 0; i < 6; i++ {
		outcome := gamelog.OutcomeWin
		if i%3 == 0 {
			outcome = gamelog.OutcomeLoss
		}
		logs = append(logs, gamelog.Log{
			ID:        "log",
			UserID:    "user-1",
			IsPublic:  true,
			Outcome:   outcome,
			PlayedAt:  played.AddDate(0, 0, -i),
			MatchType: gamelog.MatchTypeOneVsOne,
			Variant:   gamelog.Constructed{Deck: gamelog.DeckRef{DeckID: "deck-1"}},
			Opponents: []gamelog.Opponent{{Name: "Alex", MVPCardIDs: []string{"card-1"}}},
		})
	}
	return logs
}

func newTestStatsService(t *testing.T) (*StatsService, *gamelogmock.Repository, *catalogmock.Lookup) {
	t.Helper()

	repo := gamelogmock.NewRepository(t)
	lookup := catalogmock.NewLookup(t)
	svc := NewStatsService(repo, lookup, StatsConfig{}, nil)
	svc.now = func() time.Time { return time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC) }
	return svc, repo, lookup
}

func TestStatsService_GetCommunity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, lookup := newTestStatsService(t)

	repo.On("Select", ctx, gamelog.Selection{Community: true}).Return(communityLogs(), nil).Once()
	lookup.On("CardsByIDs", mock.Anything, []string{"card-1"}).
		Return([]catalog.Card{{ID: "card-1", Name: "Pyre Drake", ImageURL: "https://img/card-1.png"}}, nil).
		Once()
	lookup.On("DecksByIDs", mock.Anything, []string{"deck-1"}).
		Return([]catalog.Deck{{ID: "deck-1", Name: "Fire Tempo"}}, nil).
		Once()

	report, err := svc.Get(ctx, StatsQuery{Scope: "community"})
	require.NoError(t, err)

	assert.Equal(t, gamestats.ScopeCommunity, report.Scope)
	assert.Equal(t, 6, report.Summary.Total)
	assert.Len(t, report.TimeSeries, 6)
	assert.Len(t, report.Activity, gamestats.DefaultActivityWeeks*7)

	require.Len(t, report.MVPCards.HighestWinRate, 1)
	assert.Equal(t, "Pyre Drake", report.MVPCards.HighestWinRate[0].Name)
	assert.Equal(t, 4, report.MVPCards.HighestWinRate[0].Wins)
	require.Len(t, report.Decks.MostPlayed, 1)
	assert.Equal(t, "Fire Tempo", report.Decks.MostPlayed[0].Name)
}

func TestStatsService_LookupFailureKeepsIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, lookup := newTestStatsService(t)

	repo.On("Select", ctx, gamelog.Selection{UserID: "user-1"}).Return(communityLogs(), nil).Once()
	lookup.On("CardsByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("catalog down")).Once()
	lookup.On("DecksByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("catalog down")).Once()

	report, err := svc.Get(ctx, StatsQuery{Scope: "mine", ViewerID: "user-1", MinSampleSize: 10, Weeks: 4})
	require.NoError(t, err)

	assert.Equal(t, 10, report.MVPCards.MinSampleSize)
	assert.Empty(t, report.MVPCards.HighestWinRate)
	require.Len(t, report.MVPCards.MostPlayed, 1)
	assert.Equal(t, "card-1", report.MVPCards.MostPlayed[0].Key)
	assert.Empty(t, report.MVPCards.MostPlayed[0].Name)
	assert.Len(t, report.Activity, 28)
}

func TestStatsService_MineRequiresViewer(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestStatsService(t)

	_, err := svc.Get(context.Background(), StatsQuery{Scope: "mine"})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, gamestats.ErrOwnerRequired)
}

func TestStatsService_RejectsBadQuery(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestStatsService(t)
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)

	_, err := svc.Get(context.Background(), StatsQuery{Scope: "everyone"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Get(context.Background(), StatsQuery{Scope: "community", From: &from, To: &to})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatsService_EmptyResultWithoutCatalogCalls(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo, _ := newTestStatsService(t)
	repo.On("Select", ctx, gamelog.Selection{UserID: "user-9"}).Return(nil, nil).Once()

	report, err := svc.Get(ctx, StatsQuery{ViewerID: "user-9"})
	require.NoError(t, err)
	assert.Equal(t, gamestats.ScopeMine, report.Scope)
	assert.Zero(t, report.Summary.Total)
}
