package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/catalog"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamestats"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/logging"
)

// StatsConfig holds the defaults applied when a query leaves a knob unset.
type StatsConfig struct {
	MinSampleSize int
	MaxResults    int
	ActivityWeeks int
}

func DefaultStatsConfig() StatsConfig {
	return StatsConfig{
		MinSampleSize: gamestats.DefaultMinSampleSize,
		MaxResults:    gamestats.DefaultMaxResults,
		ActivityWeeks: gamestats.DefaultActivityWeeks,
	}
}

type StatsQuery struct {
	Scope         string
	ViewerID      string
	From          *time.Time
	To            *time.Time
	MinSampleSize int
	MaxResults    int
	Weeks         int
}

// CardStat is an MVP card breakdown with catalog display data.
type CardStat struct {
	gamestats.Breakdown
	Name     string
	ImageURL string
}

// DeckStat is a deck breakdown with catalog display data.
type DeckStat struct {
	gamestats.Breakdown
	Name string
}

type StatsReport struct {
	Scope       gamestats.Scope
	From        *time.Time
	To          *time.Time
	Summary     gamestats.Summary
	ByFormat    []gamestats.Breakdown
	ByMatchType []gamestats.Breakdown
	TimeSeries  []gamestats.Breakdown
	Elements    []gamestats.Breakdown
	MVPCards    gamestats.RankedList[CardStat]
	Decks       gamestats.RankedList[DeckStat]
	Activity    []gamestats.ActivityDay
}

type StatsService struct {
	repo    gamelog.Repository
	catalog catalog.Lookup
	cfg     StatsConfig
	logger  *logging.Logger
	now     func() time.Time
}

// NewStatsService builds the statistics use case. lookup may be nil, in which
// case ranked entries carry ids only.
func NewStatsService(repo gamelog.Repository, lookup catalog.Lookup, cfg StatsConfig, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	defaults := DefaultStatsConfig()
	if cfg.MinSampleSize <= 0 {
		cfg.MinSampleSize = defaults.MinSampleSize
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaults.MaxResults
	}
	if cfg.ActivityWeeks <= 0 {
		cfg.ActivityWeeks = defaults.ActivityWeeks
	}

	return &StatsService{
		repo:    repo,
		catalog: lookup,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *StatsService) Get(ctx context.Context, input StatsQuery) (StatsReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Get")
	defer span.End()

	query := gamestats.Query{
		Scope:   gamestats.Scope(strings.TrimSpace(input.Scope)),
		OwnerID: strings.TrimSpace(input.ViewerID),
		From:    input.From,
		To:      input.To,
	}
	if query.Scope == "" {
		query.Scope = gamestats.ScopeMine
	}
	if err := query.Validate(); err != nil {
		if errors.Is(err, gamestats.ErrOwnerRequired) {
			return StatsReport{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return StatsReport{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	logs, err := s.repo.Select(ctx, query.Selection())
	if err != nil {
		return StatsReport{}, fmt.Errorf("select game logs: %w", err)
	}

	facets, err := gamestats.Aggregate(logs, query)
	if err != nil {
		return StatsReport{}, fmt.Errorf("aggregate game logs: %w", err)
	}

	rankOpts := gamestats.RankOptions{
		MinSampleSize: firstPositive(input.MinSampleSize, s.cfg.MinSampleSize),
		MaxResults:    firstPositive(input.MaxResults, s.cfg.MaxResults),
	}
	mvpCards := gamestats.Rank(facets.ByMVPCard, rankOpts)
	decks := gamestats.Rank(facets.ByDeck, rankOpts)

	reference := s.now().UTC()
	if query.To != nil && query.To.Before(reference) {
		reference = query.To.UTC()
	}

	cards, deckInfo := s.resolveNames(ctx, mvpCards, decks)

	report := StatsReport{
		Scope:       query.Scope,
		From:        query.From,
		To:          query.To,
		Summary:     facets.Summary,
		ByFormat:    facets.ByFormat,
		ByMatchType: facets.ByMatchType,
		TimeSeries:  facets.ByDay,
		Elements:    facets.ByElement,
		MVPCards: gamestats.MapRanked(mvpCards, func(b gamestats.Breakdown) CardStat {
			card := cards[b.Key]
			return CardStat{Breakdown: b, Name: card.Name, ImageURL: card.ImageURL}
		}),
		Decks: gamestats.MapRanked(decks, func(b gamestats.Breakdown) DeckStat {
			return DeckStat{Breakdown: b, Name: deckInfo[b.Key].Name}
		}),
		Activity: gamestats.BuildWindow(facets.ByDay, firstPositive(input.Weeks, s.cfg.ActivityWeeks), reference),
	}

	s.logger.DebugContext(ctx, "stats computed",
		"scope", query.Scope,
		"logs", facets.Summary.Total,
		"mvp_cards", len(facets.ByMVPCard),
		"decks", len(facets.ByDeck),
	)
	return report, nil
}

// resolveNames looks up card and deck display data concurrently. Lookup
// failures are logged and leave the entries unnamed.
func (s *StatsService) resolveNames(
	ctx context.Context,
	mvpCards gamestats.RankedList[gamestats.Breakdown],
	decks gamestats.RankedList[gamestats.Breakdown],
) (map[string]catalog.Card, map[string]catalog.Deck) {
	cardsByID := make(map[string]catalog.Card)
	decksByID := make(map[string]catalog.Deck)
	if s.catalog == nil {
		return cardsByID, decksByID
	}

	key := func(b gamestats.Breakdown) string { return b.Key }
	cardIDs := mvpCards.Keys(key)
	deckIDs := decks.Keys(key)

	var wg conc.WaitGroup
	if len(cardIDs) > 0 {
		wg.Go(func() {
			items, err := s.catalog.CardsByIDs(ctx, cardIDs)
			if err != nil {
				s.logger.WarnContext(ctx, "resolve mvp card names failed", "count", len(cardIDs), "error", err)
				return
			}
			for _, item := range items {
				cardsByID[item.ID] = item
			}
		})
	}
	if len(deckIDs) > 0 {
		wg.Go(func() {
			items, err := s.catalog.DecksByIDs(ctx, deckIDs)
			if err != nil {
				s.logger.WarnContext(ctx, "resolve deck names failed", "count", len(deckIDs), "error", err)
				return
			}
			for _, item := range items {
				decksByID[item.ID] = item
			}
		})
	}
	wg.Wait()

	return cardsByID, decksByID
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
