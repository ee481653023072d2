package httpapi

import (
	"sort"
	"time"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamestats"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/usecase"
)

// gameLogRequest is shared by create, validate and patch. Absent keys stay
// nil so partial updates only touch what was sent.
type gameLogRequest struct {
	Title                   *string             `json:"title" validate:"omitempty,max=200"`
	Notes                   *string             `json:"notes" validate:"omitempty,max=4000"`
	PlayedAt                *time.Time          `json:"playedAt"`
	DurationMinutes         *int                `json:"durationMinutes"`
	Outcome                 *string             `json:"outcome"`
	IsPublic                *bool               `json:"isPublic"`
	IncludeInCommunityStats *bool               `json:"includeInCommunityStats"`
	MatchType               *string             `json:"matchType"`
	MatchTypeLabel          *string             `json:"matchTypeLabel" validate:"omitempty,max=200"`
	Opponents               []opponentRequest   `json:"opponents" validate:"omitempty,max=16,dive"`
	Format                  *string             `json:"format"`
	Constructed             *constructedRequest `json:"constructed"`
	LiveDraft               *liveDraftRequest   `json:"liveDraft"`
}

type opponentRequest struct {
	Name            string   `json:"name" validate:"max=200"`
	UserID          string   `json:"userId" validate:"max=128"`
	Elements        []string `json:"elements" validate:"omitempty,max=16"`
	ExternalDeckURL string   `json:"externalDeckUrl" validate:"max=2048"`
	MVPCardIDs      []string `json:"mvpCardIds" validate:"omitempty,max=16,dive,max=128"`
}

type constructedRequest struct {
	DeckID                  string `json:"deckId" validate:"max=128"`
	ExternalDeckURL         string `json:"externalDeckUrl" validate:"max=2048"`
	TeammateDeckID          string `json:"teammateDeckId" validate:"max=128"`
	TeammateExternalDeckURL string `json:"teammateExternalDeckUrl" validate:"max=2048"`
}

type liveDraftRequest struct {
	ElementsPlayed []string `json:"elementsPlayed" validate:"omitempty,max=16"`
	MVPCardIDs     []string `json:"mvpCardIds" validate:"omitempty,max=16,dive,max=128"`
}

type statsQueryRequest struct {
	Scope     string `validate:"omitempty,oneof=mine community"`
	MinSample int    `validate:"omitempty,min=1,max=1000"`
	Limit     int    `validate:"omitempty,min=1,max=100"`
	Weeks     int    `validate:"omitempty,min=1,max=104"`
}

func (r gameLogRequest) toCandidate() gamelog.Candidate {
	c := gamelog.Candidate{
		Title:                   r.Title,
		Notes:                   r.Notes,
		PlayedAt:                r.PlayedAt,
		DurationMinutes:         r.DurationMinutes,
		Outcome:                 r.Outcome,
		IsPublic:                r.IsPublic,
		IncludeInCommunityStats: r.IncludeInCommunityStats,
		MatchType:               r.MatchType,
		MatchTypeLabel:          r.MatchTypeLabel,
		Format:                  r.Format,
	}
	if r.Opponents != nil {
		c.Opponents = make([]gamelog.OpponentInput, 0, len(r.Opponents))
		for _, o := range r.Opponents {
			c.Opponents = append(c.Opponents, gamelog.OpponentInput(o))
		}
	}
	if r.Constructed != nil {
		in := gamelog.ConstructedInput(*r.Constructed)
		c.Constructed = &in
	}
	if r.LiveDraft != nil {
		in := gamelog.LiveDraftInput(*r.LiveDraft)
		c.LiveDraft = &in
	}
	return c
}

type gameLogDTO struct {
	ID                      string          `json:"id"`
	UserID                  string          `json:"userId"`
	Title                   string          `json:"title"`
	Notes                   string          `json:"notes,omitempty"`
	PlayedAt                time.Time       `json:"playedAt"`
	DurationMinutes         int             `json:"durationMinutes"`
	Outcome                 string          `json:"outcome"`
	IsPublic                bool            `json:"isPublic"`
	IncludeInCommunityStats bool            `json:"includeInCommunityStats"`
	MatchType               string          `json:"matchType"`
	MatchTypeLabel          string          `json:"matchTypeLabel,omitempty"`
	Opponents               []opponentDTO   `json:"opponents"`
	Format                  string          `json:"format"`
	Constructed             *constructedDTO `json:"constructed,omitempty"`
	LiveDraft               *liveDraftDTO   `json:"liveDraft,omitempty"`
	CreatedAt               time.Time       `json:"createdAt"`
	UpdatedAt               time.Time       `json:"updatedAt"`
}

type opponentDTO struct {
	Name            string   `json:"name"`
	UserID          string   `json:"userId,omitempty"`
	Elements        []string `json:"elements,omitempty"`
	ExternalDeckURL string   `json:"externalDeckUrl,omitempty"`
	MVPCardIDs      []string `json:"mvpCardIds,omitempty"`
}

type deckRefDTO struct {
	DeckID          string `json:"deckId,omitempty"`
	ExternalDeckURL string `json:"externalDeckUrl,omitempty"`
}

type constructedDTO struct {
	Deck     deckRefDTO  `json:"deck"`
	Teammate *deckRefDTO `json:"teammate,omitempty"`
}

type liveDraftDTO struct {
	ElementsPlayed []string `json:"elementsPlayed"`
	MVPCardIDs     []string `json:"mvpCardIds"`
}

type validationResultDTO struct {
	IsValid     bool                `json:"isValid"`
	Errors      []string            `json:"errors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func gameLogToDTO(l gamelog.Log) gameLogDTO {
	out := gameLogDTO{
		ID:                      l.ID,
		UserID:                  l.UserID,
		Title:                   l.Title,
		Notes:                   l.Notes,
		PlayedAt:                l.PlayedAt,
		DurationMinutes:         l.DurationMinutes,
		Outcome:                 string(l.Outcome),
		IsPublic:                l.IsPublic,
		IncludeInCommunityStats: l.IncludeInCommunityStats,
		MatchType:               string(l.MatchType),
		MatchTypeLabel:          l.MatchTypeLabel,
		Opponents:               make([]opponentDTO, 0, len(l.Opponents)),
		Format:                  string(l.Format()),
		CreatedAt:               l.CreatedAt,
		UpdatedAt:               l.UpdatedAt,
	}
	for _, o := range l.Opponents {
		out.Opponents = append(out.Opponents, opponentDTO{
			Name:            o.Name,
			UserID:          o.UserID,
			Elements:        elementStrings(o.Elements),
			ExternalDeckURL: o.ExternalDeckURL,
			MVPCardIDs:      o.MVPCardIDs,
		})
	}

	switch v := l.Variant.(type) {
	case gamelog.Constructed:
		dto := &constructedDTO{Deck: deckRefDTO(v.Deck)}
		if v.Teammate != nil {
			mate := deckRefDTO(*v.Teammate)
			dto.Teammate = &mate
		}
		out.Constructed = dto
	case gamelog.LiveDraft:
		out.LiveDraft = &liveDraftDTO{
			ElementsPlayed: elementStrings(v.ElementsPlayed),
			MVPCardIDs:     nonNil(v.MVPCardIDs),
		}
	}
	return out
}

func gameLogsToDTO(items []gamelog.Log) []gameLogDTO {
	out := make([]gameLogDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameLogToDTO(item))
	}
	return out
}

func validationResultToDTO(r gamelog.ValidationResult) validationResultDTO {
	out := validationResultDTO{
		IsValid:     r.IsValid,
		Errors:      nonNil(r.Errors),
		FieldErrors: r.FieldErrors,
	}
	if out.FieldErrors == nil {
		out.FieldErrors = map[string][]string{}
	}
	return out
}

type breakdownDTO struct {
	Key     string  `json:"key"`
	Total   int     `json:"total"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Draws   int     `json:"draws"`
	WinRate float64 `json:"winRate"`
}

type summaryDTO struct {
	Total              int     `json:"total"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	Draws              int     `json:"draws"`
	WinRate            float64 `json:"winRate"`
	AvgDurationMinutes float64 `json:"avgDurationMinutes"`
}

type cardStatDTO struct {
	breakdownDTO
	Name     string `json:"name,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type deckStatDTO struct {
	breakdownDTO
	Name string `json:"name,omitempty"`
}

type rankedDTO[T any] struct {
	MostPlayed     []T `json:"mostPlayed"`
	HighestWinRate []T `json:"highestWinRate"`
	MinSampleSize  int `json:"minSampleSize"`
}

type activityDayDTO struct {
	Date     string `json:"date"`
	Total    int    `json:"total"`
	IsFuture bool   `json:"isFuture"`
}

type statsDTO struct {
	Scope       string                 `json:"scope"`
	From        *time.Time             `json:"from,omitempty"`
	To          *time.Time             `json:"to,omitempty"`
	Summary     summaryDTO             `json:"summary"`
	ByFormat    []breakdownDTO         `json:"byFormat"`
	ByMatchType []breakdownDTO         `json:"byMatchType"`
	TimeSeries  []breakdownDTO         `json:"timeSeries"`
	Elements    []breakdownDTO         `json:"elements"`
	MVPCards    rankedDTO[cardStatDTO] `json:"mvpCards"`
	Decks       rankedDTO[deckStatDTO] `json:"decks"`
	Activity    []activityDayDTO       `json:"activity"`
}

func statsToDTO(r usecase.StatsReport) statsDTO {
	out := statsDTO{
		Scope: string(r.Scope),
		From:  r.From,
		To:    r.To,
		Summary: summaryDTO{
			Total:              r.Summary.Total,
			Wins:               r.Summary.Wins,
			Losses:             r.Summary.Losses,
			Draws:              r.Summary.Draws,
			WinRate:            r.Summary.WinRate,
			AvgDurationMinutes: r.Summary.AvgDurationMinutes,
		},
		ByFormat:    breakdownsToDTO(r.ByFormat),
		ByMatchType: breakdownsToDTO(r.ByMatchType),
		TimeSeries:  breakdownsToDTO(r.TimeSeries),
		Elements:    breakdownsToDTO(r.Elements),
		MVPCards: rankedToDTO(r.MVPCards, func(c usecase.CardStat) cardStatDTO {
			return cardStatDTO{breakdownDTO: breakdownToDTO(c.Breakdown), Name: c.Name, ImageURL: c.ImageURL}
		}),
		Decks: rankedToDTO(r.Decks, func(d usecase.DeckStat) deckStatDTO {
			return deckStatDTO{breakdownDTO: breakdownToDTO(d.Breakdown), Name: d.Name}
		}),
		Activity: make([]activityDayDTO, 0, len(r.Activity)),
	}
	for _, day := range r.Activity {
		out.Activity = append(out.Activity, activityDayDTO(day))
	}
	return out
}

func rankedToDTO[T, U any](in gamestats.RankedList[T], fn func(T) U) rankedDTO[U] {
	mapped := gamestats.MapRanked(in, fn)
	return rankedDTO[U]{
		MostPlayed:     mapped.MostPlayed,
		HighestWinRate: mapped.HighestWinRate,
		MinSampleSize:  mapped.MinSampleSize,
	}
}

func breakdownToDTO(b gamestats.Breakdown) breakdownDTO {
	return breakdownDTO(b)
}

func breakdownsToDTO(items []gamestats.Breakdown) []breakdownDTO {
	out := make([]breakdownDTO, 0, len(items))
	for _, item := range items {
		out = append(out, breakdownToDTO(item))
	}
	return out
}

func elementStrings(in []gamelog.Element) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		out = append(out, string(e))
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
