package gamelog

import (
	"fmt"
	"strings"
	"time"
)

// Candidate is an unvalidated create or patch payload. Nil pointers and nil
// slices mean the field was not supplied.
type Candidate struct {
	Title                   *string
	Notes                   *string
	PlayedAt                *time.Time
	DurationMinutes         *int
	Outcome                 *string
	IsPublic                *bool
	IncludeInCommunityStats *bool
	MatchType               *string
	MatchTypeLabel          *string
	Opponents               []OpponentInput
	Format                  *string
	Constructed             *ConstructedInput
	LiveDraft               *LiveDraftInput
}

type OpponentInput struct {
	Name            string
	UserID          string
	Elements        []string
	ExternalDeckURL string
	MVPCardIDs      []string
}

func (o OpponentInput) hasPayload() bool {
	return len(o.Elements) > 0 ||
		strings.TrimSpace(o.ExternalDeckURL) != "" ||
		len(o.MVPCardIDs) > 0
}

type ConstructedInput struct {
	DeckID                  string
	ExternalDeckURL         string
	TeammateDeckID          string
	TeammateExternalDeckURL string
}

type LiveDraftInput struct {
	ElementsPlayed []string
	MVPCardIDs     []string
}

// HasVariantPayload reports whether either format payload was supplied.
func (c Candidate) HasVariantPayload() bool {
	return c.Constructed != nil || c.LiveDraft != nil
}

// NewLog builds a normalized log from a candidate that already passed
// validation with RequireAll.
func NewLog(id, userID string, c Candidate, now time.Time) (Log, error) {
	if c.Format == nil {
		return Log{}, fmt.Errorf("format is required")
	}

	variant, err := buildVariant(Format(strings.TrimSpace(*c.Format)), c)
	if err != nil {
		return Log{}, err
	}

	now = now.UTC()
	log := Log{
		ID:        id,
		UserID:    userID,
		Title:     normalizeTitle(derefString(c.Title)),
		Notes:     strings.TrimSpace(derefString(c.Notes)),
		PlayedAt:  now,
		Outcome:   Outcome(strings.TrimSpace(derefString(c.Outcome))),
		MatchType: MatchType(strings.TrimSpace(derefString(c.MatchType))),
		Opponents: normalizeOpponents(c.Opponents),
		Variant:   variant,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.PlayedAt != nil && !c.PlayedAt.IsZero() {
		log.PlayedAt = c.PlayedAt.UTC()
	}
	if c.DurationMinutes != nil {
		log.DurationMinutes = *c.DurationMinutes
	}
	if c.IsPublic != nil {
		log.IsPublic = *c.IsPublic
	}
	if c.IncludeInCommunityStats != nil {
		log.IncludeInCommunityStats = *c.IncludeInCommunityStats
	}
	if log.MatchType == MatchTypeCustom {
		log.MatchTypeLabel = strings.TrimSpace(derefString(c.MatchTypeLabel))
	}

	return log, nil
}

func buildVariant(format Format, c Candidate) (Variant, error) {
	switch format {
	case FormatConstructed:
		if c.Constructed == nil {
			return nil, fmt.Errorf("constructed payload is required for format %s", format)
		}
		return normalizeConstructed(*c.Constructed), nil
	case FormatLiveDraft:
		if c.LiveDraft == nil {
			return nil, fmt.Errorf("liveDraft payload is required for format %s", format)
		}
		return normalizeLiveDraft(*c.LiveDraft), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func normalizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return DefaultTitle
	}
	return title
}

func normalizeConstructed(in ConstructedInput) Constructed {
	out := Constructed{
		Deck: DeckRef{
			DeckID:          strings.TrimSpace(in.DeckID),
			ExternalDeckURL: strings.TrimSpace(in.ExternalDeckURL),
		},
	}
	mate := DeckRef{
		DeckID:          strings.TrimSpace(in.TeammateDeckID),
		ExternalDeckURL: strings.TrimSpace(in.TeammateExternalDeckURL),
	}
	if mate.DeckID != "" || mate.ExternalDeckURL != "" {
		out.Teammate = &mate
	}
	return out
}

func normalizeLiveDraft(in LiveDraftInput) LiveDraft {
	return LiveDraft{
		ElementsPlayed: normalizeElements(in.ElementsPlayed),
		MVPCardIDs:     uniqueIDs(in.MVPCardIDs),
	}
}

// normalizeOpponents trims every row and drops rows that carry no data.
func normalizeOpponents(in []OpponentInput) []Opponent {
	out := make([]Opponent, 0, len(in))
	for _, row := range in {
		opp := Opponent{
			Name:            strings.TrimSpace(row.Name),
			UserID:          strings.TrimSpace(row.UserID),
			Elements:        normalizeElements(row.Elements),
			ExternalDeckURL: strings.TrimSpace(row.ExternalDeckURL),
			MVPCardIDs:      uniqueIDs(row.MVPCardIDs),
		}
		if opp.IsEmpty() {
			continue
		}
		out = append(out, opp)
	}
	return out
}

func normalizeElements(in []string) []Element {
	out := make([]Element, 0, len(in))
	seen := make(map[Element]struct{}, len(in))
	for _, raw := range in {
		el := Element(strings.TrimSpace(raw))
		if el == "" {
			continue
		}
		if _, ok := seen[el]; ok {
			continue
		}
		seen[el] = struct{}{}
		out = append(out, el)
	}
	return out
}

func uniqueIDs(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
