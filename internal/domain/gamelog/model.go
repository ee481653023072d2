package gamelog

import (
	"strings"
	"time"
)

const DefaultTitle = "Untitled Game"

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

var AllOutcomes = map[Outcome]struct{}{
	OutcomeWin:  {},
	OutcomeLoss: {},
	OutcomeDraw: {},
}

type Format string

const (
	FormatConstructed Format = "constructed"
	FormatLiveDraft   Format = "live_draft"
)

var AllFormats = map[Format]struct{}{
	FormatConstructed: {},
	FormatLiveDraft:   {},
}

type MatchType string

const (
	MatchTypeOneVsOne MatchType = "1v1"
	MatchTypeTwoVsTwo MatchType = "2v2"
	MatchTypeFFA      MatchType = "ffa"
	MatchTypeCustom   MatchType = "custom"
)

var AllMatchTypes = map[MatchType]struct{}{
	MatchTypeOneVsOne: {},
	MatchTypeTwoVsTwo: {},
	MatchTypeFFA:      {},
	MatchTypeCustom:   {},
}

// Element is one of the five basic Algomancy elements.
type Element string

const (
	ElementFire  Element = "Fire"
	ElementWater Element = "Water"
	ElementEarth Element = "Earth"
	ElementWood  Element = "Wood"
	ElementMetal Element = "Metal"
)

var AllElements = map[Element]struct{}{
	ElementFire:  {},
	ElementWater: {},
	ElementEarth: {},
	ElementWood:  {},
	ElementMetal: {},
}

// Opponent is one row of the opponents list. Elements are only meaningful
// for live-draft logs.
type Opponent struct {
	Name            string
	UserID          string
	Elements        []Element
	ExternalDeckURL string
	MVPCardIDs      []string
}

// IsEmpty reports whether the row carries no data at all.
func (o Opponent) IsEmpty() bool {
	return strings.TrimSpace(o.Name) == "" &&
		strings.TrimSpace(o.UserID) == "" &&
		len(o.Elements) == 0 &&
		strings.TrimSpace(o.ExternalDeckURL) == "" &&
		len(o.MVPCardIDs) == 0
}

// DeckRef points at either an internal deck or an external deck link, never both.
type DeckRef struct {
	DeckID          string
	ExternalDeckURL string
}

func (d DeckRef) IsInternal() bool {
	return d.DeckID != ""
}

// Variant is the format-specific payload of a log. Only Constructed and
// LiveDraft implement it, so a log can never hold both.
type Variant interface {
	Format() Format
	isVariant()
}

type Constructed struct {
	Deck     DeckRef
	Teammate *DeckRef
}

func (Constructed) Format() Format { return FormatConstructed }
func (Constructed) isVariant()     {}

type LiveDraft struct {
	ElementsPlayed []Element
	MVPCardIDs     []string
}

func (LiveDraft) Format() Format { return FormatLiveDraft }
func (LiveDraft) isVariant()     {}

// Log is one played match owned by exactly one user.
type Log struct {
	ID                      string
	UserID                  string
	Title                   string
	Notes                   string
	PlayedAt                time.Time
	DurationMinutes         int
	Outcome                 Outcome
	IsPublic                bool
	IncludeInCommunityStats bool
	MatchType               MatchType
	MatchTypeLabel          string
	Opponents               []Opponent
	Variant                 Variant
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (l Log) Format() Format {
	if l.Variant == nil {
		return ""
	}
	return l.Variant.Format()
}

func (l Log) Constructed() (Constructed, bool) {
	switch v := l.Variant.(type) {
	case Constructed:
		return v, true
	case *Constructed:
		if v != nil {
			return *v, true
		}
	}
	return Constructed{}, false
}

func (l Log) LiveDraft() (LiveDraft, bool) {
	switch v := l.Variant.(type) {
	case LiveDraft:
		return v, true
	case *LiveDraft:
		if v != nil {
			return *v, true
		}
	}
	return LiveDraft{}, false
}

// CommunityVisible reports whether the log is eligible for community stats.
func (l Log) CommunityVisible() bool {
	return l.IsPublic || l.IncludeInCommunityStats
}

// MVPCardSet returns the union of the player's and every opponent's MVP card
// ids, each id at most once, in first-seen order.
func (l Log) MVPCardSet() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(ids []string) {
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	if draft, ok := l.LiveDraft(); ok {
		add(draft.MVPCardIDs)
	}
	for _, opp := range l.Opponents {
		add(opp.MVPCardIDs)
	}
	return out
}

func (l Log) Clone() Log {
	copied := l
	copied.Opponents = make([]Opponent, 0, len(l.Opponents))
	for _, opp := range l.Opponents {
		o := opp
		o.Elements = append([]Element(nil), opp.Elements...)
		o.MVPCardIDs = append([]string(nil), opp.MVPCardIDs...)
		copied.Opponents = append(copied.Opponents, o)
	}

	switch v := l.Variant.(type) {
	case Constructed:
		c := v
		if v.Teammate != nil {
			mate := *v.Teammate
			c.Teammate = &mate
		}
		copied.Variant = c
	case LiveDraft:
		copied.Variant = LiveDraft{
			ElementsPlayed: append([]Element(nil), v.ElementsPlayed...),
			MVPCardIDs:     append([]string(nil), v.MVPCardIDs...),
		}
	}
	return copied
}
