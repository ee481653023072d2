package catalog

import "context"

// Card is the display data of a card referenced by id in statistics.
type Card struct {
	ID       string
	Name     string
	ImageURL string
	Element  string
}

// Deck is the display data of an internal deck.
type Deck struct {
	ID       string
	Name     string
	OwnerID  string
	ImageURL string
}

// Lookup resolves opaque ids to display data. Unknown ids are omitted from
// the result rather than reported as errors.
type Lookup interface {
	CardsByIDs(ctx context.Context, ids []string) ([]Card, error)
	DecksByIDs(ctx context.Context, ids []string) ([]Deck, error)
}
