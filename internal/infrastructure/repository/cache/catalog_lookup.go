package cache

import (
	"context"
	"time"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/catalog"
	basecache "github.com/RomanDaru/algomancer.cc-sub000/internal/platform/cache"
)

// CatalogLookup caches catalog entries per id and only asks next for the
// ids it has not seen. Ids unknown upstream are cached as misses.
type CatalogLookup struct {
	next  catalog.Lookup
	cards *basecache.Store[cachedEntry[catalog.Card]]
	decks *basecache.Store[cachedEntry[catalog.Deck]]
}

var _ catalog.Lookup = (*CatalogLookup)(nil)

// NewCatalogLookup wraps next with per-id stores that expire after ttl.
func NewCatalogLookup(next catalog.Lookup, ttl time.Duration) *CatalogLookup {
	return &CatalogLookup{
		next:  next,
		cards: basecache.NewStore[cachedEntry[catalog.Card]](ttl),
		decks: basecache.NewStore[cachedEntry[catalog.Deck]](ttl),
	}
}

func (l *CatalogLookup) CardsByIDs(ctx context.Context, ids []string) ([]catalog.Card, error) {
	return lookupThrough(ctx, l.cards, "card:", ids, l.next.CardsByIDs, func(c catalog.Card) string { return c.ID })
}

func (l *CatalogLookup) DecksByIDs(ctx context.Context, ids []string) ([]catalog.Deck, error) {
	return lookupThrough(ctx, l.decks, "deck:", ids, l.next.DecksByIDs, func(d catalog.Deck) string { return d.ID })
}

type cachedEntry[T any] struct {
	value  T
	exists bool
}

func lookupThrough[T any](
	ctx context.Context,
	store *basecache.Store[cachedEntry[T]],
	prefix string,
	ids []string,
	load func(context.Context, []string) ([]T, error),
	idOf func(T) string,
) ([]T, error) {
	out := make([]T, 0, len(ids))
	missing := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if cached, ok := store.Get(ctx, prefix+id); ok {
			if cached.exists {
				out = append(out, cached.value)
			}
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := load(ctx, missing)
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(loaded))
	for _, item := range loaded {
		id := idOf(item)
		found[id] = struct{}{}
		store.Set(ctx, prefix+id, cachedEntry[T]{value: item, exists: true})
		out = append(out, item)
	}
	for _, id := range missing {
		if _, ok := found[id]; !ok {
			store.Set(ctx, prefix+id, cachedEntry[T]{})
		}
	}
	return out, nil
}
