package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
)

type GameLogRepository struct {
	mu    sync.RWMutex
	items map[string]gamelog.Log
}

func NewGameLogRepository() *GameLogRepository {
	return &GameLogRepository{items: make(map[string]gamelog.Log)}
}

func (r *GameLogRepository) Create(_ context.Context, log gamelog.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[log.ID]; exists {
		return fmt.Errorf("game log id=%s already exists", log.ID)
	}
	r.items[log.ID] = log.Clone()
	return nil
}

func (r *GameLogRepository) GetByID(_ context.Context, id string) (gamelog.Log, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return gamelog.Log{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *GameLogRepository) ListByUser(_ context.Context, userID string, limit int) ([]gamelog.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamelog.Log, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item.Clone())
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *GameLogRepository) ApplyUpdate(_ context.Context, id string, update gamelog.Update, updatedAt time.Time) (gamelog.Log, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return gamelog.Log{}, false, nil
	}

	applied, err := gamelog.Apply(item, update)
	if err != nil {
		return gamelog.Log{}, true, fmt.Errorf("apply update to game log id=%s: %w", id, err)
	}
	applied.UpdatedAt = updatedAt
	r.items[id] = applied
	return applied.Clone(), true, nil
}

func (r *GameLogRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *GameLogRepository) Select(_ context.Context, selection gamelog.Selection) ([]gamelog.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamelog.Log, 0)
	for _, item := range r.items {
		if selection.Matches(item) {
			out = append(out, item.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(items []gamelog.Log) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].PlayedAt.Equal(items[j].PlayedAt) {
			return items[i].PlayedAt.After(items[j].PlayedAt)
		}
		return items[i].ID > items[j].ID
	})
}
