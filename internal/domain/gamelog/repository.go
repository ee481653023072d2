package gamelog

import (
	"context"
	"time"
)

// Selection narrows the set of logs handed to statistics. Exactly one of
// UserID or Community should be set; From and To are inclusive bounds on
// PlayedAt.
type Selection struct {
	UserID    string
	Community bool
	From      *time.Time
	To        *time.Time
}

func (s Selection) Matches(l Log) bool {
	if s.Community {
		if !l.CommunityVisible() {
			return false
		}
	} else if l.UserID != s.UserID {
		return false
	}
	if s.From != nil && l.PlayedAt.Before(*s.From) {
		return false
	}
	if s.To != nil && l.PlayedAt.After(*s.To) {
		return false
	}
	return true
}

// Repository describes game log persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, log Log) error
	GetByID(ctx context.Context, id string) (Log, bool, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Log, error)
	ApplyUpdate(ctx context.Context, id string, update Update, updatedAt time.Time) (Log, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Select(ctx context.Context, selection Selection) ([]Log, error)
}
