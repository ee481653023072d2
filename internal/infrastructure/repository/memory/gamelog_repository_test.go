package memory

import (
	"context"
	"testing"
	"time"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
)

func seedLog(id, userID string, day int) gamelog.Log {
	return gamelog.Log{
		ID:             id,
		UserID:         userID,
		Title:          "Game " + id,
		Outcome:        gamelog.OutcomeWin,
		PlayedAt:       time.Date(2026, 2, day, 20, 0, 0, 0, time.UTC),
		MatchType:      gamelog.MatchTypeCustom,
		MatchTypeLabel: "Archenemy",
		Variant:        gamelog.Constructed{Deck: gamelog.DeckRef{DeckID: "deck-" + id}},
	}
}

func TestGameLogRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewGameLogRepository()

	for i, id := range []string{"a", "b", "c"} {
		if err := repo.Create(ctx, seedLog(id, "user-1", i+1)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	if err := repo.Create(ctx, seedLog("a", "user-1", 9)); err == nil {
		t.Fatalf("expected duplicate id to fail")
	}

	items, err := repo.ListByUser(ctx, "user-1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != "c" || items[1].ID != "b" {
		t.Fatalf("expected newest first with limit, got %+v", items)
	}
}

func TestGameLogRepository_ApplyUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewGameLogRepository()
	stored := seedLog("a", "user-1", 1)
	if err := repo.Create(ctx, stored); err != nil {
		t.Fatalf("create: %v", err)
	}

	oneVsOne := "1v1"
	format := "live_draft"
	update := gamelog.BuildUpdate(&stored, gamelog.Candidate{
		MatchType: &oneVsOne,
		Format:    &format,
		LiveDraft: &gamelog.LiveDraftInput{ElementsPlayed: []string{"Water"}},
	})
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	got, ok, err := repo.ApplyUpdate(ctx, "a", update, at)
	if err != nil || !ok {
		t.Fatalf("apply update: ok=%v err=%v", ok, err)
	}
	if got.MatchTypeLabel != "" || got.Format() != gamelog.FormatLiveDraft || !got.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected updated log: %+v", got)
	}

	reloaded, _, _ := repo.GetByID(ctx, "a")
	if _, isConstructed := reloaded.Constructed(); isConstructed {
		t.Fatalf("constructed payload must be gone after switching format")
	}

	if _, ok, _ := repo.ApplyUpdate(ctx, "missing", update, at); ok {
		t.Fatalf("expected missing log to report not found")
	}
}

func TestGameLogRepository_SelectAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGameLogRepository()
	mine := seedLog("a", "user-1", 1)
	public := seedLog("b", "user-2", 2)
	public.IsPublic = true
	for _, l := range []gamelog.Log{mine, public} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	community, err := repo.Select(ctx, gamelog.Selection{Community: true})
	if err != nil || len(community) != 1 || community[0].ID != "b" {
		t.Fatalf("unexpected community selection: %+v err=%v", community, err)
	}

	deleted, err := repo.Delete(ctx, "a")
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	own, _ := repo.Select(ctx, gamelog.Selection{UserID: "user-1"})
	if len(own) != 0 {
		t.Fatalf("expected no logs after delete, got %+v", own)
	}
}
