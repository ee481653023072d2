package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
	gamelogmock "github.com/RomanDaru/algomancer.cc-sub000/internal/mocks/domain/gamelog"
)

type fixedIDGenerator struct {
	id  string
	err error
}

func (g fixedIDGenerator) NewID() (string, error) {
	return g.id, g.err
}

func strRef(v string) *string { return &v }

func newTestGameLogService(t *testing.T) (*GameLogService, *gamelogmock.Repository) {
	t.Helper()

	repo := gamelogmock.NewRepository(t)
	svc := NewGameLogService(repo, gamelog.DefaultRules(), fixedIDGenerator{id: "log-1"}, nil)
	svc.now = func() time.Time { return time.Date(2026, 4, 2, 19, 0, 0, 0, time.UTC) }
	return svc, repo
}

func storedLog() gamelog.Log {
	return gamelog.Log{
		ID:             "log-1",
		UserID:         "user-1",
		Title:          "Friday night",
		Outcome:        gamelog.OutcomeWin,
		MatchType:      gamelog.MatchTypeCustom,
		MatchTypeLabel: "Archenemy",
		Variant:        gamelog.Constructed{Deck: gamelog.DeckRef{DeckID: "deck-1"}},
	}
}

func TestGameLogService_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestGameLogService(t)

	repo.
		On("Create", ctx, mock.MatchedBy(func(l gamelog.Log) bool {
			return l.ID == "log-1" && l.UserID == "user-1" && l.Title == gamelog.DefaultTitle &&
				l.Format() == gamelog.FormatLiveDraft && l.PlayedAt.Equal(svc.now())
		})).
		Return(nil).
		Once()

	got, err := svc.Create(ctx, "user-1", gamelog.Candidate{
		Outcome:   strRef("win"),
		Format:    strRef("live_draft"),
		MatchType: strRef("1v1"),
		LiveDraft: &gamelog.LiveDraftInput{ElementsPlayed: []string{"Fire", "Metal"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "log-1", got.ID)
}

func TestGameLogService_CreateRejectsInvalidCandidate(t *testing.T) {
	t.Parallel()

	svc, _ := newTestGameLogService(t)

	_, err := svc.Create(context.Background(), "user-1", gamelog.Candidate{
		Outcome:     strRef("win"),
		Format:      strRef("constructed"),
		MatchType:   strRef("1v1"),
		Constructed: &gamelog.ConstructedInput{},
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Result.FieldErrors, "constructed.deckId")
}

func TestGameLogService_CreateRequiresUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestGameLogService(t)
	_, err := svc.Create(context.Background(), " ", gamelog.Candidate{})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGameLogService_UpdateCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestGameLogService(t)
	current := storedLog()

	repo.On("GetByID", ctx, "log-1").Return(current, true, nil).Once()
	repo.
		On("ApplyUpdate", ctx, "log-1", mock.MatchedBy(func(u gamelog.Update) bool {
			return u.Set[gamelog.FieldMatchType] == gamelog.MatchTypeOneVsOne &&
				u.Unsets(gamelog.FieldMatchTypeLabel) &&
				u.Unsets(gamelog.FieldLiveDraft)
		}), mock.AnythingOfType("time.Time")).
		Return(func(_ context.Context, _ string, u gamelog.Update, _ time.Time) (gamelog.Log, bool, error) {
			applied, err := gamelog.Apply(current, u)
			return applied, true, err
		}).
		Once()

	got, err := svc.Update(ctx, "user-1", "log-1", gamelog.Candidate{MatchType: strRef("1v1")})
	require.NoError(t, err)
	assert.Equal(t, gamelog.MatchTypeOneVsOne, got.MatchType)
	assert.Empty(t, got.MatchTypeLabel)
}

func TestGameLogService_UpdateInheritsStoredParts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestGameLogService(t)
	current := storedLog()

	repo.On("GetByID", ctx, "log-1").Return(current, true, nil).Once()
	repo.
		On("ApplyUpdate", ctx, "log-1", mock.MatchedBy(func(u gamelog.Update) bool {
			c, ok := u.Set[gamelog.FieldConstructed].(gamelog.Constructed)
			return u.Set[gamelog.FieldMatchTypeLabel] == "Archenemy" && ok && c.Deck.DeckID == "deck-1"
		}), mock.Anything).
		Return(current, true, nil).
		Once()

	_, err := svc.Update(ctx, "user-1", "log-1", gamelog.Candidate{
		MatchType: strRef("custom"),
		Format:    strRef("constructed"),
	})
	require.NoError(t, err)
}

func TestGameLogService_UpdateRejectsVariantWithoutFormat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestGameLogService(t)
	repo.On("GetByID", ctx, "log-1").Return(storedLog(), true, nil).Once()

	_, err := svc.Update(ctx, "user-1", "log-1", gamelog.Candidate{
		LiveDraft: &gamelog.LiveDraftInput{ElementsPlayed: []string{"Fire"}},
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Result.FieldErrors, gamelog.FieldFormat)
}

func TestGameLogService_UpdateOtherUsersLog(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestGameLogService(t)
	repo.On("GetByID", ctx, "log-1").Return(storedLog(), true, nil).Once()

	_, err := svc.Update(ctx, "user-2", "log-1", gamelog.Candidate{Title: strRef("Mine now")})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGameLogService_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestGameLogService(t)
	private := storedLog()
	public := storedLog()
	public.ID = "log-2"
	public.IsPublic = true

	repo.On("GetByID", ctx, "log-1").Return(private, true, nil).Twice()
	repo.On("GetByID", ctx, "log-2").Return(public, true, nil).Once()
	repo.On("GetByID", ctx, "missing").Return(gamelog.Log{}, false, nil).Once()

	_, err := svc.Get(ctx, "user-1", "log-1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, "", "log-1")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, "", "log-2")
	require.NoError(t, err)

	_, err = svc.Get(ctx, "user-1", "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGameLogService_ListMineClampsLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestGameLogService(t)
	repo.On("ListByUser", ctx, "user-1", maxListLimit).Return([]gamelog.Log{storedLog()}, nil).Once()
	repo.On("ListByUser", ctx, "user-1", defaultListLimit).Return(nil, nil).Once()

	items, err := svc.ListMine(ctx, "user-1", 500)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = svc.ListMine(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGameLogService_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := newTestGameLogService(t)
	repo.On("GetByID", ctx, "log-1").Return(storedLog(), true, nil).Twice()
	repo.On("Delete", ctx, "log-1").Return(true, nil).Once()

	require.NoError(t, svc.Delete(ctx, "user-1", "log-1"))
	require.ErrorIs(t, svc.Delete(ctx, "user-2", "log-1"), ErrForbidden)
}

func TestGameLogService_ValidateDraft(t *testing.T) {
	t.Parallel()

	svc, _ := newTestGameLogService(t)

	full := svc.ValidateDraft(context.Background(), gamelog.Candidate{}, false)
	assert.False(t, full.IsValid)
	assert.Contains(t, full.FieldErrors, gamelog.FieldOutcome)

	partial := svc.ValidateDraft(context.Background(), gamelog.Candidate{}, true)
	assert.True(t, partial.IsValid)
}
