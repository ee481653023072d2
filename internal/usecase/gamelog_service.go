package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
	idgen "github.com/RomanDaru/algomancer.cc-sub000/internal/platform/id"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/logging"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type GameLogService struct {
	repo   gamelog.Repository
	rules  gamelog.Rules
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time
}

func NewGameLogService(
	repo gamelog.Repository,
	rules gamelog.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *GameLogService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameLogService{
		repo:   repo,
		rules:  rules,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// ValidateDraft runs validation without persisting anything. Partial drafts
// only check the supplied fields.
func (s *GameLogService) ValidateDraft(ctx context.Context, candidate gamelog.Candidate, partial bool) gamelog.ValidationResult {
	_, span := startUsecaseSpan(ctx, "usecase.GameLogService.ValidateDraft")
	defer span.End()

	return gamelog.Validate(candidate, s.rules, gamelog.ValidateOptions{RequireAll: !partial})
}

func (s *GameLogService) Create(ctx context.Context, userID string, candidate gamelog.Candidate) (gamelog.Log, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameLogService.Create")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return gamelog.Log{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	result := gamelog.Validate(candidate, s.rules, gamelog.ValidateOptions{RequireAll: true})
	if !result.IsValid {
		return gamelog.Log{}, &ValidationError{Result: result}
	}

	logID, err := s.idGen.NewID()
	if err != nil {
		return gamelog.Log{}, fmt.Errorf("generate game log id: %w", err)
	}

	record, err := gamelog.NewLog(logID, userID, candidate, s.now())
	if err != nil {
		return gamelog.Log{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return gamelog.Log{}, fmt.Errorf("create game log: %w", err)
	}

	s.logger.InfoContext(ctx, "game log created",
		"log_id", record.ID,
		"user_id", userID,
		"format", record.Format(),
		"match_type", record.MatchType,
	)
	return record, nil
}

func (s *GameLogService) Update(ctx context.Context, userID, logID string, patch gamelog.Candidate) (gamelog.Log, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameLogService.Update")
	defer span.End()

	current, err := s.getOwned(ctx, userID, logID)
	if err != nil {
		return gamelog.Log{}, err
	}

	patch = inheritFromCurrent(current, patch)
	result := gamelog.Validate(patch, s.rules, gamelog.ValidateOptions{})
	if !result.IsValid {
		return gamelog.Log{}, &ValidationError{Result: result}
	}

	update := gamelog.BuildUpdate(&current, patch)
	updated, exists, err := s.repo.ApplyUpdate(ctx, current.ID, update, s.now().UTC())
	if err != nil {
		return gamelog.Log{}, fmt.Errorf("update game log: %w", err)
	}
	if !exists {
		return gamelog.Log{}, fmt.Errorf("%w: game log id=%s", ErrNotFound, current.ID)
	}

	s.logger.InfoContext(ctx, "game log updated",
		"log_id", updated.ID,
		"set_fields", len(update.Set),
		"unset_fields", update.Unset,
	)
	return updated, nil
}

// Get returns a log the viewer may read: their own, or any public one.
// Private logs of other users are reported as not found.
func (s *GameLogService) Get(ctx context.Context, viewerID, logID string) (gamelog.Log, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameLogService.Get")
	defer span.End()

	record, err := s.load(ctx, logID)
	if err != nil {
		return gamelog.Log{}, err
	}
	if record.UserID != strings.TrimSpace(viewerID) && !record.IsPublic {
		return gamelog.Log{}, fmt.Errorf("%w: game log id=%s", ErrNotFound, record.ID)
	}
	return record, nil
}

func (s *GameLogService) ListMine(ctx context.Context, userID string, limit int) ([]gamelog.Log, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameLogService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	items, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list game logs: %w", err)
	}
	return items, nil
}

func (s *GameLogService) Delete(ctx context.Context, userID, logID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameLogService.Delete")
	defer span.End()

	current, err := s.getOwned(ctx, userID, logID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("delete game log: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: game log id=%s", ErrNotFound, current.ID)
	}

	s.logger.InfoContext(ctx, "game log deleted", "log_id", current.ID, "user_id", current.UserID)
	return nil
}

func (s *GameLogService) load(ctx context.Context, logID string) (gamelog.Log, error) {
	logID = strings.TrimSpace(logID)
	if logID == "" {
		return gamelog.Log{}, fmt.Errorf("%w: game log id is required", ErrInvalidInput)
	}

	record, exists, err := s.repo.GetByID(ctx, logID)
	if err != nil {
		return gamelog.Log{}, fmt.Errorf("get game log: %w", err)
	}
	if !exists {
		return gamelog.Log{}, fmt.Errorf("%w: game log id=%s", ErrNotFound, logID)
	}
	return record, nil
}

func (s *GameLogService) getOwned(ctx context.Context, userID, logID string) (gamelog.Log, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return gamelog.Log{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}

	record, err := s.load(ctx, logID)
	if err != nil {
		return gamelog.Log{}, err
	}
	if record.UserID != userID {
		return gamelog.Log{}, fmt.Errorf("%w: game log id=%s belongs to another user", ErrForbidden, record.ID)
	}
	return record, nil
}

// inheritFromCurrent fills the parts of a patch that are required by a
// touched field but already stored: the custom label when only the match type
// is resent, and the variant payload when only the same format is resent.
func inheritFromCurrent(current gamelog.Log, patch gamelog.Candidate) gamelog.Candidate {
	if patch.MatchType != nil &&
		gamelog.MatchType(strings.TrimSpace(*patch.MatchType)) == gamelog.MatchTypeCustom &&
		patch.MatchTypeLabel == nil &&
		current.MatchTypeLabel != "" {
		label := current.MatchTypeLabel
		patch.MatchTypeLabel = &label
	}

	if patch.Format == nil || patch.HasVariantPayload() {
		return patch
	}
	if gamelog.Format(strings.TrimSpace(*patch.Format)) != current.Format() {
		return patch
	}

	if c, ok := current.Constructed(); ok {
		in := gamelog.ConstructedInput{
			DeckID:          c.Deck.DeckID,
			ExternalDeckURL: c.Deck.ExternalDeckURL,
		}
		if c.Teammate != nil {
			in.TeammateDeckID = c.Teammate.DeckID
			in.TeammateExternalDeckURL = c.Teammate.ExternalDeckURL
		}
		patch.Constructed = &in
	}
	if d, ok := current.LiveDraft(); ok {
		elements := make([]string, 0, len(d.ElementsPlayed))
		for _, el := range d.ElementsPlayed {
			elements = append(elements, string(el))
		}
		patch.LiveDraft = &gamelog.LiveDraftInput{
			ElementsPlayed: elements,
			MVPCardIDs:     append([]string(nil), d.MVPCardIDs...),
		}
	}
	return patch
}
