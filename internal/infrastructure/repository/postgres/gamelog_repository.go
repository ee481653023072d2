package postgres

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
	qb "github.com/RomanDaru/algomancer.cc-sub000/internal/platform/querybuilder"
)

var ErrDuplicateGameLog = crerr.New("game log already exists")

type GameLogRepository struct {
	db *sqlx.DB
}

func NewGameLogRepository(db *sqlx.DB) *GameLogRepository {
	return &GameLogRepository{db: db}
}

func (r *GameLogRepository) Create(ctx context.Context, log gamelog.Log) error {
	model, err := toGameLogInsertModel(log)
	if err != nil {
		return crerr.Wrapf(err, "encode game log id=%s", log.ID)
	}

	query, args, err := qb.InsertModel(gameLogTable, model, "")
	if err != nil {
		return crerr.Wrap(err, "build insert game log query")
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return crerr.Wrapf(ErrDuplicateGameLog, "id=%s", log.ID)
		}
		return crerr.Wrap(err, "insert game log")
	}
	return nil
}

func (r *GameLogRepository) GetByID(ctx context.Context, id string) (gamelog.Log, bool, error) {
	query, args, err := qb.Select(gameLogColumns...).
		From(gameLogTable).
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return gamelog.Log{}, false, crerr.Wrap(err, "build get game log query")
	}

	var row gameLogTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gamelog.Log{}, false, nil
		}
		return gamelog.Log{}, false, crerr.Wrap(err, "get game log")
	}

	item, err := row.toDomain()
	if err != nil {
		return gamelog.Log{}, false, crerr.Wrapf(err, "decode game log id=%s", id)
	}
	return item, true, nil
}

func (r *GameLogRepository) ListByUser(ctx context.Context, userID string, limit int) ([]gamelog.Log, error) {
	query, args, err := qb.Select(gameLogColumns...).
		From(gameLogTable).
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		OrderBy("played_at DESC", "public_id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list game logs query")
	}
	return r.selectLogs(ctx, query, args)
}

func (r *GameLogRepository) Select(ctx context.Context, selection gamelog.Selection) ([]gamelog.Log, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if selection.Community {
		conditions = append(conditions, qb.Or(qb.Eq("is_public", true), qb.Eq("include_in_community_stats", true)))
	} else {
		conditions = append(conditions, qb.Eq("user_id", selection.UserID))
	}
	if selection.From != nil {
		conditions = append(conditions, qb.Gte("played_at", selection.From.UTC()))
	}
	if selection.To != nil {
		conditions = append(conditions, qb.Lte("played_at", selection.To.UTC()))
	}

	query, args, err := qb.Select(gameLogColumns...).
		From(gameLogTable).
		Where(conditions...).
		OrderBy("played_at DESC", "public_id DESC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select game logs query")
	}
	return r.selectLogs(ctx, query, args)
}

func (r *GameLogRepository) ApplyUpdate(ctx context.Context, id string, update gamelog.Update, updatedAt time.Time) (gamelog.Log, bool, error) {
	builder := qb.Update(gameLogTable)
	for field, value := range update.Set {
		if field == gamelog.FieldFormat {
			builder.Set("format", string(value.(gamelog.Format)))
			continue
		}
		column, encoded, err := encodeUpdateValue(field, value)
		if err != nil {
			return gamelog.Log{}, false, crerr.Wrapf(err, "encode update field %s", field)
		}
		builder.Set(column, encoded)
	}
	for _, field := range update.Unset {
		column, ok := nullableColumns[field]
		if !ok {
			return gamelog.Log{}, false, crerr.Newf("field %s cannot be unset", field)
		}
		builder.Set(column, nil)
	}

	query, args, err := builder.
		Set("updated_at", updatedAt.UTC()).
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		Suffix(returningColumns()).
		ToSQL()
	if err != nil {
		return gamelog.Log{}, false, crerr.Wrap(err, "build update game log query")
	}

	var row gameLogTableModel
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if isNotFound(err) {
			return gamelog.Log{}, false, nil
		}
		return gamelog.Log{}, false, crerr.Wrapf(err, "update game log id=%s", id)
	}

	item, err := row.toDomain()
	if err != nil {
		return gamelog.Log{}, false, crerr.Wrapf(err, "decode game log id=%s", id)
	}
	return item, true, nil
}

func (r *GameLogRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := qb.Update(gameLogTable).
		SetExpr("deleted_at", "NOW()").
		Where(qb.Eq("public_id", id), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return false, crerr.Wrap(err, "build delete game log query")
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, crerr.Wrap(err, "soft delete game log")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, crerr.Wrap(err, "read deleted rows")
	}
	return affected > 0, nil
}

func (r *GameLogRepository) selectLogs(ctx context.Context, query string, args []any) ([]gamelog.Log, error) {
	var rows []gameLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select game logs")
	}

	out := make([]gamelog.Log, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, crerr.Wrapf(err, "decode game log id=%s", row.PublicID)
		}
		out = append(out, item)
	}
	return out, nil
}

var nullableColumns = map[gamelog.Field]string{
	gamelog.FieldMatchTypeLabel: "match_type_label",
	gamelog.FieldConstructed:    "constructed",
	gamelog.FieldLiveDraft:      "live_draft",
}

// encodeUpdateValue maps a diff entry to its column and database value.
func encodeUpdateValue(field gamelog.Field, value any) (string, any, error) {
	switch v := value.(type) {
	case string:
		switch field {
		case gamelog.FieldTitle:
			return "title", v, nil
		case gamelog.FieldNotes:
			return "notes", v, nil
		case gamelog.FieldMatchTypeLabel:
			return "match_type_label", nullableString(v), nil
		}
	case time.Time:
		if field == gamelog.FieldPlayedAt {
			return "played_at", v.UTC(), nil
		}
	case int:
		if field == gamelog.FieldDurationMinutes {
			return "duration_minutes", v, nil
		}
	case bool:
		switch field {
		case gamelog.FieldIsPublic:
			return "is_public", v, nil
		case gamelog.FieldIncludeInCommunityStats:
			return "include_in_community_stats", v, nil
		}
	case gamelog.Outcome:
		return "outcome", string(v), nil
	case gamelog.MatchType:
		return "match_type", string(v), nil
	case []gamelog.Opponent:
		doc, err := encodeOpponents(v)
		return "opponents", doc, err
	case gamelog.Constructed:
		doc, err := encodeConstructed(v)
		return "constructed", doc, err
	case gamelog.LiveDraft:
		doc, err := encodeLiveDraft(v)
		return "live_draft", doc, err
	}
	return "", nil, fmt.Errorf("unsupported value %T for field %s", value, field)
}

func returningColumns() string {
	out := "RETURNING "
	for i, col := range gameLogColumns {
		if i > 0 {
			out += ", "
		}
		out += col
	}
	return out
}
