package postgres

import (
	"time"

	"github.com/bytedance/sonic"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
)

const gameLogTable = "game_logs"

var gameLogColumns = []string{
	"public_id",
	"user_id",
	"title",
	"notes",
	"played_at",
	"duration_minutes",
	"outcome",
	"is_public",
	"include_in_community_stats",
	"match_type",
	"match_type_label",
	"opponents",
	"format",
	"constructed",
	"live_draft",
	"created_at",
	"updated_at",
}

type gameLogTableModel struct {
	PublicID                string    `db:"public_id"`
	UserID                  string    `db:"user_id"`
	Title                   string    `db:"title"`
	Notes                   string    `db:"notes"`
	PlayedAt                time.Time `db:"played_at"`
	DurationMinutes         int       `db:"duration_minutes"`
	Outcome                 string    `db:"outcome"`
	IsPublic                bool      `db:"is_public"`
	IncludeInCommunityStats bool      `db:"include_in_community_stats"`
	MatchType               string    `db:"match_type"`
	MatchTypeLabel          *string   `db:"match_type_label"`
	Opponents               []byte    `db:"opponents"`
	Format                  string    `db:"format"`
	Constructed             []byte    `db:"constructed"`
	LiveDraft               []byte    `db:"live_draft"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

type gameLogInsertModel struct {
	PublicID                string    `db:"public_id"`
	UserID                  string    `db:"user_id"`
	Title                   string    `db:"title"`
	Notes                   string    `db:"notes"`
	PlayedAt                time.Time `db:"played_at"`
	DurationMinutes         int       `db:"duration_minutes"`
	Outcome                 string    `db:"outcome"`
	IsPublic                bool      `db:"is_public"`
	IncludeInCommunityStats bool      `db:"include_in_community_stats"`
	MatchType               string    `db:"match_type"`
	MatchTypeLabel          *string   `db:"match_type_label"`
	Opponents               string    `db:"opponents"`
	Format                  string    `db:"format"`
	Constructed             *string   `db:"constructed"`
	LiveDraft               *string   `db:"live_draft"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

// JSON documents stored in the jsonb columns.

type opponentDocument struct {
	Name            string   `json:"name"`
	UserID          string   `json:"userId,omitempty"`
	Elements        []string `json:"elements,omitempty"`
	ExternalDeckURL string   `json:"externalDeckUrl,omitempty"`
	MVPCardIDs      []string `json:"mvpCardIds,omitempty"`
}

type deckRefDocument struct {
	DeckID          string `json:"deckId,omitempty"`
	ExternalDeckURL string `json:"externalDeckUrl,omitempty"`
}

type constructedDocument struct {
	Deck     deckRefDocument  `json:"deck"`
	Teammate *deckRefDocument `json:"teammate,omitempty"`
}

type liveDraftDocument struct {
	ElementsPlayed []string `json:"elementsPlayed"`
	MVPCardIDs     []string `json:"mvpCardIds,omitempty"`
}

func toGameLogInsertModel(l gamelog.Log) (gameLogInsertModel, error) {
	opponents, err := encodeOpponents(l.Opponents)
	if err != nil {
		return gameLogInsertModel{}, err
	}

	model := gameLogInsertModel{
		PublicID:                l.ID,
		UserID:                  l.UserID,
		Title:                   l.Title,
		Notes:                   l.Notes,
		PlayedAt:                l.PlayedAt,
		DurationMinutes:         l.DurationMinutes,
		Outcome:                 string(l.Outcome),
		IsPublic:                l.IsPublic,
		IncludeInCommunityStats: l.IncludeInCommunityStats,
		MatchType:               string(l.MatchType),
		MatchTypeLabel:          nullableString(l.MatchTypeLabel),
		Opponents:               opponents,
		Format:                  string(l.Format()),
		CreatedAt:               l.CreatedAt,
		UpdatedAt:               l.UpdatedAt,
	}

	if c, ok := l.Constructed(); ok {
		doc, err := encodeConstructed(c)
		if err != nil {
			return gameLogInsertModel{}, err
		}
		model.Constructed = &doc
	}
	if d, ok := l.LiveDraft(); ok {
		doc, err := encodeLiveDraft(d)
		if err != nil {
			return gameLogInsertModel{}, err
		}
		model.LiveDraft = &doc
	}
	return model, nil
}

func (m gameLogTableModel) toDomain() (gamelog.Log, error) {
	l := gamelog.Log{
		ID:                      m.PublicID,
		UserID:                  m.UserID,
		Title:                   m.Title,
		Notes:                   m.Notes,
		PlayedAt:                m.PlayedAt.UTC(),
		DurationMinutes:         m.DurationMinutes,
		Outcome:                 gamelog.Outcome(m.Outcome),
		IsPublic:                m.IsPublic,
		IncludeInCommunityStats: m.IncludeInCommunityStats,
		MatchType:               gamelog.MatchType(m.MatchType),
		CreatedAt:               m.CreatedAt.UTC(),
		UpdatedAt:               m.UpdatedAt.UTC(),
	}
	if m.MatchTypeLabel != nil {
		l.MatchTypeLabel = *m.MatchTypeLabel
	}

	if len(m.Opponents) > 0 {
		var docs []opponentDocument
		if err := sonic.Unmarshal(m.Opponents, &docs); err != nil {
			return gamelog.Log{}, err
		}
		l.Opponents = make([]gamelog.Opponent, 0, len(docs))
		for _, d := range docs {
			l.Opponents = append(l.Opponents, gamelog.Opponent{
				Name:            d.Name,
				UserID:          d.UserID,
				Elements:        toElements(d.Elements),
				ExternalDeckURL: d.ExternalDeckURL,
				MVPCardIDs:      d.MVPCardIDs,
			})
		}
	}

	switch gamelog.Format(m.Format) {
	case gamelog.FormatConstructed:
		var doc constructedDocument
		if err := sonic.Unmarshal(m.Constructed, &doc); err != nil {
			return gamelog.Log{}, err
		}
		c := gamelog.Constructed{Deck: gamelog.DeckRef(doc.Deck)}
		if doc.Teammate != nil {
			mate := gamelog.DeckRef(*doc.Teammate)
			c.Teammate = &mate
		}
		l.Variant = c
	case gamelog.FormatLiveDraft:
		var doc liveDraftDocument
		if err := sonic.Unmarshal(m.LiveDraft, &doc); err != nil {
			return gamelog.Log{}, err
		}
		l.Variant = gamelog.LiveDraft{
			ElementsPlayed: toElements(doc.ElementsPlayed),
			MVPCardIDs:     doc.MVPCardIDs,
		}
	}

	return l, nil
}

func encodeOpponents(items []gamelog.Opponent) (string, error) {
	docs := make([]opponentDocument, 0, len(items))
	for _, o := range items {
		docs = append(docs, opponentDocument{
			Name:            o.Name,
			UserID:          o.UserID,
			Elements:        fromElements(o.Elements),
			ExternalDeckURL: o.ExternalDeckURL,
			MVPCardIDs:      o.MVPCardIDs,
		})
	}
	return sonic.MarshalString(docs)
}

func encodeConstructed(c gamelog.Constructed) (string, error) {
	doc := constructedDocument{Deck: deckRefDocument(c.Deck)}
	if c.Teammate != nil {
		mate := deckRefDocument(*c.Teammate)
		doc.Teammate = &mate
	}
	return sonic.MarshalString(doc)
}

func encodeLiveDraft(d gamelog.LiveDraft) (string, error) {
	return sonic.MarshalString(liveDraftDocument{
		ElementsPlayed: fromElements(d.ElementsPlayed),
		MVPCardIDs:     d.MVPCardIDs,
	})
}

func toElements(in []string) []gamelog.Element {
	out := make([]gamelog.Element, 0, len(in))
	for _, v := range in {
		out = append(out, gamelog.Element(v))
	}
	return out
}

func fromElements(in []gamelog.Element) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, string(v))
	}
	return out
}

func nullableString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
