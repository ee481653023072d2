package gamelog

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Field is the external name of a log attribute. The same names are used as
// validation paths and as update keys.
type Field string

const (
	FieldTitle                   = "title"
	FieldNotes                   = "notes"
	FieldPlayedAt                = "playedAt"
	FieldDurationMinutes         = "durationMinutes"
	FieldOutcome                 = "outcome"
	FieldIsPublic                = "isPublic"
	FieldIncludeInCommunityStats = "includeInCommunityStats"
	FieldMatchType               = "matchType"
	FieldMatchTypeLabel          = "matchTypeLabel"
	FieldOpponents               = "opponents"
	FieldFormat                  = "format"
	FieldConstructed             = "constructed"
	FieldLiveDraft               = "liveDraft"
)

// Update is the minimal change set for a partial patch.
type Update struct {
	Set   map[Field]any
	Unset []Field
}

func (u Update) Has(f Field) bool {
	if _, ok := u.Set[f]; ok {
		return true
	}
	return u.Unsets(f)
}

func (u Update) Unsets(f Field) bool {
	for _, item := range u.Unset {
		if item == f {
			return true
		}
	}
	return false
}

// BuildUpdate turns a patch into a diff against current. Cascade rules are
// evaluated on the resolved state (patch value, else current value) so that
// the inactive variant and stale custom labels are always removed, whether or
// not the patch mentions them. current may be nil for a brand new record.
func BuildUpdate(current *Log, patch Candidate) Update {
	set := make(map[Field]any)

	if patch.Title != nil {
		set[FieldTitle] = normalizeTitle(*patch.Title)
	}
	if patch.Notes != nil {
		set[FieldNotes] = strings.TrimSpace(*patch.Notes)
	}
	if patch.PlayedAt != nil {
		set[FieldPlayedAt] = patch.PlayedAt.UTC()
	}
	if patch.DurationMinutes != nil {
		set[FieldDurationMinutes] = *patch.DurationMinutes
	}
	if patch.Outcome != nil {
		set[FieldOutcome] = Outcome(strings.TrimSpace(*patch.Outcome))
	}
	if patch.IsPublic != nil {
		set[FieldIsPublic] = *patch.IsPublic
	}
	if patch.IncludeInCommunityStats != nil {
		set[FieldIncludeInCommunityStats] = *patch.IncludeInCommunityStats
	}
	if patch.MatchType != nil {
		set[FieldMatchType] = MatchType(strings.TrimSpace(*patch.MatchType))
	}
	if patch.MatchTypeLabel != nil {
		set[FieldMatchTypeLabel] = strings.TrimSpace(*patch.MatchTypeLabel)
	}
	if patch.Opponents != nil {
		set[FieldOpponents] = normalizeOpponents(patch.Opponents)
	}
	if patch.Format != nil {
		set[FieldFormat] = Format(strings.TrimSpace(*patch.Format))
	}
	if patch.Constructed != nil {
		set[FieldConstructed] = normalizeConstructed(*patch.Constructed)
	}
	if patch.LiveDraft != nil {
		set[FieldLiveDraft] = normalizeLiveDraft(*patch.LiveDraft)
	}

	st := resolve(current, set)
	unset := make([]Field, 0, 2)
	for _, rule := range cascadeRules {
		if field, ok := rule(st); ok {
			delete(set, field)
			unset = append(unset, field)
		}
	}
	sort.Slice(unset, func(i, j int) bool { return unset[i] < unset[j] })

	return Update{Set: set, Unset: unset}
}

type resolvedState struct {
	matchType MatchType
	format    Format
}

func resolve(current *Log, set map[Field]any) resolvedState {
	var st resolvedState
	if current != nil {
		st.matchType = current.MatchType
		st.format = current.Format()
	}
	if mt, ok := set[FieldMatchType].(MatchType); ok {
		st.matchType = mt
	}
	if f, ok := set[FieldFormat].(Format); ok {
		st.format = f
	}
	return st
}

type cascadeRule func(resolvedState) (Field, bool)

var cascadeRules = []cascadeRule{
	func(st resolvedState) (Field, bool) {
		return FieldMatchTypeLabel, st.matchType != MatchTypeCustom
	},
	func(st resolvedState) (Field, bool) {
		return FieldLiveDraft, st.format == FormatConstructed
	},
	func(st resolvedState) (Field, bool) {
		return FieldConstructed, st.format == FormatLiveDraft
	},
}

// Apply materializes u on a copy of log.
func Apply(log Log, u Update) (Log, error) {
	out := log.Clone()

	for field, value := range u.Set {
		if err := assign(&out, field, value); err != nil {
			return Log{}, err
		}
	}
	for _, field := range u.Unset {
		switch field {
		case FieldMatchTypeLabel:
			out.MatchTypeLabel = ""
		case FieldConstructed:
			if _, ok := out.Constructed(); ok {
				out.Variant = nil
			}
		case FieldLiveDraft:
			if _, ok := out.LiveDraft(); ok {
				out.Variant = nil
			}
		default:
			return Log{}, fmt.Errorf("field %s cannot be unset", field)
		}
	}

	if want, ok := u.Set[FieldFormat].(Format); ok && out.Format() != want {
		return Log{}, fmt.Errorf("format %s requires its %s payload", want, variantField(want))
	}
	if out.Variant == nil {
		return Log{}, fmt.Errorf("log %s has no format payload after update", log.ID)
	}
	return out, nil
}

func assign(l *Log, field Field, value any) error {
	ok := true
	switch field {
	case FieldTitle:
		l.Title, ok = value.(string)
	case FieldNotes:
		l.Notes, ok = value.(string)
	case FieldPlayedAt:
		l.PlayedAt, ok = value.(time.Time)
	case FieldDurationMinutes:
		l.DurationMinutes, ok = value.(int)
	case FieldOutcome:
		l.Outcome, ok = value.(Outcome)
	case FieldIsPublic:
		l.IsPublic, ok = value.(bool)
	case FieldIncludeInCommunityStats:
		l.IncludeInCommunityStats, ok = value.(bool)
	case FieldMatchType:
		l.MatchType, ok = value.(MatchType)
	case FieldMatchTypeLabel:
		l.MatchTypeLabel, ok = value.(string)
	case FieldOpponents:
		l.Opponents, ok = value.([]Opponent)
	case FieldFormat:
		_, ok = value.(Format)
	case FieldConstructed:
		var c Constructed
		c, ok = value.(Constructed)
		l.Variant = c
	case FieldLiveDraft:
		var d LiveDraft
		d, ok = value.(LiveDraft)
		l.Variant = d
	default:
		return fmt.Errorf("unknown field %s", field)
	}
	if !ok {
		return fmt.Errorf("field %s: unexpected value type %T", field, value)
	}
	return nil
}

func variantField(f Format) Field {
	if f == FormatLiveDraft {
		return FieldLiveDraft
	}
	return FieldConstructed
}
