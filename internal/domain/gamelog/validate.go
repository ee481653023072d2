package gamelog

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ValidateOptions controls how strictly a candidate is checked. RequireAll is
// used for creation; partial updates only check supplied or implied fields.
type ValidateOptions struct {
	RequireAll bool
}

// ValidationResult is addressable by field path (for example
// "opponents.2.mvpCardIds") so callers can bind messages to form fields.
type ValidationResult struct {
	IsValid     bool
	Errors      []string
	FieldErrors map[string][]string
}

func (r ValidationResult) Error() string {
	return strings.Join(r.Errors, "; ")
}

type violations struct {
	errors []string
	fields map[string][]string
}

func (v *violations) add(path, msg string) {
	v.fields[path] = append(v.fields[path], msg)
	v.errors = append(v.errors, path+": "+msg)
}

func (v *violations) addf(path, format string, args ...any) {
	v.add(path, fmt.Sprintf(format, args...))
}

func (v *violations) result() ValidationResult {
	return ValidationResult{
		IsValid:     len(v.errors) == 0,
		Errors:      v.errors,
		FieldErrors: v.fields,
	}
}

// Validate checks a candidate against rules. It never stops at the first
// failure and never returns an error; every violation is reported.
func Validate(c Candidate, rules Rules, opts ValidateOptions) ValidationResult {
	v := &violations{errors: make([]string, 0), fields: make(map[string][]string)}

	validateScalars(v, c, rules, opts)
	validateMatchType(v, c, rules, opts)
	validateOpponents(v, c.Opponents, rules)
	validateVariants(v, c, rules, opts)

	return v.result()
}

func validateScalars(v *violations, c Candidate, rules Rules, opts ValidateOptions) {
	if c.Title != nil {
		title := strings.TrimSpace(*c.Title)
		if title != "" {
			checkLength(v, FieldTitle, title, rules.TitleMin, rules.TitleMax)
		}
	}

	if c.Notes != nil {
		if n := utf8.RuneCountInString(strings.TrimSpace(*c.Notes)); n > rules.NotesMax {
			v.addf(FieldNotes, "must be at most %d characters", rules.NotesMax)
		}
	}

	if c.PlayedAt != nil && c.PlayedAt.IsZero() {
		v.add(FieldPlayedAt, "must be a valid timestamp")
	}

	if c.DurationMinutes != nil {
		if d := *c.DurationMinutes; d < 0 || d > rules.DurationMax {
			v.addf(FieldDurationMinutes, "must be between 0 and %d", rules.DurationMax)
		}
	}

	switch {
	case c.Outcome != nil:
		if _, ok := AllOutcomes[Outcome(strings.TrimSpace(*c.Outcome))]; !ok {
			v.add(FieldOutcome, "must be one of win, loss, draw")
		}
	case opts.RequireAll:
		v.add(FieldOutcome, "is required")
	}

	switch {
	case c.Format != nil:
		if _, ok := AllFormats[Format(strings.TrimSpace(*c.Format))]; !ok {
			v.add(FieldFormat, "must be one of constructed, live_draft")
		}
	case opts.RequireAll || c.HasVariantPayload():
		v.add(FieldFormat, "is required")
	}
}

func validateMatchType(v *violations, c Candidate, rules Rules, opts ValidateOptions) {
	label := strings.TrimSpace(derefString(c.MatchTypeLabel))

	if c.MatchType == nil {
		if opts.RequireAll {
			v.add(FieldMatchType, "is required")
			return
		}
		// Without a match type the label can only be length-checked.
		if label != "" {
			checkLength(v, FieldMatchTypeLabel, label, rules.MatchLabelMin, rules.MatchLabelMax)
		}
		return
	}

	mt := MatchType(strings.TrimSpace(*c.MatchType))
	if _, ok := AllMatchTypes[mt]; !ok {
		v.add(FieldMatchType, "must be one of 1v1, 2v2, ffa, custom")
		return
	}
	if mt != MatchTypeCustom {
		return
	}
	if label == "" {
		v.add(FieldMatchTypeLabel, "is required when matchType is custom")
		return
	}
	checkLength(v, FieldMatchTypeLabel, label, rules.MatchLabelMin, rules.MatchLabelMax)
}

func validateOpponents(v *violations, opponents []OpponentInput, rules Rules) {
	for i, opp := range opponents {
		base := FieldOpponents + "." + strconv.Itoa(i)

		name := strings.TrimSpace(opp.Name)
		switch {
		case name != "":
			checkLength(v, base+".name", name, rules.OpponentNameMin, rules.OpponentNameMax)
		case opp.hasPayload():
			v.add(base+".name", "is required when other opponent fields are set")
		}

		for j, raw := range opp.Elements {
			if _, ok := AllElements[Element(strings.TrimSpace(raw))]; !ok {
				v.addf(base+".elements."+strconv.Itoa(j), "unknown element %q", raw)
			}
		}

		if link := strings.TrimSpace(opp.ExternalDeckURL); link != "" {
			if msg := rules.DeckLinks.Check(link); msg != "" {
				v.add(base+".externalDeckUrl", msg)
			}
		}

		checkMVPCards(v, base+".mvpCardIds", opp.MVPCardIDs, rules)
	}
}

func validateVariants(v *violations, c Candidate, rules Rules, opts ValidateOptions) {
	var format Format
	if c.Format != nil {
		format = Format(strings.TrimSpace(*c.Format))
	}

	switch format {
	case FormatConstructed:
		if c.Constructed == nil {
			v.add(FieldConstructed, "is required when format is constructed")
		}
		if c.LiveDraft != nil {
			v.add(FieldLiveDraft, "must be absent when format is constructed")
		}
	case FormatLiveDraft:
		if c.LiveDraft == nil {
			v.add(FieldLiveDraft, "is required when format is live_draft")
		}
		if c.Constructed != nil {
			v.add(FieldConstructed, "must be absent when format is live_draft")
		}
	default:
		// Unknown or missing format is already reported; only flag a
		// payload pair that can never be valid.
		if c.Constructed != nil && c.LiveDraft != nil {
			v.add(FieldLiveDraft, "constructed and liveDraft cannot both be set")
		}
	}

	if c.Constructed != nil {
		validateConstructed(v, *c.Constructed, rules)
	}
	if c.LiveDraft != nil {
		validateLiveDraft(v, *c.LiveDraft, rules)
	}
}

func validateConstructed(v *violations, in ConstructedInput, rules Rules) {
	deckID := strings.TrimSpace(in.DeckID)
	link := strings.TrimSpace(in.ExternalDeckURL)
	switch {
	case deckID != "" && link != "":
		v.add(FieldConstructed+".deckId", "provide either deckId or externalDeckUrl, not both")
	case deckID == "" && link == "":
		v.add(FieldConstructed+".deckId", "deckId or externalDeckUrl is required")
	}
	if link != "" {
		if msg := rules.DeckLinks.Check(link); msg != "" {
			v.add(FieldConstructed+".externalDeckUrl", msg)
		}
	}

	mateID := strings.TrimSpace(in.TeammateDeckID)
	mateLink := strings.TrimSpace(in.TeammateExternalDeckURL)
	if mateID != "" && mateLink != "" {
		v.add(FieldConstructed+".teammateDeckId", "provide either teammateDeckId or teammateExternalDeckUrl, not both")
	}
	if mateLink != "" {
		if msg := rules.DeckLinks.Check(mateLink); msg != "" {
			v.add(FieldConstructed+".teammateExternalDeckUrl", msg)
		}
	}
}

func validateLiveDraft(v *violations, in LiveDraftInput, rules Rules) {
	path := FieldLiveDraft + ".elementsPlayed"
	switch {
	case len(in.ElementsPlayed) == 0:
		v.add(path, "at least one element is required")
	case len(in.ElementsPlayed) > rules.MaxElements:
		v.addf(path, "must contain at most %d elements", rules.MaxElements)
	}

	seen := make(map[Element]struct{}, len(in.ElementsPlayed))
	for i, raw := range in.ElementsPlayed {
		el := Element(strings.TrimSpace(raw))
		itemPath := path + "." + strconv.Itoa(i)
		if _, ok := AllElements[el]; !ok {
			v.addf(itemPath, "unknown element %q", raw)
			continue
		}
		if _, dup := seen[el]; dup {
			v.addf(itemPath, "duplicate element %q", raw)
			continue
		}
		seen[el] = struct{}{}
	}

	checkMVPCards(v, FieldLiveDraft+".mvpCardIds", in.MVPCardIDs, rules)
}

func checkMVPCards(v *violations, path string, ids []string, rules Rules) {
	if n := len(uniqueIDs(ids)); n > rules.MaxMVPCards {
		v.addf(path, "must contain at most %d distinct cards", rules.MaxMVPCards)
	}
}

func checkLength(v *violations, path, value string, minLen, maxLen int) {
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		v.addf(path, "must be between %d and %d characters", minLen, maxLen)
	}
}
