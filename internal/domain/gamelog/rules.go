package gamelog

import (
	"net/url"
	"regexp"
	"strings"
)

// Rules stores game log validation bounds.
type Rules struct {
	TitleMin        int
	TitleMax        int
	NotesMax        int
	DurationMax     int
	MatchLabelMin   int
	MatchLabelMax   int
	OpponentNameMin int
	OpponentNameMax int
	MaxMVPCards     int
	MaxElements     int
	DeckLinks       DeckLinkPolicy
}

func DefaultRules() Rules {
	return Rules{
		TitleMin:        3,
		TitleMax:        80,
		NotesMax:        1000,
		DurationMax:     1440,
		MatchLabelMin:   2,
		MatchLabelMax:   40,
		OpponentNameMin: 2,
		OpponentNameMax: 40,
		MaxMVPCards:     3,
		MaxElements:     len(AllElements),
		DeckLinks:       DefaultDeckLinkPolicy(),
	}
}

// DeckLinkPolicy decides which external deck links are accepted.
type DeckLinkPolicy struct {
	Hosts       []string
	PathPattern *regexp.Regexp
}

var defaultDeckPathPattern = regexp.MustCompile(`^/decks?/[A-Za-z0-9_-]+/?$`)

func DefaultDeckLinkPolicy() DeckLinkPolicy {
	return DeckLinkPolicy{
		Hosts:       []string{"algomancer.cc", "www.algomancer.cc"},
		PathPattern: defaultDeckPathPattern,
	}
}

// WithHosts returns a copy of the policy restricted to the given hosts.
// Blank entries are ignored; an empty list keeps the current hosts.
func (p DeckLinkPolicy) WithHosts(hosts []string) DeckLinkPolicy {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			out = append(out, h)
		}
	}
	if len(out) == 0 {
		return p
	}
	p.Hosts = out
	return p
}

// Check returns an empty string when raw is an allowed deck link, otherwise a
// message describing the first problem found.
func (p DeckLinkPolicy) Check(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "must be a valid URL"
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "must use http or https"
	}

	host := strings.ToLower(u.Hostname())
	allowed := false
	for _, h := range p.Hosts {
		if host == h {
			allowed = true
			break
		}
	}
	if !allowed {
		return "must link to a deck on " + strings.Join(p.Hosts, " or ")
	}

	pattern := p.PathPattern
	if pattern == nil {
		pattern = defaultDeckPathPattern
	}
	if !pattern.MatchString(u.EscapedPath()) {
		return "must point at a deck page"
	}
	return ""
}
