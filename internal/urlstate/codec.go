// Package urlstate keeps view criteria in a shareable link of the form
// resdash://resources?status=..&type=..&search=.. and keeps that link in
// step with a criteria.Store.
package urlstate

import (
	"net/url"
	"strings"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/resource"
)

// Query parameter names.
const (
	ParamStatus = "status"
	ParamType   = "type"
	ParamSearch = "search"
)

// Parse decodes view criteria from a query string. It accepts a bare query,
// one with a leading '?', or a full link. Parsing never fails: absent
// parameters leave their field at the default, and a pair with a malformed
// escape is dropped without affecting the others. A raw ';' is taken as a
// literal character, not a pair separator. The effective search term
// starts equal to the search term, since a freshly opened view has nothing
// to debounce.
func Parse(query string) criteria.Criteria {
	// url.ParseQuery rejects pairs holding a raw ';' and keeps every pair it
	// could decode alongside its error.
	values, _ := url.ParseQuery(strings.ReplaceAll(queryPart(query), ";", "%3B"))

	c := criteria.Default()
	for _, tok := range splitList(values[ParamStatus]) {
		state := resource.ParseProcessingState(tok)
		if !c.Statuses.Contains(state) {
			c = c.WithToggledStatus(state)
		}
	}
	for _, tok := range splitList(values[ParamType]) {
		if !c.Types.Contains(tok) {
			c = c.WithToggledType(tok)
		}
	}
	if search := values[ParamSearch]; len(search) > 0 {
		c = c.WithSearchTerm(search[0]).WithEffectiveSearchTerm(search[0])
	}
	return c
}

// Serialize encodes the search and selection fields of c. Empty fields are
// omitted and list members are joined with literal commas. Keys come out in
// sorted order and sort stays out of the link.
func Serialize(c criteria.Criteria) string {
	var pairs []string
	if c.SearchTerm != "" {
		pairs = append(pairs, encodePair(ParamSearch, c.SearchTerm))
	}
	if c.Statuses.Len() > 0 {
		states := c.Statuses.Values()
		tokens := make([]string, len(states))
		for i, s := range states {
			tokens[i] = string(s)
		}
		pairs = append(pairs, encodePair(ParamStatus, tokens...))
	}
	if c.Types.Len() > 0 {
		pairs = append(pairs, encodePair(ParamType, c.Types.Values()...))
	}
	return strings.Join(pairs, "&")
}

// encodePair escapes each value on its own so the commas between them stay
// readable. A comma inside a value is escaped.
func encodePair(key string, values ...string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.QueryEscape(v)
	}
	return url.QueryEscape(key) + "=" + strings.Join(escaped, ",")
}

// queryPart strips any link prefix and fragment from s.
func queryPart(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		return s[i+1:]
	}
	if strings.Contains(s, "://") {
		return ""
	}
	return s
}

// splitList flattens repeated comma-list parameters, trimming whitespace
// and dropping empty segments.
func splitList(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, tok := range strings.Split(v, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}
