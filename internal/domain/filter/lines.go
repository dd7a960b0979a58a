package filter

import (
	"bytes"
	"regexp"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
)

// LineCondition filters a trend's spread or total label. The whole condition
// may be the string "None", which selects rows without a line.
type LineCondition struct {
	None   bool       `json:"-"`
	Exact  StringList `json:"exact,omitempty"`
	OrLess IntList    `json:"or_less,omitempty"`
	OrMore IntList    `json:"or_more,omitempty"`
}

type lineConditionJSON struct {
	Exact  StringList `json:"exact,omitempty"`
	OrLess IntList    `json:"or_less,omitempty"`
	OrMore IntList    `json:"or_more,omitempty"`
}

func (l *LineCondition) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isJSONNull(data) {
		*l = LineCondition{}
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := strictJSON.Unmarshal(data, &v); err != nil {
			return err
		}
		if v != NoneValue {
			return &ValidationError{Field: "line", Value: v, Constraint: `object or "None"`}
		}
		*l = LineCondition{None: true}
		return nil
	}
	var raw lineConditionJSON
	if err := strictJSON.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = LineCondition{Exact: raw.Exact, OrLess: raw.OrLess, OrMore: raw.OrMore}
	return nil
}

func (l LineCondition) MarshalJSON() ([]byte, error) {
	if l.None {
		return []byte(`"` + NoneValue + `"`), nil
	}
	return sonic.Marshal(lineConditionJSON{Exact: l.Exact, OrLess: l.OrLess, OrMore: l.OrMore})
}

func (l *LineCondition) empty() bool {
	return l == nil || (!l.None && len(l.Exact) == 0 && len(l.OrLess) == 0 && len(l.OrMore) == 0)
}

// labels renders every populated sub-key to the stored label form.
func (l *LineCondition) labels() ([]string, bool) {
	values, hasNone := l.Exact.withoutNone()
	for _, n := range l.OrLess {
		values = append(values, SpreadLabel(n, false))
	}
	for _, n := range l.OrMore {
		values = append(values, SpreadLabel(n, true))
	}
	slices.Sort(values)
	return slices.Compact(values), hasNone
}

func (c *checker) spreadLine(field string, l *LineCondition) *LineCondition {
	return c.line(field, l, spreadLabels, func(n int) bool { return n >= 1 && n <= 14 }, "integer 1..14")
}

func (c *checker) totalLine(field string, l *LineCondition) *LineCondition {
	return c.line(field, l, totalLabels, func(n int) bool { return n >= 30 && n <= 60 && n%5 == 0 }, "one of 30, 35, 40, 45, 50, 55, 60")
}

func (c *checker) line(field string, l *LineCondition, allowed map[string]struct{}, bound func(int) bool, constraint string) *LineCondition {
	if l.empty() {
		return nil
	}
	if l.None {
		return &LineCondition{None: true}
	}
	out := &LineCondition{}
	for _, v := range l.Exact {
		if _, ok := allowed[v]; !ok {
			c.fail(field+".exact", v, "known "+field+" label")
			continue
		}
		out.Exact = append(out.Exact, v)
	}
	for _, n := range l.OrLess {
		if !bound(n) {
			c.fail(field+".or_less", n, constraint)
		}
	}
	for _, n := range l.OrMore {
		if !bound(n) {
			c.fail(field+".or_more", n, constraint)
		}
	}
	out.Exact = out.Exact.normalized()
	out.OrLess = l.OrLess.normalized()
	out.OrMore = l.OrMore.normalized()
	return out
}

func (b *builder) line(column string, l *LineCondition) {
	if l.empty() {
		return
	}
	if l.None {
		b.add(isNull(column))
		return
	}
	values, hasNone := l.labels()
	parts := make([]Predicate, 0, 2)
	if len(values) > 0 {
		parts = append(parts, in(column, strings2any(values)))
	}
	if hasNone {
		parts = append(parts, isNull(column))
	}
	b.add(or(parts...))
}

// SeasonCondition filters a trend's season span label, e.g. "since 2015-2016".
type SeasonCondition struct {
	None           bool       `json:"-"`
	Exact          StringList `json:"exact,omitempty"`
	SinceOrLater   *string    `json:"since_or_later,omitempty"`
	SinceOrEarlier *string    `json:"since_or_earlier,omitempty"`
}

type seasonConditionJSON struct {
	Exact          StringList `json:"exact,omitempty"`
	SinceOrLater   *string    `json:"since_or_later,omitempty"`
	SinceOrEarlier *string    `json:"since_or_earlier,omitempty"`
}

func (s *SeasonCondition) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isJSONNull(data) {
		*s = SeasonCondition{}
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := strictJSON.Unmarshal(data, &v); err != nil {
			return err
		}
		if v != NoneValue {
			return &ValidationError{Field: "seasons", Value: v, Constraint: `object or "None"`}
		}
		*s = SeasonCondition{None: true}
		return nil
	}
	var raw seasonConditionJSON
	if err := strictJSON.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SeasonCondition{Exact: raw.Exact, SinceOrLater: raw.SinceOrLater, SinceOrEarlier: raw.SinceOrEarlier}
	return nil
}

func (s SeasonCondition) MarshalJSON() ([]byte, error) {
	if s.None {
		return []byte(`"` + NoneValue + `"`), nil
	}
	return sonic.Marshal(seasonConditionJSON{Exact: s.Exact, SinceOrLater: s.SinceOrLater, SinceOrEarlier: s.SinceOrEarlier})
}

func (s *SeasonCondition) empty() bool {
	return s == nil || (!s.None && len(s.Exact) == 0 && s.SinceOrLater == nil && s.SinceOrEarlier == nil)
}

func (c *checker) seasons(s *SeasonCondition) *SeasonCondition {
	if s.empty() {
		return nil
	}
	if s.None {
		return &SeasonCondition{None: true}
	}
	out := &SeasonCondition{}
	for _, v := range s.Exact {
		if seasonLabelIndex(v) < 0 {
			c.fail("seasons.exact", v, "since YYYY-YYYY between 2006 and 2026")
			continue
		}
		out.Exact = append(out.Exact, v)
	}
	out.Exact = out.Exact.normalized()
	if s.SinceOrLater != nil {
		if seasonLabelIndex(*s.SinceOrLater) < 0 {
			c.fail("seasons.since_or_later", *s.SinceOrLater, "since YYYY-YYYY between 2006 and 2026")
		}
		v := *s.SinceOrLater
		out.SinceOrLater = &v
	}
	if s.SinceOrEarlier != nil {
		if seasonLabelIndex(*s.SinceOrEarlier) < 0 {
			c.fail("seasons.since_or_earlier", *s.SinceOrEarlier, "since YYYY-YYYY between 2006 and 2026")
		}
		v := *s.SinceOrEarlier
		out.SinceOrEarlier = &v
	}
	return out
}

// since_or_later widens toward recent spans, since_or_earlier toward older ones.
func (b *builder) seasons(column string, s *SeasonCondition) {
	if s.empty() {
		return
	}
	if s.None {
		b.add(isNull(column))
		return
	}
	values := slices.Clone([]string(s.Exact))
	if s.SinceOrLater != nil {
		if idx := seasonLabelIndex(*s.SinceOrLater); idx >= 0 {
			values = append(values, seasonLabels[idx:]...)
		}
	}
	if s.SinceOrEarlier != nil {
		if idx := seasonLabelIndex(*s.SinceOrEarlier); idx >= 0 {
			values = append(values, seasonLabels[:idx+1]...)
		}
	}
	slices.Sort(values)
	values = slices.Compact(values)
	b.add(in(column, strings2any(values)))
}

// Match modes for GamesApplicable.
const (
	MatchContainsAll = "contains_all"
	MatchContainsAny = "contains_any"
	MatchExact       = "exact"
	MatchExcludesAny = "excludes_any"
)

var gameTokenPattern = regexp.MustCompile(`^[A-Z]{2,3}vs[A-Z]{2,3}$`)

// GamesApplicable matches a weekly trend's list of "{home}vs{away}" tokens.
// MatchAlias accepts the short "match" key; Normalize folds it into Match.
type GamesApplicable struct {
	Games      StringList `json:"games"`
	Match      string     `json:"match_mode,omitempty"`
	MatchAlias string     `json:"match,omitempty"`
}

// GameToken renders the token a weekly trend lists for a matchup.
func GameToken(home, away string) string {
	return strings.ToUpper(strings.TrimSpace(home)) + "vs" + strings.ToUpper(strings.TrimSpace(away))
}

func canonicalGameToken(v string) (string, bool) {
	home, away, ok := strings.Cut(strings.TrimSpace(v), "vs")
	if !ok {
		home, away, ok = strings.Cut(strings.TrimSpace(v), "VS")
	}
	if !ok {
		return "", false
	}
	token := GameToken(home, away)
	return token, gameTokenPattern.MatchString(token)
}

func (c *checker) gamesApplicable(g *GamesApplicable) *GamesApplicable {
	if g == nil || len(g.Games) == 0 {
		return nil
	}
	match := strings.ToLower(strings.TrimSpace(g.Match))
	alias := strings.ToLower(strings.TrimSpace(g.MatchAlias))
	switch {
	case match == "":
		match = alias
	case alias != "" && alias != match:
		c.fail("games_applicable.match", g.MatchAlias, "the same mode as match_mode")
	}
	switch match {
	case "":
		match = MatchContainsAny
	case MatchContainsAll, MatchContainsAny, MatchExact, MatchExcludesAny:
	default:
		c.fail("games_applicable.match_mode", match, "contains_all, contains_any, exact or excludes_any")
	}
	games := c.enum("games_applicable.games", g.Games, false, "{HOME}vs{AWAY} token", canonicalGameToken)
	return &GamesApplicable{Games: games, Match: match}
}

func (b *builder) gamesApplicable(column string, g *GamesApplicable) {
	if g == nil || len(g.Games) == 0 {
		return
	}
	op := OpArrayContainsAny
	switch g.Match {
	case MatchContainsAll:
		op = OpArrayContainsAll
	case MatchExact:
		op = OpArrayEquals
	case MatchExcludesAny:
		op = OpArrayExcludesAny
	}
	b.add(Predicate{Op: op, Column: column, Values: strings2any(g.Games)})
}
