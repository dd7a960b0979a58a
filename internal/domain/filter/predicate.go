package filter

import (
	"strconv"
	"strings"
)

// Op names a predicate node kind. The set is closed so every executor can
// implement all of it.
type Op string

const (
	OpEq      Op = "eq"
	OpIn      Op = "in"
	OpIsNull  Op = "is_null"
	OpNotNull Op = "not_null"
	OpGte     Op = "gte"
	OpLte     Op = "lte"
	OpBetween Op = "between"
	OpAnd     Op = "and"
	OpOr      Op = "or"

	OpArrayContainsAll Op = "array_contains_all"
	OpArrayContainsAny Op = "array_contains_any"
	OpArrayEquals      Op = "array_equals"
	OpArrayExcludesAny Op = "array_excludes_any"
)

// Transform is applied to a column before comparison.
type Transform string

const (
	TransformNone Transform = ""
	// TransformMonthNumber maps a month name to 1..12, anything else to 0.
	TransformMonthNumber Transform = "month_number"
	// TransformSeasonStart takes the leading four-digit year of "YYYY-YYYY".
	TransformSeasonStart Transform = "season_start"
)

// Predicate is a storage independent boolean condition.
type Predicate struct {
	Op        Op          `json:"op"`
	Column    string      `json:"column,omitempty"`
	Transform Transform   `json:"transform,omitempty"`
	Values    []any       `json:"values,omitempty"`
	Children  []Predicate `json:"children,omitempty"`
}

// Query is the compiled form of a filter: a conjunction of predicates, a total
// sort order and a page window.
type Query struct {
	Where  []Predicate `json:"where"`
	Sort   []SortKey   `json:"sort"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// Unpaged returns the query without its page window, used for counting.
func (q Query) Unpaged() Query {
	q.Limit = 0
	q.Offset = 0
	return q
}

func eq(column string, v any) Predicate {
	return Predicate{Op: OpEq, Column: column, Values: []any{v}}
}

func in(column string, values []any) Predicate {
	if len(values) == 1 {
		return eq(column, values[0])
	}
	return Predicate{Op: OpIn, Column: column, Values: values}
}

func isNull(column string) Predicate {
	return Predicate{Op: OpIsNull, Column: column}
}

func notNull(column string) Predicate {
	return Predicate{Op: OpNotNull, Column: column}
}

func or(children ...Predicate) Predicate {
	if len(children) == 1 {
		return children[0]
	}
	return Predicate{Op: OpOr, Children: children}
}

func and(children ...Predicate) Predicate {
	if len(children) == 1 {
		return children[0]
	}
	return Predicate{Op: OpAnd, Children: children}
}

// rangeOf builds an inclusive range; nil bounds are open.
func rangeOf(column string, transform Transform, lo, hi any) (Predicate, bool) {
	switch {
	case lo != nil && hi != nil:
		return Predicate{Op: OpBetween, Column: column, Transform: transform, Values: []any{lo, hi}}, true
	case lo != nil:
		return Predicate{Op: OpGte, Column: column, Transform: transform, Values: []any{lo}}, true
	case hi != nil:
		return Predicate{Op: OpLte, Column: column, Transform: transform, Values: []any{hi}}, true
	default:
		return Predicate{}, false
	}
}

func strings2any(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func ints2any(values []int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func floats2any(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func intPtrAny(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtrAny(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func stringPtrAny(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

// builder accumulates the conjunction for one compile pass.
type builder struct {
	where []Predicate
}

func (b *builder) add(p Predicate) {
	b.where = append(b.where, p)
}

// strings adds an OR of IN(values) and IS NULL when "None" is listed.
func (b *builder) strings(column string, list StringList) {
	if len(list) == 0 {
		return
	}
	values, hasNone := list.withoutNone()
	parts := make([]Predicate, 0, 2)
	if len(values) > 0 {
		parts = append(parts, in(column, strings2any(values)))
	}
	if hasNone {
		parts = append(parts, isNull(column))
	}
	b.add(or(parts...))
}

func (b *builder) ints(column string, list IntList) {
	if len(list) > 0 {
		b.add(in(column, ints2any(list)))
	}
}

func (b *builder) floats(column string, list FloatList) {
	if len(list) > 0 {
		b.add(in(column, floats2any(list)))
	}
}

func (b *builder) boolean(column string, v *bool) {
	if v != nil {
		b.add(eq(column, *v))
	}
}

// span adds an inclusive range on column. A month range never matches a
// NULL month, since NULL ranks 0 under TransformMonthNumber.
func (b *builder) span(column string, transform Transform, lo, hi any) {
	p, ok := rangeOf(column, transform, lo, hi)
	if !ok {
		return
	}
	if transform == TransformMonthNumber {
		p = and(notNull(column), p)
	}
	b.add(p)
}

// Apply evaluates t on a column value already loaded in memory. NULL maps to
// 0 under TransformMonthNumber.
func (t Transform) Apply(v any) any {
	switch t {
	case TransformMonthNumber:
		s, _ := v.(string)
		n, _ := MonthNumber(s)
		return n
	case TransformSeasonStart:
		s, _ := v.(string)
		m := seasonPattern.FindStringSubmatch(strings.TrimSpace(s))
		if m == nil {
			return nil
		}
		year, _ := strconv.Atoi(m[1])
		return year
	default:
		return v
	}
}
