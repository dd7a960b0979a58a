package memory

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	qb "github.com/riskibarqy/nfl-trends-api/internal/platform/querybuilder"
)

type row[T any] struct {
	item T
	cols map[string]any
}

// evaluate runs q over items the way the SQL executor does: filter, count,
// stable sort, then slice the page.
func evaluate[T any](items []T, q filter.Query) ([]T, int, error) {
	matched := make([]row[T], 0, len(items))
	for _, item := range items {
		cols, err := qb.ColumnMap(item)
		if err != nil {
			return nil, 0, fmt.Errorf("read columns: %w", err)
		}
		ok, err := matchAll(cols, q.Where)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			matched = append(matched, row[T]{item: item, cols: cols})
		}
	}

	total := len(matched)
	slices.SortStableFunc(matched, func(a, b row[T]) int {
		for _, key := range q.Sort {
			if c := compareSortKey(a.cols[key.Column], b.cols[key.Column], key); c != 0 {
				return c
			}
		}
		return 0
	})

	start := min(q.Offset, total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}

	out := make([]T, 0, end-start)
	for _, r := range matched[start:end] {
		out = append(out, r.item)
	}
	return out, total, nil
}

func matchAll(cols map[string]any, preds []filter.Predicate) (bool, error) {
	for _, p := range preds {
		ok, err := match(cols, p)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func match(cols map[string]any, p filter.Predicate) (bool, error) {
	switch p.Op {
	case filter.OpAnd:
		return matchAll(cols, p.Children)
	case filter.OpOr:
		for _, child := range p.Children {
			ok, err := match(cols, child)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}

	raw, ok := cols[p.Column]
	if !ok {
		return false, fmt.Errorf("unknown column %q", p.Column)
	}
	v := p.Transform.Apply(raw)

	switch p.Op {
	case filter.OpIsNull:
		return v == nil, nil
	case filter.OpNotNull:
		return v != nil, nil
	case filter.OpEq, filter.OpIn:
		for _, want := range p.Values {
			if c, ok := compareValues(v, want); ok && c == 0 {
				return true, nil
			}
		}
		return false, nil
	case filter.OpGte:
		c, ok := compareValues(v, value(p, 0))
		return ok && c >= 0, nil
	case filter.OpLte:
		c, ok := compareValues(v, value(p, 0))
		return ok && c <= 0, nil
	case filter.OpBetween:
		lo, okLo := compareValues(v, value(p, 0))
		hi, okHi := compareValues(v, value(p, 1))
		return okLo && okHi && lo >= 0 && hi <= 0, nil
	case filter.OpArrayContainsAll, filter.OpArrayContainsAny, filter.OpArrayEquals, filter.OpArrayExcludesAny:
		return matchArray(p.Op, v, p.Values)
	default:
		return false, fmt.Errorf("unsupported predicate %q", p.Op)
	}
}

func value(p filter.Predicate, i int) any {
	if i < len(p.Values) {
		return p.Values[i]
	}
	return nil
}

func matchArray(op filter.Op, v any, values []any) (bool, error) {
	var have []string
	switch arr := v.(type) {
	case nil:
	case []string:
		have = arr
	default:
		return false, fmt.Errorf("array predicate on %T", v)
	}

	set := make(map[string]struct{}, len(have))
	for _, s := range have {
		set[s] = struct{}{}
	}
	hits := 0
	want := make(map[string]struct{}, len(values))
	for _, raw := range values {
		s, _ := raw.(string)
		if _, dup := want[s]; dup {
			continue
		}
		want[s] = struct{}{}
		if _, ok := set[s]; ok {
			hits++
		}
	}

	switch op {
	case filter.OpArrayContainsAll:
		return hits == len(want), nil
	case filter.OpArrayContainsAny:
		return hits > 0, nil
	case filter.OpArrayEquals:
		return hits == len(want) && len(set) == len(want), nil
	default:
		return hits == 0, nil
	}
}

// compareValues orders two scalars of compatible kinds. It reports false
// when either side is NULL or the kinds differ.
func compareValues(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	if fa, ok := number(a); ok {
		fb, ok := number(b)
		if !ok {
			return 0, false
		}
		return cmp.Compare(fa, fb), true
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return cmp.Compare(av, bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		return cmp.Compare(boolRank(av), boolRank(bv)), true
	}
	return 0, false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// compareSortKey ranks NULL after every value, so it lands last ascending
// and first descending.
func compareSortKey(a, b any, key filter.SortKey) int {
	var c int
	if key.Ordering != filter.OrderingNatural {
		c = cmp.Compare(key.Ordering.Rank(stringOf(a)), key.Ordering.Rank(stringOf(b)))
	} else {
		switch {
		case a == nil && b == nil:
			c = 0
		case a == nil:
			c = 1
		case b == nil:
			c = -1
		default:
			c, _ = compareValues(a, b)
		}
	}
	if key.Desc {
		return -c
	}
	return c
}

func stringOf(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
