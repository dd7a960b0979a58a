package postgres

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/lib/pq"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	qb "github.com/riskibarqy/nfl-trends-api/internal/platform/querybuilder"
	"github.com/sourcegraph/conc/pool"
)

// findPage runs the count and the page of q against table concurrently.
// Both statements share the same compiled conditions.
func findPage[T any](ctx context.Context, db *DB, table string, columns []string, allowed map[string]filter.Ordering, q filter.Query) ([]T, int, error) {
	conds, err := conditions(q.Where, allowed)
	if err != nil {
		return nil, 0, fmt.Errorf("translate %s filter: %w", table, err)
	}
	order, err := orderBy(q.Sort, allowed)
	if err != nil {
		return nil, 0, fmt.Errorf("translate %s sort: %w", table, err)
	}

	countQuery, countArgs, err := qb.Select("COUNT(*)").From(table).Where(conds...).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count %s query: %w", table, err)
	}
	pageQuery, pageArgs, err := qb.Select(columns...).From(table).
		Where(conds...).
		OrderBy(order...).
		Limit(q.Limit).
		Offset(q.Offset).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select %s query: %w", table, err)
	}

	var (
		rows  []T
		total int
	)
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		if err := db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if err := db.SelectContext(ctx, &rows, pageQuery, pageArgs...); err != nil {
			return fmt.Errorf("select %s: %w", table, err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func conditions(preds []filter.Predicate, allowed map[string]filter.Ordering) ([]qb.Condition, error) {
	out := make([]qb.Condition, 0, len(preds))
	for _, p := range preds {
		c, err := condition(p, allowed)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func condition(p filter.Predicate, allowed map[string]filter.Ordering) (qb.Condition, error) {
	switch p.Op {
	case filter.OpAnd, filter.OpOr:
		children, err := conditions(p.Children, allowed)
		if err != nil {
			return nil, err
		}
		if p.Op == filter.OpAnd {
			return qb.And(children...), nil
		}
		return qb.Or(children...), nil
	}

	col, err := columnExpr(p.Column, p.Transform, allowed)
	if err != nil {
		return nil, err
	}

	switch p.Op {
	case filter.OpEq:
		if len(p.Values) != 1 {
			return nil, fmt.Errorf("eq on %s needs one value", p.Column)
		}
		return qb.Eq(col, p.Values[0]), nil
	case filter.OpIn:
		return qb.In(col, p.Values), nil
	case filter.OpIsNull:
		return qb.IsNull(col), nil
	case filter.OpNotNull:
		return qb.NotNull(col), nil
	case filter.OpGte:
		if len(p.Values) != 1 {
			return nil, fmt.Errorf("gte on %s needs one value", p.Column)
		}
		return qb.Gte(col, p.Values[0]), nil
	case filter.OpLte:
		if len(p.Values) != 1 {
			return nil, fmt.Errorf("lte on %s needs one value", p.Column)
		}
		return qb.Lte(col, p.Values[0]), nil
	case filter.OpBetween:
		if len(p.Values) != 2 {
			return nil, fmt.Errorf("between on %s needs two values", p.Column)
		}
		return qb.Between(col, p.Values[0], p.Values[1]), nil
	case filter.OpArrayContainsAll:
		return qb.Expr(col+" @> ?", textArray(p.Values)), nil
	case filter.OpArrayContainsAny:
		return qb.Expr(col+" && ?", textArray(p.Values)), nil
	case filter.OpArrayEquals:
		arr := textArray(p.Values)
		return qb.Expr("("+col+" @> ? AND "+col+" <@ ?)", arr, arr), nil
	case filter.OpArrayExcludesAny:
		return qb.Expr("NOT (COALESCE("+col+", '{}') && ?)", textArray(p.Values)), nil
	default:
		return nil, fmt.Errorf("unsupported predicate %q", p.Op)
	}
}

// columnExpr renders a whitelisted column, wrapped in its transform.
func columnExpr(column string, transform filter.Transform, allowed map[string]filter.Ordering) (string, error) {
	if _, ok := allowed[column]; !ok {
		return "", fmt.Errorf("unknown column %q", column)
	}

	switch transform {
	case filter.TransformNone:
		return column, nil
	case filter.TransformMonthNumber:
		return rankCase(column, filter.Months(), 0), nil
	case filter.TransformSeasonStart:
		return "CAST(SUBSTRING(" + column + " FROM 1 FOR 4) AS INTEGER)", nil
	default:
		return "", fmt.Errorf("unsupported transform %q", transform)
	}
}

// orderBy renders sort keys. Ordinal columns sort by their calendar rank
// with NULL after every known value.
func orderBy(keys []filter.SortKey, allowed map[string]filter.Ordering) ([]string, error) {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := allowed[key.Column]; !ok {
			return nil, fmt.Errorf("unknown sort column %q", key.Column)
		}

		expr := key.Column
		if values := key.Ordering.Values(); values != nil {
			expr = rankCase(key.Column, values, len(values)+1)
		}
		if key.Desc {
			out = append(out, expr+" DESC NULLS FIRST")
		} else {
			out = append(out, expr+" ASC NULLS LAST")
		}
	}
	return out, nil
}

func rankCase(column string, values []string, otherwise int) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for i, v := range values {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", v, i+1)
	}
	fmt.Fprintf(&b, " ELSE %d END", otherwise)
	return b.String()
}

func textArray(values []any) any {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return pq.Array(out)
}

// selectColumns lists the columns of allowed in a stable order.
func selectColumns(allowed map[string]filter.Ordering) []string {
	out := make([]string, 0, len(allowed))
	for col := range allowed {
		out = append(out, col)
	}
	slices.Sort(out)
	return out
}

func withColumn(allowed map[string]filter.Ordering, column string) map[string]filter.Ordering {
	out := make(map[string]filter.Ordering, len(allowed)+1)
	for col, ordering := range allowed {
		out[col] = ordering
	}
	out[column] = filter.OrderingNatural
	return out
}
