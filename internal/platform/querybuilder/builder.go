// Package querybuilder renders Postgres statements with numbered bind
// parameters. Identifiers are written as given; callers whitelist them.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and its bind arguments. The next placeholder
// number is always len(args)+1.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) text(parts ...string) {
	for _, p := range parts {
		w.sql.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sql.WriteByte('$')
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies raw, binding one value for each '?'. Extra '?' are kept as is.
func (w *writer) expr(raw string, values []any) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && len(values) > 0 {
			w.bind(values[0])
			values = values[1:]
			continue
		}
		w.sql.WriteByte(raw[i])
	}
}

func (w *writer) list(sep string, n int, each func(i int)) {
	for i := 0; i < n; i++ {
		if i > 0 {
			w.text(sep)
		}
		each(i)
	}
}

func (w *writer) where(conds []Condition) {
	if len(conds) == 0 {
		return
	}
	w.text(" WHERE ")
	w.list(" AND ", len(conds), func(i int) { conds[i].render(w) })
}

func (w *writer) suffix(raw string) {
	if raw != "" {
		w.text(" ")
		w.expr(raw, nil)
	}
}

func (w *writer) done() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

// Condition is one boolean term of a WHERE clause.
type Condition interface {
	render(w *writer)
}

type condFunc func(w *writer)

func (f condFunc) render(w *writer) { f(w) }

func compare(column, op string, value any) Condition {
	return condFunc(func(w *writer) {
		w.text(column, " ", op, " ")
		w.bind(value)
	})
}

func Eq(column string, value any) Condition  { return compare(column, "=", value) }
func Gte(column string, value any) Condition { return compare(column, ">=", value) }
func Lte(column string, value any) Condition { return compare(column, "<=", value) }

// Between renders an inclusive range.
func Between(column string, lower, upper any) Condition {
	return condFunc(func(w *writer) {
		w.text(column, " BETWEEN ")
		w.bind(lower)
		w.text(" AND ")
		w.bind(upper)
	})
}

// In renders column IN (...). An empty list never matches.
func In(column string, values []any) Condition {
	return condFunc(func(w *writer) {
		if len(values) == 0 {
			w.text("1=0")
			return
		}
		w.text(column, " IN (")
		w.list(", ", len(values), func(i int) { w.bind(values[i]) })
		w.text(")")
	})
}

func IsNull(column string) Condition {
	return condFunc(func(w *writer) { w.text(column, " IS NULL") })
}

func NotNull(column string) Condition {
	return condFunc(func(w *writer) { w.text(column, " IS NOT NULL") })
}

// Expr inserts raw SQL, binding args to its '?' markers in order.
func Expr(raw string, args ...any) Condition {
	return condFunc(func(w *writer) { w.expr(raw, args) })
}

// Or joins conditions with OR inside parentheses. An empty group never matches.
func Or(conditions ...Condition) Condition {
	return group(" OR ", "1=0", conditions)
}

// And joins conditions with AND inside parentheses. An empty group always matches.
func And(conditions ...Condition) Condition {
	return group(" AND ", "1=1", conditions)
}

func group(op, empty string, conds []Condition) Condition {
	return condFunc(func(w *writer) {
		switch len(conds) {
		case 0:
			w.text(empty)
		case 1:
			conds[0].render(w)
		default:
			w.text("(")
			w.list(op, len(conds), func(i int) { conds[i].render(w) })
			w.text(")")
		}
	})
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

// Limit and Offset are omitted from the statement when not positive.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select columns are required")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select table is required")
	}

	var w writer
	w.text("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.text(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.text(" OFFSET ", strconv.Itoa(b.offset))
	}
	return w.done()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row. Call it repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("insert table is required")
	case len(b.columns) == 0:
		return "", nil, errors.New("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, errors.New("insert values are required")
	}
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
	}

	var w writer
	w.text("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	w.list(", ", len(b.rows), func(i int) {
		row := b.rows[i]
		w.text("(")
		w.list(", ", len(row), func(j int) { w.bind(row[j]) })
		w.text(")")
	})
	w.suffix(b.suffix)
	return w.done()
}

type UpdateBuilder struct {
	table  string
	cols   []string
	vals   []any
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.cols = append(b.cols, column)
	b.vals = append(b.vals, value)
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update table is required")
	case len(b.cols) == 0:
		return "", nil, errors.New("update sets are required")
	}

	var w writer
	w.text("UPDATE ", b.table, " SET ")
	w.list(", ", len(b.cols), func(i int) {
		w.text(b.cols[i], " = ")
		w.bind(b.vals[i])
	})
	w.where(b.where)
	w.suffix(b.suffix)
	return w.done()
}

// QuoteIdent quotes a table or column name for safe interpolation.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
