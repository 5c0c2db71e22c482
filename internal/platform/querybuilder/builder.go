package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is a SQL fragment with '?' placeholders. Builders rewrite the
// placeholders into numbered Postgres ones when rendering.
type Condition struct {
	sql  string
	args []any
}

func Eq(column string, value any) Condition {
	return Condition{sql: column + " = ?", args: []any{value}}
}

func In(column string, values []any) Condition {
	if len(values) == 0 {
		return Condition{sql: "1=0"}
	}
	marks := "?" + strings.Repeat(", ?", len(values)-1)
	return Condition{sql: column + " IN (" + marks + ")", args: append([]any(nil), values...)}
}

func IsNull(column string) Condition {
	return Condition{sql: column + " IS NULL"}
}

func NotNull(column string) Condition {
	return Condition{sql: column + " IS NOT NULL"}
}

func Expr(expr string, args ...any) Condition {
	return Condition{sql: expr, args: args}
}

// renderer accumulates the query text while renumbering placeholders.
type renderer struct {
	sb   strings.Builder
	args []any
}

func (r *renderer) raw(s string) {
	r.sb.WriteString(s)
}

func (r *renderer) fragment(sql string, args []any) {
	next := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && next < len(args) {
			r.args = append(r.args, args[next])
			next++
			r.sb.WriteString("$" + strconv.Itoa(len(r.args)))
			continue
		}
		r.sb.WriteByte(sql[i])
	}
}

func (r *renderer) whereClause(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			r.raw(" WHERE ")
		} else {
			r.raw(" AND ")
		}
		r.fragment(c.sql, c.args)
	}
}

func (r *renderer) result() (string, []any) {
	if r.args == nil {
		return r.sb.String(), []any{}
	}
	return r.sb.String(), r.args
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
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

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var r renderer
	r.raw("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	r.whereClause(b.where)
	if len(b.orderBy) > 0 {
		r.raw(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		r.raw(" LIMIT " + strconv.Itoa(b.limit))
	}

	query, args := r.result()
	return query, args, nil
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

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL after the VALUES list, e.g. an ON CONFLICT clause
// or RETURNING.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	rowMarks := "(?" + strings.Repeat(", ?", len(b.columns)-1) + ")"

	var r renderer
	r.raw("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			r.raw(", ")
		}
		r.fragment(rowMarks, row)
	}
	if b.suffix != "" {
		r.raw(" " + b.suffix)
	}

	query, args := r.result()
	return query, args, nil
}

type UpdateBuilder struct {
	table string
	sets  []Condition
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, Condition{sql: column + " = ?", args: []any{value}})
	return b
}

func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, Condition{sql: column + " = " + expr, args: args})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var r renderer
	r.raw("UPDATE " + b.table + " SET ")
	for i, s := range b.sets {
		if i > 0 {
			r.raw(", ")
		}
		r.fragment(s.sql, s.args)
	}
	r.whereClause(b.where)

	query, args := r.result()
	return query, args, nil
}
