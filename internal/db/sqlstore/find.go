package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"

	"github.com/kailas-cloud/tripsearch/internal/db"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/filter"
)

// primaryKey breaks ordering ties so repeated fetches return the same rows.
const primaryKey = "id"

// likeEscape is the LIKE escape character. A backslash would need different
// quoting in MySQL string literals.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// Find selects up to q.Limit rows from q.Table matching q.Filters.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) ([]db.Row, error) {
	if q == nil || q.Table == "" {
		return nil, fmt.Errorf("table is required: %w", db.ErrInvalidQuery)
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", db.ErrInvalidQuery)
	}

	tx := s.gdb.WithContext(ctx).Table(q.Table)

	if exprs := s.buildWhere(q.Filters); len(exprs) > 0 {
		tx = tx.Clauses(clause.Where{Exprs: exprs})
	}
	if q.OrderBy != "" {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: q.Desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: primaryKey}})
	}

	rows, err := tx.Limit(q.Limit).Rows()
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Table: q.Table, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &db.Error{Op: db.OpSelect, Table: q.Table, Err: err}
	}

	var out []db.Row
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, &db.Error{Op: db.OpSelect, Table: q.Table, Err: err}
		}

		row := make(db.Row, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Table: q.Table, Err: err}
	}

	return out, nil
}

// buildWhere translates the filter expression into gorm clause expressions.
// Must conditions are ANDed; the should group becomes one OR expression.
func (s *Store) buildWhere(expr filter.Expression) []clause.Expression {
	if expr.IsEmpty() {
		return nil
	}

	exprs := make([]clause.Expression, 0, len(expr.Must())+1)
	for _, cond := range expr.Must() {
		exprs = append(exprs, s.buildCondition(cond)...)
	}

	if len(expr.Should()) > 0 {
		var anyOf []clause.Expression
		for _, cond := range expr.Should() {
			parts := s.buildCondition(cond)
			switch len(parts) {
			case 0:
			case 1:
				anyOf = append(anyOf, parts[0])
			default:
				anyOf = append(anyOf, clause.And(parts...))
			}
		}
		// gorm joins a single-element OR group to the previous clause with OR,
		// so a lone should condition is added as a plain conjunct.
		switch len(anyOf) {
		case 0:
		case 1:
			exprs = append(exprs, anyOf[0])
		default:
			exprs = append(exprs, clause.Or(anyOf...))
		}
	}

	return exprs
}

func (s *Store) buildCondition(cond filter.Condition) []clause.Expression {
	col := clause.Column{Name: cond.Key()}

	switch cond.Kind() {
	case filter.Equal:
		return []clause.Expression{clause.Eq{Column: col, Value: cond.Value()}}
	case filter.Between:
		r := cond.Range()
		if r == nil {
			return nil
		}
		var parts []clause.Expression
		if r.GTE() != nil {
			parts = append(parts, clause.Gte{Column: col, Value: *r.GTE()})
		}
		if r.LTE() != nil {
			parts = append(parts, clause.Lte{Column: col, Value: *r.LTE()})
		}
		return parts
	case filter.Contains:
		return []clause.Expression{s.containsExpr(col, cond.Substring())}
	default:
		return nil
	}
}

// containsExpr builds a case-insensitive substring match. PostgreSQL has
// ILIKE; the other dialects lower both sides.
func (s *Store) containsExpr(col clause.Column, substr string) clause.Expression {
	pattern := "%" + likeEscaper.Replace(substr) + "%"
	if s.dialect == db.DriverPostgres {
		return clause.Expr{
			SQL:  "? ILIKE ? ESCAPE '" + likeEscape + "'",
			Vars: []any{col, pattern},
		}
	}
	return clause.Expr{
		SQL:  "LOWER(?) LIKE LOWER(?) ESCAPE '" + likeEscape + "'",
		Vars: []any{col, pattern},
	}
}
