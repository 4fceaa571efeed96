package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/tripsearch/internal/db"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/filter"
)

// jsonRoot is the JSONPath returned for every matched document.
const jsonRoot = "$"

// Find runs a filtered FT.SEARCH over the table's JSON index and decodes each
// matched document into a Row.
func (s *Store) Find(ctx context.Context, q *db.FindQuery) ([]db.Row, error) {
	if q == nil || q.Table == "" {
		return nil, fmt.Errorf("table is required: %w", db.ErrInvalidQuery)
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", db.ErrInvalidQuery)
	}

	query := buildFilter(q.Filters)
	if query == "" {
		query = "*"
	}

	args := []string{
		s.indexName(q.Table), query,
		"RETURN", "1", jsonRoot,
		"LIMIT", "0", strconv.Itoa(q.Limit),
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		args = append(args, "SORTBY", q.OrderBy, dir)
	}
	args = append(args, "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Table: q.Table, Err: err}
	}

	rows, err := parseFindResult(raw)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Table: q.Table, Err: err}
	}
	return rows, nil
}

// --- Result parsing ---

func parseFindResult(raw []rueidis.RedisMessage) ([]db.Row, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	rows := make([]db.Row, 0, min(int(total), len(raw)/2))
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		doc, ok := parseFieldPairs(fields)[jsonRoot]
		if !ok {
			continue
		}

		var row db.Row
		if err := json.Unmarshal([]byte(doc), &row); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		if row == nil {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Filter building ---

// buildFilter translates filter.Expression into an FT.SEARCH query string.
func buildFilter(expr filter.Expression) string {
	if expr.IsEmpty() {
		return ""
	}

	var parts []string

	for _, cond := range expr.Must() {
		if p := buildCondition(cond); p != "" {
			parts = append(parts, p)
		}
	}

	if shouldParts := buildShouldGroup(expr.Should()); shouldParts != "" {
		parts = append(parts, shouldParts)
	}

	return strings.Join(parts, " ")
}

func buildCondition(cond filter.Condition) string {
	switch cond.Kind() {
	case filter.Equal:
		return buildEqualFilter(cond.Key(), cond.Value())
	case filter.Between:
		if cond.Range() == nil {
			return ""
		}
		return buildNumericFilter(cond.Key(), *cond.Range())
	case filter.Contains:
		return buildContainsFilter(cond.Key(), cond.Substring())
	default:
		return ""
	}
}

func buildShouldGroup(conditions []filter.Condition) string {
	parts := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		if p := buildCondition(cond); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// buildEqualFilter emits a TAG match for textual values and a degenerate
// NUMERIC range for numbers.
func buildEqualFilter(key string, value any) string {
	switch v := value.(type) {
	case string:
		return buildTagFilter(key, v)
	case bool:
		return buildTagFilter(key, strconv.FormatBool(v))
	case int:
		return fmt.Sprintf("@%s:[%d %d]", key, v, v)
	case int64:
		return fmt.Sprintf("@%s:[%d %d]", key, v, v)
	case float64:
		return fmt.Sprintf("@%s:[%g %g]", key, v, v)
	default:
		return buildTagFilter(key, fmt.Sprint(v))
	}
}

func buildTagFilter(key, value string) string {
	escaped := tagEscaper.Replace(value)
	return fmt.Sprintf("@%s:{%s}", key, escaped)
}

func buildNumericFilter(key string, r filter.Range) string {
	minBound := "-inf"
	maxBound := "+inf"

	if r.GTE() != nil {
		minBound = fmt.Sprintf("%g", *r.GTE())
	}
	if r.LTE() != nil {
		maxBound = fmt.Sprintf("%g", *r.LTE())
	}

	return fmt.Sprintf("@%s:[%s %s]", key, minBound, maxBound)
}

// buildContainsFilter matches every whitespace-separated token of substr as an
// infix wildcard on a TEXT field. Text fields are case-insensitive.
func buildContainsFilter(key, substr string) string {
	tokens := strings.Fields(strings.ToLower(substr))
	if len(tokens) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("@%s:*%s*", key, escapeQuery(tok)))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// --- Query helpers ---

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`[`, `\[`,
	`]`, `\]`,
	`|`, `\|`,
	`-`, `\-`,
	`*`, `\*`,
	`:`, `\:`,
	`,`, `\,`,
	`.`, `\.`,
	`%`, `\%`,
	`~`, `\~`,
	`$`, `\$`,
)
