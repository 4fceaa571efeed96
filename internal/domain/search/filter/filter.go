package filter

import (
	"errors"
	"fmt"
)

// MaxConditionsPerGroup is the maximum number of conditions per filter group.
const MaxConditionsPerGroup = 32

// Expression is a store-neutral row filter. Every must condition has to hold;
// when should is non-empty at least one of its conditions has to hold as well.
type Expression struct {
	must   []Condition
	should []Condition
}

// NewExpression validates and creates a filter Expression.
func NewExpression(must, should []Condition) (Expression, error) {
	if len(must) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many must conditions (max %d)", MaxConditionsPerGroup)
	}
	if len(should) > MaxConditionsPerGroup {
		return Expression{}, fmt.Errorf("too many should conditions (max %d)", MaxConditionsPerGroup)
	}
	return Expression{must: must, should: should}, nil
}

// Must returns the must conditions.
func (e Expression) Must() []Condition { return e.must }

// Should returns the should conditions.
func (e Expression) Should() []Condition { return e.should }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.must) == 0 && len(e.should) == 0
}

// Kind is the comparison a Condition performs.
type Kind int

// Condition kinds.
const (
	// Equal matches a column against an exact value.
	Equal Kind = iota + 1
	// Between matches a numeric column against an inclusive range.
	Between
	// Contains matches a textual column against a case-insensitive substring.
	Contains
)

// Condition is a single filter clause on one column.
type Condition struct {
	kind      Kind
	key       string
	value     any
	substr    string
	rangeExpr *Range
}

// NewEqual creates an exact match condition.
func NewEqual(key string, value any) (Condition, error) {
	if key == "" {
		return Condition{}, errors.New("filter key is required")
	}
	if value == nil {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{kind: Equal, key: key, value: value}, nil
}

// NewRange creates a numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, errors.New("filter key is required")
	}
	return Condition{kind: Between, key: key, rangeExpr: &r}, nil
}

// NewContains creates a case-insensitive substring condition.
func NewContains(key, substr string) (Condition, error) {
	if key == "" {
		return Condition{}, errors.New("filter key is required")
	}
	if substr == "" {
		return Condition{}, fmt.Errorf("substring is required for key %q", key)
	}
	return Condition{kind: Contains, key: key, substr: substr}, nil
}

// Kind returns the comparison kind.
func (c Condition) Kind() Kind { return c.kind }

// Key returns the column name.
func (c Condition) Key() string { return c.key }

// Value returns the exact match value.
func (c Condition) Value() any { return c.value }

// Substring returns the substring of a Contains condition.
func (c Condition) Substring() string { return c.substr }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// Range is an inclusive numeric range; either bound may be open.
type Range struct {
	gte *float64
	lte *float64
}

// NewRangeFilter validates and creates a Range. At least one bound is required.
func NewRangeFilter(gte, lte *float64) (Range, error) {
	if gte == nil && lte == nil {
		return Range{}, errors.New("at least one range boundary is required")
	}
	if gte != nil && lte != nil && *gte > *lte {
		return Range{}, fmt.Errorf("lower bound %v exceeds upper bound %v", *gte, *lte)
	}
	return Range{gte: gte, lte: lte}, nil
}

// GTE returns the lower inclusive bound.
func (r Range) GTE() *float64 { return r.gte }

// LTE returns the upper inclusive bound.
func (r Range) LTE() *float64 { return r.lte }
