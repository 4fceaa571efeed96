package catalog

import (
	"context"
	"testing"

	"github.com/kailas-cloud/tripsearch/internal/db"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/filter"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	findFn  func(ctx context.Context, q *db.FindQuery) ([]db.Row, error)
	queries []*db.FindQuery
}

func (m *mockStore) Find(ctx context.Context, q *db.FindQuery) ([]db.Row, error) {
	m.queries = append(m.queries, q)
	if m.findFn != nil {
		return m.findFn(ctx, q)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, 0), ms
}

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

// condByKey returns the first condition on key, or false.
func condByKey(conds []filter.Condition, key string) (filter.Condition, bool) {
	for _, c := range conds {
		if c.Key() == key {
			return c, true
		}
	}
	return filter.Condition{}, false
}
