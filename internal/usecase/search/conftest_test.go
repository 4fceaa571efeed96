package search

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/tripsearch/internal/domain/listing"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/sortmode"
)

// --- Mocks ---

type matchingCall struct {
	cat    listing.Category
	substr string
	limit  int
}

// mockRepo serves fixed records per category. Safe for concurrent use.
type mockRepo struct {
	mu sync.Mutex

	records map[listing.Category][]listing.Record
	errs    map[listing.Category]error
	// block makes Candidates wait for context cancellation for the category.
	block map[listing.Category]bool

	matching    map[listing.Category][]listing.Record
	matchingErr error

	candidateCalls []listing.Category
	matchingCalls  []matchingCall
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		records:  map[listing.Category][]listing.Record{},
		errs:     map[listing.Category]error{},
		block:    map[listing.Category]bool{},
		matching: map[listing.Category][]listing.Record{},
	}
}

func (m *mockRepo) Candidates(
	ctx context.Context, cat listing.Category, _ request.Filters,
) ([]listing.Record, error) {
	m.mu.Lock()
	m.candidateCalls = append(m.candidateCalls, cat)
	recs, err, block := m.records[cat], m.errs[cat], m.block[cat]
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, fmt.Errorf("fetch %s: %w", cat, ctx.Err())
	}
	return recs, err
}

func (m *mockRepo) Matching(
	_ context.Context, cat listing.Category, substr string, limit int,
) ([]listing.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchingCalls = append(m.matchingCalls, matchingCall{cat: cat, substr: substr, limit: limit})
	if m.matchingErr != nil {
		return nil, m.matchingErr
	}
	recs := m.matching[cat]
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (m *mockRepo) calledCategories() []listing.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]listing.Category(nil), m.candidateCalls...)
}

// --- Helpers ---

func newTestService(t *testing.T) (*Service, *mockRepo) {
	t.Helper()
	repo := newMockRepo()
	return New(repo, time.Second), repo
}

func mustRequest(
	t *testing.T, query string, scope listing.Scope, sort sortmode.Mode, limit, offset int,
) *request.Request {
	t.Helper()
	r, err := request.New(query, scope, request.Filters{}, sort, limit, offset)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}
