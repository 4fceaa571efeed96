package tripsearch

import (
	"context"
	"time"

	"github.com/kailas-cloud/tripsearch/internal/db"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/request"
	"github.com/kailas-cloud/tripsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/tripsearch/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn      func(ctx context.Context, req *request.Request) ([]result.Result, int)
	suggestionsFn func(ctx context.Context, query string, limit int) []string
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) ([]result.Result, int) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) Suggestions(ctx context.Context, query string, limit int) []string {
	return m.suggestionsFn(ctx, query, limit)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- db.Store mock ---

type mockStore struct {
	pingErr error
	closed  bool
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }

func (m *mockStore) Find(context.Context, *db.FindQuery) ([]db.Row, error) { return nil, nil }

func (m *mockStore) Close() { m.closed = true }

func (m *mockStore) WaitForReady(context.Context, time.Duration) error { return m.pingErr }
