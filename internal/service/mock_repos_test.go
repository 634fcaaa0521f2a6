package service

import (
	"context"
	"time"

	"study-planner/backend/internal/repository"
	apperrors "study-planner/backend/pkg/errors"
)

// ── Mock PlanCacheRepository ──

type mockPlanCacheRepo struct {
	items  map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
	gets   int
	sets   int
}

func newMockPlanCacheRepo() *mockPlanCacheRepo {
	return &mockPlanCacheRepo{
		items: make(map[string][]byte),
		ttls:  make(map[string]time.Duration),
	}
}

func (m *mockPlanCacheRepo) Get(_ context.Context, key string) ([]byte, error) {
	m.gets++
	if m.getErr != nil {
		return nil, m.getErr
	}
	if data, ok := m.items[key]; ok {
		return data, nil
	}
	return nil, apperrors.ErrCacheMiss
}

func (m *mockPlanCacheRepo) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = data
	m.ttls[key] = ttl
	return nil
}

func newTestRepository(cache *mockPlanCacheRepo) *repository.Repository {
	return &repository.Repository{PlanCache: cache}
}
