package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "study-planner/backend/pkg/errors"
)

func TestNewRepository_WithoutRedis(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()

	if err := repo.PlanCache.Set(ctx, "k", []byte(`{}`), time.Minute); err != nil {
		t.Fatalf("未启用缓存时写入不应报错，实际 err=%v", err)
	}
	if _, err := repo.PlanCache.Get(ctx, "k"); !errors.Is(err, apperrors.ErrCacheMiss) {
		t.Errorf("期望 ErrCacheMiss，实际=%v", err)
	}
}
