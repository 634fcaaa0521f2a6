package repository

import (
	"context"
	"time"

	apperrors "study-planner/backend/pkg/errors"
	"study-planner/backend/pkg/redis"
)

// PlanCacheRepository 计划结果缓存访问接口
// 值为序列化后的计划响应，键为规范化请求的摘要
type PlanCacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

type planCacheRepo struct {
	rdb *redis.Client
}

// NewPlanCacheRepo 创建 PlanCacheRepository 实例；rdb 为 nil 时返回不缓存的实现
func NewPlanCacheRepo(rdb *redis.Client) PlanCacheRepository {
	if rdb == nil {
		return noopPlanCache{}
	}
	return &planCacheRepo{rdb: rdb}
}

func (r *planCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	return r.rdb.GetPlan(ctx, key)
}

func (r *planCacheRepo) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return r.rdb.SetPlan(ctx, key, data, ttl)
}

// noopPlanCache 未配置 Redis 时使用：读取总是未命中，写入直接丢弃
type noopPlanCache struct{}

func (noopPlanCache) Get(context.Context, string) ([]byte, error) {
	return nil, apperrors.ErrCacheMiss
}

func (noopPlanCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
