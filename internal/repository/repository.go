package repository

import "study-planner/backend/pkg/redis"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	PlanCache PlanCacheRepository
}

// NewRepository 创建 Repository 聚合；rdb 可为 nil（不启用缓存）
func NewRepository(rdb *redis.Client) *Repository {
	return &Repository{
		PlanCache: NewPlanCacheRepo(rdb),
	}
}
