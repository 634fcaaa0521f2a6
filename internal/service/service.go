package service

import (
	"go.uber.org/zap"

	"study-planner/backend/config"
	"study-planner/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Plan   PlanService
	Export ExportService
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) (*Service, error) {
	plan, err := NewPlanService(&cfg.Planner, repo, logger)
	if err != nil {
		return nil, err
	}
	export, err := NewExportService(&cfg.Planner, plan, logger)
	if err != nil {
		return nil, err
	}
	return &Service{Plan: plan, Export: export}, nil
}
