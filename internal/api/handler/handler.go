package handler

import "study-planner/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Plan   *PlanHandler
	Export *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Plan:   NewPlanHandler(svc.Plan),
		Export: NewExportHandler(svc.Export),
	}
}
