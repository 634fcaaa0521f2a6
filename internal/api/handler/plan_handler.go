package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/service"
	"study-planner/backend/pkg/response"
)

// PlanHandler 学习计划模块 HTTP 处理器
type PlanHandler struct {
	planSvc service.PlanService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// Generate 生成周学习计划
// POST /api/v1/plans
func (h *PlanHandler) Generate(c *gin.Context) {
	req, ok := bindPlanRequest(c)
	if !ok {
		return
	}

	resp, err := h.planSvc.Generate(c.Request.Context(), req)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	response.OK(c, resp)
}

// handlePlanError 计划与导出共用的业务错误映射
func handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCourse):
		response.ValidationFailed(c, 20002, "课程信息无效", err.Error())
	case errors.Is(err, service.ErrInvalidReferenceDate):
		response.ValidationFailed(c, 20003, "参考日期无效", err.Error())
	case errors.Is(err, service.ErrExportNoSessions):
		response.Error(c, http.StatusUnprocessableEntity, 21001, "计划中没有可导出的学习时段")
	default:
		response.InternalError(c)
	}
}
