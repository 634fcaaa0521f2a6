package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/dto"
	"study-planner/backend/pkg/response"
)

// bindPlanRequest 绑定并校验计划请求体。
// 失败时写入错误响应并返回 false，调用方应直接 return。
func bindPlanRequest(c *gin.Context) (*dto.GeneratePlanRequest, bool) {
	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return nil, false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 20001, "参数校验失败", err.Error())
		return nil, false
	}
	return &req, true
}
