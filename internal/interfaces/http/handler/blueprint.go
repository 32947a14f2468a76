package handler

import (
	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/interfaces/http/dto"
	"z-novel-blueprint-api/internal/interfaces/http/middleware"
	"z-novel-blueprint-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// BlueprintHandler 结构蓝图总览处理器
type BlueprintHandler struct {
	svc *blueprint.Service
}

// NewBlueprintHandler 创建总览处理器
func NewBlueprintHandler(svc *blueprint.Service) *BlueprintHandler {
	return &BlueprintHandler{svc: svc}
}

// GetProjectBlueprint 获取项目完整结构蓝图
// @Summary 获取结构蓝图总览
// @Description 一次返回项目的全部线程、线索、枢纽、里程碑及统计数据
// @Tags Blueprint
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} blueprint.Overview
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/projects/{pid} [get]
func (h *BlueprintHandler) GetProjectBlueprint(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	projectID := dto.BindProjectID(c)

	overview, err := h.svc.GetOverview(ctx, userID, projectID)
	if err != nil {
		logger.Error(ctx, "failed to get project blueprint", err, "project_id", projectID)
		dto.HandleError(c, err)
		return
	}
	dto.OK(c, overview)
}
