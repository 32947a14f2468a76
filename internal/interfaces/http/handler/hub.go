package handler

import (
	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/interfaces/http/dto"
	"z-novel-blueprint-api/internal/interfaces/http/middleware"
	"z-novel-blueprint-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HubHandler 枢纽场景处理器
type HubHandler struct {
	svc *blueprint.Service
}

// NewHubHandler 创建枢纽处理器
func NewHubHandler(svc *blueprint.Service) *HubHandler {
	return &HubHandler{svc: svc}
}

// ListHubs 获取项目下的枢纽列表
// @Summary 获取枢纽列表
// @Tags Hubs
// @Produce json
// @Param pid path string true "项目 ID"
// @Success 200 {object} dto.ListResponse[entity.Hub]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/hubs/projects/{pid} [get]
func (h *HubHandler) ListHubs(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	projectID := dto.BindProjectID(c)

	hubs, err := h.svc.ListHubs(ctx, userID, projectID)
	if err != nil {
		logger.Error(ctx, "failed to list hubs", err, "project_id", projectID)
		dto.HandleError(c, err)
		return
	}
	dto.OKList(c, hubs)
}

// CreateHub 创建枢纽
// @Summary 创建枢纽
// @Tags Hubs
// @Accept json
// @Produce json
// @Param body body dto.CreateHubRequest true "枢纽信息"
// @Success 201 {object} entity.Hub
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /blueprint/hubs [post]
func (h *HubHandler) CreateHub(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)

	var req dto.CreateHubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	hub := req.ToEntity()
	if err := h.svc.CreateHub(ctx, userID, hub); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.Created(c, hub)
}

// UpdateHub 合并更新枢纽
// @Summary 更新枢纽
// @Description 仅更新请求中提交的字段
// @Tags Hubs
// @Accept json
// @Produce json
// @Param id path string true "枢纽 ID"
// @Param body body dto.UpdateHubRequest true "更新内容"
// @Success 200 {object} entity.Hub
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/hubs/{id} [put]
func (h *HubHandler) UpdateHub(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	id := dto.BindID(c)

	var req dto.UpdateHubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	hub, err := h.svc.UpdateHub(ctx, userID, id, req.ToPatch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.OK(c, hub)
}

// DeleteHub 删除枢纽
// @Summary 删除枢纽
// @Tags Hubs
// @Produce json
// @Param id path string true "枢纽 ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/hubs/{id} [delete]
func (h *HubHandler) DeleteHub(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	id := dto.BindID(c)

	if err := h.svc.DeleteHub(ctx, userID, id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.Deleted(c, "枢纽删除成功", id)
}
