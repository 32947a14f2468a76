package handler

import (
	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
	"z-novel-blueprint-api/internal/interfaces/http/dto"
	"z-novel-blueprint-api/internal/interfaces/http/middleware"
	"z-novel-blueprint-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// MilestoneHandler 里程碑处理器
type MilestoneHandler struct {
	svc *blueprint.Service
}

// NewMilestoneHandler 创建里程碑处理器
func NewMilestoneHandler(svc *blueprint.Service) *MilestoneHandler {
	return &MilestoneHandler{svc: svc}
}

// ListMilestones 获取项目下的里程碑列表
// @Summary 获取里程碑列表
// @Tags Milestones
// @Produce json
// @Param pid path string true "项目 ID"
// @Param status query string false "状态过滤"
// @Success 200 {object} dto.ListResponse[entity.Milestone]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/milestones/projects/{pid} [get]
func (h *MilestoneHandler) ListMilestones(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	projectID := dto.BindProjectID(c)

	var filter *repository.MilestoneFilter
	if status := c.Query("status"); status != "" {
		filter = &repository.MilestoneFilter{Status: entity.MilestoneStatus(status)}
	}

	milestones, err := h.svc.ListMilestones(ctx, userID, projectID, filter)
	if err != nil {
		logger.Error(ctx, "failed to list milestones", err, "project_id", projectID)
		dto.HandleError(c, err)
		return
	}
	dto.OKList(c, milestones)
}

// CreateMilestone 创建里程碑
// @Summary 创建里程碑
// @Tags Milestones
// @Accept json
// @Produce json
// @Param body body dto.CreateMilestoneRequest true "里程碑信息"
// @Success 201 {object} entity.Milestone
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /blueprint/milestones [post]
func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	milestone := req.ToEntity()
	if err := h.svc.CreateMilestone(ctx, userID, milestone); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.Created(c, milestone)
}

// UpdateMilestone 合并更新里程碑
// @Summary 更新里程碑
// @Description 仅更新请求中提交的字段；进入 achieved 状态时记录达成时间
// @Tags Milestones
// @Accept json
// @Produce json
// @Param id path string true "里程碑 ID"
// @Param body body dto.UpdateMilestoneRequest true "更新内容"
// @Success 200 {object} entity.Milestone
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/milestones/{id} [put]
func (h *MilestoneHandler) UpdateMilestone(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	id := dto.BindID(c)

	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	milestone, err := h.svc.UpdateMilestone(ctx, userID, id, req.ToPatch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.OK(c, milestone)
}

// DeleteMilestone 删除里程碑
// @Summary 删除里程碑
// @Tags Milestones
// @Produce json
// @Param id path string true "里程碑 ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/milestones/{id} [delete]
func (h *MilestoneHandler) DeleteMilestone(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	id := dto.BindID(c)

	if err := h.svc.DeleteMilestone(ctx, userID, id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.Deleted(c, "里程碑删除成功", id)
}
