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

// ClueHandler 线索处理器
type ClueHandler struct {
	svc *blueprint.Service
}

// NewClueHandler 创建线索处理器
func NewClueHandler(svc *blueprint.Service) *ClueHandler {
	return &ClueHandler{svc: svc}
}

// ListClues 获取项目下的线索列表
// @Summary 获取线索列表
// @Description 获取指定项目的线索列表，支持按状态和所属线程过滤
// @Tags Clues
// @Produce json
// @Param pid path string true "项目 ID"
// @Param status query string false "状态过滤"
// @Param thread_id query string false "线程过滤"
// @Success 200 {object} dto.ListResponse[entity.Clue]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/clues/projects/{pid} [get]
func (h *ClueHandler) ListClues(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	projectID := dto.BindProjectID(c)

	var filter *repository.ClueFilter
	status := c.Query("status")
	threadID := c.Query("thread_id")
	if status != "" || threadID != "" {
		filter = &repository.ClueFilter{Status: entity.ClueStatus(status), ThreadID: threadID}
	}

	clues, err := h.svc.ListClues(ctx, userID, projectID, filter)
	if err != nil {
		logger.Error(ctx, "failed to list clues", err, "project_id", projectID)
		dto.HandleError(c, err)
		return
	}
	dto.OKList(c, clues)
}

// CreateClue 创建线索
// @Summary 创建线索
// @Description 在项目中创建新线索，可选归属某条线程
// @Tags Clues
// @Accept json
// @Produce json
// @Param body body dto.CreateClueRequest true "线索信息"
// @Success 201 {object} entity.Clue
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /blueprint/clues [post]
func (h *ClueHandler) CreateClue(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)

	var req dto.CreateClueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	clue := req.ToEntity()
	if err := h.svc.CreateClue(ctx, userID, clue); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.Created(c, clue)
}

// UpdateClue 合并更新线索
// @Summary 更新线索
// @Description 仅更新请求中提交的字段；thread_id 显式传 null 解除线程关联
// @Tags Clues
// @Accept json
// @Produce json
// @Param id path string true "线索 ID"
// @Param body body dto.UpdateClueRequest true "更新内容"
// @Success 200 {object} entity.Clue
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/clues/{id} [put]
func (h *ClueHandler) UpdateClue(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	id := dto.BindID(c)

	var req dto.UpdateClueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	clue, err := h.svc.UpdateClue(ctx, userID, id, req.ToPatch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.OK(c, clue)
}

// DeleteClue 删除线索
// @Summary 删除线索
// @Tags Clues
// @Produce json
// @Param id path string true "线索 ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/clues/{id} [delete]
func (h *ClueHandler) DeleteClue(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	id := dto.BindID(c)

	if err := h.svc.DeleteClue(ctx, userID, id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.Deleted(c, "线索删除成功", id)
}
