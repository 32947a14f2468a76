// Package handler 提供 HTTP 请求处理器
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

// ThreadHandler 谜题线程处理器
type ThreadHandler struct {
	svc *blueprint.Service
}

// NewThreadHandler 创建线程处理器
func NewThreadHandler(svc *blueprint.Service) *ThreadHandler {
	return &ThreadHandler{svc: svc}
}

// ListThreads 获取项目下的线程列表
// @Summary 获取线程列表
// @Description 获取指定项目的谜题线程列表，支持按状态过滤
// @Tags Threads
// @Produce json
// @Param pid path string true "项目 ID"
// @Param status query string false "状态过滤"
// @Success 200 {object} dto.ListResponse[entity.Thread]
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/threads/projects/{pid} [get]
func (h *ThreadHandler) ListThreads(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	projectID := dto.BindProjectID(c)

	var filter *repository.ThreadFilter
	if status := c.Query("status"); status != "" {
		filter = &repository.ThreadFilter{Status: entity.ThreadStatus(status)}
	}

	threads, err := h.svc.ListThreads(ctx, userID, projectID, filter)
	if err != nil {
		logger.Error(ctx, "failed to list threads", err, "project_id", projectID)
		dto.HandleError(c, err)
		return
	}
	dto.OKList(c, threads)
}

// CreateThread 创建线程
// @Summary 创建线程
// @Description 在项目中创建新的谜题线程
// @Tags Threads
// @Accept json
// @Produce json
// @Param body body dto.CreateThreadRequest true "线程信息"
// @Success 201 {object} entity.Thread
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /blueprint/threads [post]
func (h *ThreadHandler) CreateThread(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)

	var req dto.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	thread := req.ToEntity()
	if err := h.svc.CreateThread(ctx, userID, thread); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.Created(c, thread)
}

// UpdateThread 合并更新线程
// @Summary 更新线程
// @Description 仅更新请求中提交的字段
// @Tags Threads
// @Accept json
// @Produce json
// @Param id path string true "线程 ID"
// @Param body body dto.UpdateThreadRequest true "更新内容"
// @Success 200 {object} entity.Thread
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/threads/{id} [put]
func (h *ThreadHandler) UpdateThread(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	id := dto.BindID(c)

	var req dto.UpdateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	thread, err := h.svc.UpdateThread(ctx, userID, id, req.ToPatch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.OK(c, thread)
}

// DeleteThread 删除线程
// @Summary 删除线程
// @Description 删除线程并解除其下线索的关联
// @Tags Threads
// @Produce json
// @Param id path string true "线程 ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /blueprint/threads/{id} [delete]
func (h *ThreadHandler) DeleteThread(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(ctx)
	id := dto.BindID(c)

	if err := h.svc.DeleteThread(ctx, userID, id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.Deleted(c, "线程删除成功", id)
}
