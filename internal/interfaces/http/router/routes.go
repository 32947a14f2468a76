// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterBlueprintRoutes 注册结构蓝图路由
func RegisterBlueprintRoutes(g *gin.RouterGroup, h Handlers) {
	// 总览
	g.GET("/projects/:pid", h.Blueprint.GetProjectBlueprint)

	// 谜题线程
	threads := g.Group("/threads")
	{
		threads.GET("/projects/:pid", h.Thread.ListThreads)
		threads.POST("", h.Thread.CreateThread)
		threads.PUT("/:id", h.Thread.UpdateThread)
		threads.DELETE("/:id", h.Thread.DeleteThread)
	}

	// 线索账本
	clues := g.Group("/clues")
	{
		clues.GET("/projects/:pid", h.Clue.ListClues)
		clues.POST("", h.Clue.CreateClue)
		clues.PUT("/:id", h.Clue.UpdateClue)
		clues.DELETE("/:id", h.Clue.DeleteClue)
	}

	// 枢纽场景
	hubs := g.Group("/hubs")
	{
		hubs.GET("/projects/:pid", h.Hub.ListHubs)
		hubs.POST("", h.Hub.CreateHub)
		hubs.PUT("/:id", h.Hub.UpdateHub)
		hubs.DELETE("/:id", h.Hub.DeleteHub)
	}

	// 进阶里程碑
	milestones := g.Group("/milestones")
	{
		milestones.GET("/projects/:pid", h.Milestone.ListMilestones)
		milestones.POST("", h.Milestone.CreateMilestone)
		milestones.PUT("/:id", h.Milestone.UpdateMilestone)
		milestones.DELETE("/:id", h.Milestone.DeleteMilestone)
	}
}

// RegisterAIRoutes 注册 AI 对话路由
func RegisterAIRoutes(g *gin.RouterGroup, h Handlers) {
	g.POST("/chat", h.Chat.Chat)
}
