// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"z-novel-blueprint-api/internal/domain/entity"
)

// ThreadFilter 线程过滤条件
type ThreadFilter struct {
	Status entity.ThreadStatus
}

// ThreadRepository 谜题线程仓储接口
type ThreadRepository interface {
	// Create 创建线程
	Create(ctx context.Context, thread *entity.Thread) error

	// GetByID 根据 ID 获取线程，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Thread, error)

	// Update 更新线程
	Update(ctx context.Context, thread *entity.Thread) error

	// Delete 删除线程
	Delete(ctx context.Context, id string) error

	// ListByProject 获取项目下全部线程，可按状态过滤
	ListByProject(ctx context.Context, projectID string, filter *ThreadFilter) ([]*entity.Thread, error)
}
