package repository

import (
	"context"

	"z-novel-blueprint-api/internal/domain/entity"
)

// ClueFilter 线索过滤条件
type ClueFilter struct {
	Status   entity.ClueStatus
	ThreadID string
}

// ClueRepository 线索仓储接口
type ClueRepository interface {
	// Create 创建线索
	Create(ctx context.Context, clue *entity.Clue) error

	// GetByID 根据 ID 获取线索，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Clue, error)

	// Update 更新线索
	Update(ctx context.Context, clue *entity.Clue) error

	// Delete 删除线索
	Delete(ctx context.Context, id string) error

	// ListByProject 获取项目下全部线索，可按状态和线程过滤
	ListByProject(ctx context.Context, projectID string, filter *ClueFilter) ([]*entity.Clue, error)

	// DetachThread 将引用指定线程的所有线索的 thread_id 置空
	DetachThread(ctx context.Context, threadID string) error
}
