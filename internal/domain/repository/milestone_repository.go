package repository

import (
	"context"

	"z-novel-blueprint-api/internal/domain/entity"
)

// MilestoneFilter 里程碑过滤条件
type MilestoneFilter struct {
	Status entity.MilestoneStatus
}

// MilestoneRepository 里程碑仓储接口
type MilestoneRepository interface {
	// Create 创建里程碑
	Create(ctx context.Context, milestone *entity.Milestone) error

	// GetByID 根据 ID 获取里程碑，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Milestone, error)

	// Update 更新里程碑
	Update(ctx context.Context, milestone *entity.Milestone) error

	// Delete 删除里程碑
	Delete(ctx context.Context, id string) error

	// ListByProject 获取项目下全部里程碑，可按状态过滤
	ListByProject(ctx context.Context, projectID string, filter *MilestoneFilter) ([]*entity.Milestone, error)
}
