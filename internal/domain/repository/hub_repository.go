package repository

import (
	"context"

	"z-novel-blueprint-api/internal/domain/entity"
)

// HubRepository 枢纽场景仓储接口
type HubRepository interface {
	// Create 创建枢纽
	Create(ctx context.Context, hub *entity.Hub) error

	// GetByID 根据 ID 获取枢纽，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id string) (*entity.Hub, error)

	// Update 更新枢纽
	Update(ctx context.Context, hub *entity.Hub) error

	// Delete 删除枢纽
	Delete(ctx context.Context, id string) error

	// ListByProject 获取项目下全部枢纽
	ListByProject(ctx context.Context, projectID string) ([]*entity.Hub, error)
}
