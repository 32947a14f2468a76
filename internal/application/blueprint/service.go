// Package blueprint 提供结构蓝图应用服务
package blueprint

import (
	"context"

	"z-novel-blueprint-api/internal/domain/repository"
	"z-novel-blueprint-api/pkg/metrics"
)

// Service 结构蓝图服务
// 负责四类实体的 CRUD 编排：访问校验、合并更新、删除联动
type Service struct {
	threads    repository.ThreadRepository
	clues      repository.ClueRepository
	hubs       repository.HubRepository
	milestones repository.MilestoneRepository
	gate       repository.AccessGate
	tx         repository.Transactor
}

// NewService 创建结构蓝图服务
func NewService(
	threads repository.ThreadRepository,
	clues repository.ClueRepository,
	hubs repository.HubRepository,
	milestones repository.MilestoneRepository,
	gate repository.AccessGate,
	tx repository.Transactor,
) *Service {
	return &Service{
		threads:    threads,
		clues:      clues,
		hubs:       hubs,
		milestones: milestones,
		gate:       gate,
		tx:         tx,
	}
}

// verifyAccess 校验访问权限，必须在任何读写之前调用
func (s *Service) verifyAccess(ctx context.Context, projectID, callerID string) error {
	return s.gate.VerifyAccess(ctx, projectID, callerID)
}

// recordOp 记录实体操作指标
func recordOp(kind, op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.BlueprintOpsTotal.WithLabelValues(kind, op, status).Inc()
}
