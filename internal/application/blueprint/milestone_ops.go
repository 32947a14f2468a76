package blueprint

import (
	"context"

	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
	apperrors "z-novel-blueprint-api/pkg/errors"
	"z-novel-blueprint-api/pkg/logger"
)

// MilestonePatch 里程碑合并更新
type MilestonePatch struct {
	MilestoneID      *string
	Title            *string
	Description      *string
	Conditions       *[]entity.MilestoneCondition
	Cost             *string
	Aftermath        *string
	Status           *entity.MilestoneStatus
	TargetChapter    **int
	ActualChapter    **int
	RelatedThreadIDs *[]string
	Notes            *string
}

// Apply 将补丁应用到里程碑实体
// 状态变更走 TransitionStatus 以维护 achieved_at
func (p *MilestonePatch) Apply(m *entity.Milestone) {
	if p.MilestoneID != nil {
		m.MilestoneID = *p.MilestoneID
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Conditions != nil {
		m.Conditions = *p.Conditions
	}
	if p.Cost != nil {
		m.Cost = *p.Cost
	}
	if p.Aftermath != nil {
		m.Aftermath = *p.Aftermath
	}
	if p.Status != nil {
		m.TransitionStatus(*p.Status)
	}
	if p.TargetChapter != nil {
		m.TargetChapter = *p.TargetChapter
	}
	if p.ActualChapter != nil {
		m.ActualChapter = *p.ActualChapter
	}
	if p.RelatedThreadIDs != nil {
		m.RelatedThreadIDs = *p.RelatedThreadIDs
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	m.Touch()
}

// ListMilestones 获取项目下里程碑列表
func (s *Service) ListMilestones(ctx context.Context, callerID, projectID string, filter *repository.MilestoneFilter) ([]*entity.Milestone, error) {
	if err := s.verifyAccess(ctx, projectID, callerID); err != nil {
		return nil, err
	}
	return s.milestones.ListByProject(ctx, projectID, filter)
}

// CreateMilestone 创建里程碑
func (s *Service) CreateMilestone(ctx context.Context, callerID string, milestone *entity.Milestone) (err error) {
	defer func() { recordOp("milestone", "create", err) }()

	if err = s.verifyAccess(ctx, milestone.ProjectID, callerID); err != nil {
		return err
	}
	if err = s.milestones.Create(ctx, milestone); err != nil {
		logger.Error(ctx, "failed to create milestone", err, "project_id", milestone.ProjectID)
		return err
	}
	return nil
}

// UpdateMilestone 合并更新里程碑
func (s *Service) UpdateMilestone(ctx context.Context, callerID, id string, patch *MilestonePatch) (milestone *entity.Milestone, err error) {
	defer func() { recordOp("milestone", "update", err) }()

	milestone, err = s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, apperrors.ErrMilestoneNotFound
	}

	if err = s.verifyAccess(ctx, milestone.ProjectID, callerID); err != nil {
		return nil, err
	}

	patch.Apply(milestone)

	if err = s.milestones.Update(ctx, milestone); err != nil {
		logger.Error(ctx, "failed to update milestone", err, "milestone_id", id)
		return nil, err
	}
	return milestone, nil
}

// DeleteMilestone 删除里程碑
func (s *Service) DeleteMilestone(ctx context.Context, callerID, id string) (err error) {
	defer func() { recordOp("milestone", "delete", err) }()

	milestone, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if milestone == nil {
		return apperrors.ErrMilestoneNotFound
	}

	if err = s.verifyAccess(ctx, milestone.ProjectID, callerID); err != nil {
		return err
	}

	if err = s.milestones.Delete(ctx, id); err != nil {
		logger.Error(ctx, "failed to delete milestone", err, "milestone_id", id)
		return err
	}
	return nil
}
