package blueprint

import (
	"context"

	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
	apperrors "z-novel-blueprint-api/pkg/errors"
	"z-novel-blueprint-api/pkg/logger"
)

// CluePatch 线索合并更新
// ThreadID 为双层指针：外层 nil 表示不修改，内层 nil 表示显式解除关联
type CluePatch struct {
	ThreadID            **string
	ClueID              *string
	Title               *string
	Description         *string
	Carrier             *string
	Status              *entity.ClueStatus
	Lifecycle           *entity.ClueLifecycle
	IsRedHerring        *bool
	RelatedCharacterIDs *[]string
	Notes               *string
}

// Apply 将补丁应用到线索实体
func (p *CluePatch) Apply(c *entity.Clue) {
	if p.ThreadID != nil {
		c.ThreadID = *p.ThreadID
	}
	if p.ClueID != nil {
		c.ClueID = *p.ClueID
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Carrier != nil {
		c.Carrier = *p.Carrier
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Lifecycle != nil {
		c.Lifecycle = p.Lifecycle
	}
	if p.IsRedHerring != nil {
		c.IsRedHerring = *p.IsRedHerring
	}
	if p.RelatedCharacterIDs != nil {
		c.RelatedCharacterIDs = *p.RelatedCharacterIDs
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	c.Touch()
}

// ListClues 获取项目下线索列表
func (s *Service) ListClues(ctx context.Context, callerID, projectID string, filter *repository.ClueFilter) ([]*entity.Clue, error) {
	if err := s.verifyAccess(ctx, projectID, callerID); err != nil {
		return nil, err
	}
	return s.clues.ListByProject(ctx, projectID, filter)
}

// CreateClue 创建线索
func (s *Service) CreateClue(ctx context.Context, callerID string, clue *entity.Clue) (err error) {
	defer func() { recordOp("clue", "create", err) }()

	if err = s.verifyAccess(ctx, clue.ProjectID, callerID); err != nil {
		return err
	}
	if err = s.clues.Create(ctx, clue); err != nil {
		logger.Error(ctx, "failed to create clue", err, "project_id", clue.ProjectID)
		return err
	}
	return nil
}

// UpdateClue 合并更新线索
func (s *Service) UpdateClue(ctx context.Context, callerID, id string, patch *CluePatch) (clue *entity.Clue, err error) {
	defer func() { recordOp("clue", "update", err) }()

	clue, err = s.clues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if clue == nil {
		return nil, apperrors.ErrClueNotFound
	}

	if err = s.verifyAccess(ctx, clue.ProjectID, callerID); err != nil {
		return nil, err
	}

	patch.Apply(clue)

	if err = s.clues.Update(ctx, clue); err != nil {
		logger.Error(ctx, "failed to update clue", err, "clue_id", id)
		return nil, err
	}
	return clue, nil
}

// DeleteClue 删除线索
func (s *Service) DeleteClue(ctx context.Context, callerID, id string) (err error) {
	defer func() { recordOp("clue", "delete", err) }()

	clue, err := s.clues.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if clue == nil {
		return apperrors.ErrClueNotFound
	}

	if err = s.verifyAccess(ctx, clue.ProjectID, callerID); err != nil {
		return err
	}

	if err = s.clues.Delete(ctx, id); err != nil {
		logger.Error(ctx, "failed to delete clue", err, "clue_id", id)
		return err
	}
	return nil
}
