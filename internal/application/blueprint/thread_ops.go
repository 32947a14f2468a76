package blueprint

import (
	"context"

	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
	apperrors "z-novel-blueprint-api/pkg/errors"
	"z-novel-blueprint-api/pkg/logger"
)

// ThreadPatch 线程合并更新
// 仅非 nil 字段写入；显式传入的空值同样生效
type ThreadPatch struct {
	ThreadID            *string
	Title               *string
	CoreQuestion        *string
	FinalAnswer         *string
	Status              *entity.ThreadStatus
	RevealSchedule      *[]entity.RevealPoint
	RelatedCharacterIDs *[]string
	Notes               *string
	Color               *string
}

// Apply 将补丁应用到线程实体
func (p *ThreadPatch) Apply(t *entity.Thread) {
	if p.ThreadID != nil {
		t.ThreadID = *p.ThreadID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.CoreQuestion != nil {
		t.CoreQuestion = *p.CoreQuestion
	}
	if p.FinalAnswer != nil {
		t.FinalAnswer = *p.FinalAnswer
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.RevealSchedule != nil {
		t.RevealSchedule = *p.RevealSchedule
	}
	if p.RelatedCharacterIDs != nil {
		t.RelatedCharacterIDs = *p.RelatedCharacterIDs
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	t.Touch()
}

// ListThreads 获取项目下线程列表
func (s *Service) ListThreads(ctx context.Context, callerID, projectID string, filter *repository.ThreadFilter) ([]*entity.Thread, error) {
	if err := s.verifyAccess(ctx, projectID, callerID); err != nil {
		return nil, err
	}
	return s.threads.ListByProject(ctx, projectID, filter)
}

// CreateThread 创建线程
func (s *Service) CreateThread(ctx context.Context, callerID string, thread *entity.Thread) (err error) {
	defer func() { recordOp("thread", "create", err) }()

	if err = s.verifyAccess(ctx, thread.ProjectID, callerID); err != nil {
		return err
	}
	if err = s.threads.Create(ctx, thread); err != nil {
		logger.Error(ctx, "failed to create thread", err, "project_id", thread.ProjectID)
		return err
	}
	return nil
}

// UpdateThread 合并更新线程
func (s *Service) UpdateThread(ctx context.Context, callerID, id string, patch *ThreadPatch) (thread *entity.Thread, err error) {
	defer func() { recordOp("thread", "update", err) }()

	thread, err = s.threads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, apperrors.ErrThreadNotFound
	}

	if err = s.verifyAccess(ctx, thread.ProjectID, callerID); err != nil {
		return nil, err
	}

	patch.Apply(thread)

	if err = s.threads.Update(ctx, thread); err != nil {
		logger.Error(ctx, "failed to update thread", err, "thread_id", id)
		return nil, err
	}
	return thread, nil
}

// DeleteThread 删除线程
// 先将引用该线程的线索解除关联，再删除线程本身，两步在同一事务内完成
func (s *Service) DeleteThread(ctx context.Context, callerID, id string) (err error) {
	defer func() { recordOp("thread", "delete", err) }()

	thread, err := s.threads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if thread == nil {
		return apperrors.ErrThreadNotFound
	}

	if err = s.verifyAccess(ctx, thread.ProjectID, callerID); err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.clues.DetachThread(txCtx, id); err != nil {
			return err
		}
		return s.threads.Delete(txCtx, id)
	})
	if err != nil {
		logger.Error(ctx, "failed to delete thread", err, "thread_id", id)
	}
	return err
}
