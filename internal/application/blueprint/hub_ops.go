package blueprint

import (
	"context"

	"z-novel-blueprint-api/internal/domain/entity"
	apperrors "z-novel-blueprint-api/pkg/errors"
	"z-novel-blueprint-api/pkg/logger"
)

// HubPatch 枢纽合并更新
type HubPatch struct {
	HubID                *string
	Name                 *string
	Location             *string
	Frequency            *entity.HubFrequency
	ResidentCharacterIDs *[]string
	Functions            *[]string
	TradingRules         *string
	Taboos               *string
	Appearances          *[]entity.HubAppearance
	Notes                *string
}

// Apply 将补丁应用到枢纽实体
func (p *HubPatch) Apply(h *entity.Hub) {
	if p.HubID != nil {
		h.HubID = *p.HubID
	}
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Location != nil {
		h.Location = *p.Location
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.ResidentCharacterIDs != nil {
		h.ResidentCharacterIDs = *p.ResidentCharacterIDs
	}
	if p.Functions != nil {
		h.Functions = *p.Functions
	}
	if p.TradingRules != nil {
		h.TradingRules = *p.TradingRules
	}
	if p.Taboos != nil {
		h.Taboos = *p.Taboos
	}
	if p.Appearances != nil {
		h.Appearances = *p.Appearances
	}
	if p.Notes != nil {
		h.Notes = *p.Notes
	}
	h.Touch()
}

// ListHubs 获取项目下枢纽列表
func (s *Service) ListHubs(ctx context.Context, callerID, projectID string) ([]*entity.Hub, error) {
	if err := s.verifyAccess(ctx, projectID, callerID); err != nil {
		return nil, err
	}
	return s.hubs.ListByProject(ctx, projectID)
}

// CreateHub 创建枢纽
func (s *Service) CreateHub(ctx context.Context, callerID string, hub *entity.Hub) (err error) {
	defer func() { recordOp("hub", "create", err) }()

	if err = s.verifyAccess(ctx, hub.ProjectID, callerID); err != nil {
		return err
	}
	if err = s.hubs.Create(ctx, hub); err != nil {
		logger.Error(ctx, "failed to create hub", err, "project_id", hub.ProjectID)
		return err
	}
	return nil
}

// UpdateHub 合并更新枢纽
func (s *Service) UpdateHub(ctx context.Context, callerID, id string, patch *HubPatch) (hub *entity.Hub, err error) {
	defer func() { recordOp("hub", "update", err) }()

	hub, err = s.hubs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hub == nil {
		return nil, apperrors.ErrHubNotFound
	}

	if err = s.verifyAccess(ctx, hub.ProjectID, callerID); err != nil {
		return nil, err
	}

	patch.Apply(hub)

	if err = s.hubs.Update(ctx, hub); err != nil {
		logger.Error(ctx, "failed to update hub", err, "hub_id", id)
		return nil, err
	}
	return hub, nil
}

// DeleteHub 删除枢纽
func (s *Service) DeleteHub(ctx context.Context, callerID, id string) (err error) {
	defer func() { recordOp("hub", "delete", err) }()

	hub, err := s.hubs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if hub == nil {
		return apperrors.ErrHubNotFound
	}

	if err = s.verifyAccess(ctx, hub.ProjectID, callerID); err != nil {
		return err
	}

	if err = s.hubs.Delete(ctx, id); err != nil {
		logger.Error(ctx, "failed to delete hub", err, "hub_id", id)
		return err
	}
	return nil
}
