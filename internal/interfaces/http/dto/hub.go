package dto

import (
	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/domain/entity"
)

// CreateHubRequest 创建枢纽请求
type CreateHubRequest struct {
	ProjectID            string                 `json:"project_id" binding:"required"`
	HubID                string                 `json:"hub_id" binding:"required"`
	Name                 string                 `json:"name" binding:"required,max=200"`
	Location             *string                `json:"location,omitempty"`
	Frequency            *string                `json:"frequency,omitempty"`
	ResidentCharacterIDs []string               `json:"resident_character_ids,omitempty"`
	Functions            []string               `json:"functions,omitempty"`
	TradingRules         *string                `json:"trading_rules,omitempty"`
	Taboos               *string                `json:"taboos,omitempty"`
	Appearances          []entity.HubAppearance `json:"appearances,omitempty"`
	Notes                *string                `json:"notes,omitempty"`
}

// ToEntity 构造枢纽实体，未提供的字段保持默认值
func (r *CreateHubRequest) ToEntity() *entity.Hub {
	h := entity.NewHub(r.ProjectID, r.HubID, r.Name)
	if r.Location != nil {
		h.Location = *r.Location
	}
	if r.Frequency != nil {
		h.Frequency = entity.HubFrequency(*r.Frequency)
	}
	if r.ResidentCharacterIDs != nil {
		h.ResidentCharacterIDs = r.ResidentCharacterIDs
	}
	if r.Functions != nil {
		h.Functions = r.Functions
	}
	if r.TradingRules != nil {
		h.TradingRules = *r.TradingRules
	}
	if r.Taboos != nil {
		h.Taboos = *r.Taboos
	}
	if r.Appearances != nil {
		h.Appearances = r.Appearances
	}
	if r.Notes != nil {
		h.Notes = *r.Notes
	}
	return h
}

// UpdateHubRequest 合并更新枢纽请求，仅提交的字段生效
type UpdateHubRequest struct {
	HubID                *string                 `json:"hub_id,omitempty"`
	Name                 *string                 `json:"name,omitempty"`
	Location             *string                 `json:"location,omitempty"`
	Frequency            *string                 `json:"frequency,omitempty"`
	ResidentCharacterIDs *[]string               `json:"resident_character_ids,omitempty"`
	Functions            *[]string               `json:"functions,omitempty"`
	TradingRules         *string                 `json:"trading_rules,omitempty"`
	Taboos               *string                 `json:"taboos,omitempty"`
	Appearances          *[]entity.HubAppearance `json:"appearances,omitempty"`
	Notes                *string                 `json:"notes,omitempty"`
}

// ToPatch 转为应用层补丁
func (r *UpdateHubRequest) ToPatch() *blueprint.HubPatch {
	p := &blueprint.HubPatch{
		HubID:                r.HubID,
		Name:                 r.Name,
		Location:             r.Location,
		ResidentCharacterIDs: r.ResidentCharacterIDs,
		Functions:            r.Functions,
		TradingRules:         r.TradingRules,
		Taboos:               r.Taboos,
		Appearances:          r.Appearances,
		Notes:                r.Notes,
	}
	if r.Frequency != nil {
		freq := entity.HubFrequency(*r.Frequency)
		p.Frequency = &freq
	}
	return p
}
