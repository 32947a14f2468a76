package dto

import (
	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/domain/entity"
)

// CreateClueRequest 创建线索请求
type CreateClueRequest struct {
	ProjectID           string                `json:"project_id" binding:"required"`
	ClueID              string                `json:"clue_id" binding:"required"`
	Title               string                `json:"title" binding:"required,max=200"`
	ThreadID            *string               `json:"thread_id,omitempty"`
	Description         *string               `json:"description,omitempty"`
	Carrier             *string               `json:"carrier,omitempty"`
	Status              *string               `json:"status,omitempty"`
	Lifecycle           *entity.ClueLifecycle `json:"lifecycle,omitempty"`
	IsRedHerring        *bool                 `json:"is_red_herring,omitempty"`
	RelatedCharacterIDs []string              `json:"related_character_ids,omitempty"`
	Notes               *string               `json:"notes,omitempty"`
}

// ToEntity 构造线索实体，未提供的字段保持默认值
func (r *CreateClueRequest) ToEntity() *entity.Clue {
	c := entity.NewClue(r.ProjectID, r.ClueID, r.Title)
	c.ThreadID = r.ThreadID
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.Carrier != nil {
		c.Carrier = *r.Carrier
	}
	if r.Status != nil {
		c.Status = entity.ClueStatus(*r.Status)
	}
	if r.Lifecycle != nil {
		c.Lifecycle = r.Lifecycle
	}
	if r.IsRedHerring != nil {
		c.IsRedHerring = *r.IsRedHerring
	}
	if r.RelatedCharacterIDs != nil {
		c.RelatedCharacterIDs = r.RelatedCharacterIDs
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
	return c
}

// UpdateClueRequest 合并更新线索请求，仅提交的字段生效
// thread_id 显式传 null 表示解除与线程的关联
type UpdateClueRequest struct {
	ThreadID            Nullable[string]      `json:"thread_id"`
	ClueID              *string               `json:"clue_id,omitempty"`
	Title               *string               `json:"title,omitempty"`
	Description         *string               `json:"description,omitempty"`
	Carrier             *string               `json:"carrier,omitempty"`
	Status              *string               `json:"status,omitempty"`
	Lifecycle           *entity.ClueLifecycle `json:"lifecycle,omitempty"`
	IsRedHerring        *bool                 `json:"is_red_herring,omitempty"`
	RelatedCharacterIDs *[]string             `json:"related_character_ids,omitempty"`
	Notes               *string               `json:"notes,omitempty"`
}

// ToPatch 转为应用层补丁
func (r *UpdateClueRequest) ToPatch() *blueprint.CluePatch {
	p := &blueprint.CluePatch{
		ThreadID:            r.ThreadID.Ptr(),
		ClueID:              r.ClueID,
		Title:               r.Title,
		Description:         r.Description,
		Carrier:             r.Carrier,
		Lifecycle:           r.Lifecycle,
		IsRedHerring:        r.IsRedHerring,
		RelatedCharacterIDs: r.RelatedCharacterIDs,
		Notes:               r.Notes,
	}
	if r.Status != nil {
		status := entity.ClueStatus(*r.Status)
		p.Status = &status
	}
	return p
}
