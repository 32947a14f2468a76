package dto

import (
	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/domain/entity"
)

// CreateThreadRequest 创建线程请求
type CreateThreadRequest struct {
	ProjectID           string               `json:"project_id" binding:"required"`
	ThreadID            string               `json:"thread_id" binding:"required"`
	Title               string               `json:"title" binding:"required,max=200"`
	CoreQuestion        string               `json:"core_question" binding:"required"`
	FinalAnswer         *string              `json:"final_answer,omitempty"`
	Status              *string              `json:"status,omitempty"`
	RevealSchedule      []entity.RevealPoint `json:"reveal_schedule,omitempty"`
	RelatedCharacterIDs []string             `json:"related_character_ids,omitempty"`
	Notes               *string              `json:"notes,omitempty"`
	Color               *string              `json:"color,omitempty"`
}

// ToEntity 构造线程实体，未提供的字段保持默认值
func (r *CreateThreadRequest) ToEntity() *entity.Thread {
	t := entity.NewThread(r.ProjectID, r.ThreadID, r.Title, r.CoreQuestion)
	if r.FinalAnswer != nil {
		t.FinalAnswer = *r.FinalAnswer
	}
	if r.Status != nil {
		t.Status = entity.ThreadStatus(*r.Status)
	}
	if r.RevealSchedule != nil {
		t.RevealSchedule = r.RevealSchedule
	}
	if r.RelatedCharacterIDs != nil {
		t.RelatedCharacterIDs = r.RelatedCharacterIDs
	}
	if r.Notes != nil {
		t.Notes = *r.Notes
	}
	if r.Color != nil {
		t.Color = *r.Color
	}
	return t
}

// UpdateThreadRequest 合并更新线程请求，仅提交的字段生效
type UpdateThreadRequest struct {
	ThreadID            *string               `json:"thread_id,omitempty"`
	Title               *string               `json:"title,omitempty"`
	CoreQuestion        *string               `json:"core_question,omitempty"`
	FinalAnswer         *string               `json:"final_answer,omitempty"`
	Status              *string               `json:"status,omitempty"`
	RevealSchedule      *[]entity.RevealPoint `json:"reveal_schedule,omitempty"`
	RelatedCharacterIDs *[]string             `json:"related_character_ids,omitempty"`
	Notes               *string               `json:"notes,omitempty"`
	Color               *string               `json:"color,omitempty"`
}

// ToPatch 转为应用层补丁
func (r *UpdateThreadRequest) ToPatch() *blueprint.ThreadPatch {
	p := &blueprint.ThreadPatch{
		ThreadID:            r.ThreadID,
		Title:               r.Title,
		CoreQuestion:        r.CoreQuestion,
		FinalAnswer:         r.FinalAnswer,
		RevealSchedule:      r.RevealSchedule,
		RelatedCharacterIDs: r.RelatedCharacterIDs,
		Notes:               r.Notes,
		Color:               r.Color,
	}
	if r.Status != nil {
		status := entity.ThreadStatus(*r.Status)
		p.Status = &status
	}
	return p
}
