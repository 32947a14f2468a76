package dto

import (
	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/domain/entity"
)

// CreateMilestoneRequest 创建里程碑请求
type CreateMilestoneRequest struct {
	ProjectID        string                      `json:"project_id" binding:"required"`
	MilestoneID      string                      `json:"milestone_id" binding:"required"`
	Title            string                      `json:"title" binding:"required,max=200"`
	Description      *string                     `json:"description,omitempty"`
	Conditions       []entity.MilestoneCondition `json:"conditions,omitempty"`
	Cost             *string                     `json:"cost,omitempty"`
	Aftermath        *string                     `json:"aftermath,omitempty"`
	Status           *string                     `json:"status,omitempty"`
	TargetChapter    *int                        `json:"target_chapter,omitempty"`
	ActualChapter    *int                        `json:"actual_chapter,omitempty"`
	RelatedThreadIDs []string                    `json:"related_thread_ids,omitempty"`
	Notes            *string                     `json:"notes,omitempty"`
}

// ToEntity 构造里程碑实体，未提供的字段保持默认值
// 创建时即为 achieved 状态同样会打上达成时间
func (r *CreateMilestoneRequest) ToEntity() *entity.Milestone {
	m := entity.NewMilestone(r.ProjectID, r.MilestoneID, r.Title)
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Conditions != nil {
		m.Conditions = r.Conditions
	}
	if r.Cost != nil {
		m.Cost = *r.Cost
	}
	if r.Aftermath != nil {
		m.Aftermath = *r.Aftermath
	}
	m.TargetChapter = r.TargetChapter
	m.ActualChapter = r.ActualChapter
	if r.RelatedThreadIDs != nil {
		m.RelatedThreadIDs = r.RelatedThreadIDs
	}
	if r.Notes != nil {
		m.Notes = *r.Notes
	}
	if r.Status != nil {
		m.TransitionStatus(entity.MilestoneStatus(*r.Status))
	}
	return m
}

// UpdateMilestoneRequest 合并更新里程碑请求，仅提交的字段生效
// target_chapter/actual_chapter 显式传 null 表示清空
type UpdateMilestoneRequest struct {
	MilestoneID      *string                      `json:"milestone_id,omitempty"`
	Title            *string                      `json:"title,omitempty"`
	Description      *string                      `json:"description,omitempty"`
	Conditions       *[]entity.MilestoneCondition `json:"conditions,omitempty"`
	Cost             *string                      `json:"cost,omitempty"`
	Aftermath        *string                      `json:"aftermath,omitempty"`
	Status           *string                      `json:"status,omitempty"`
	TargetChapter    Nullable[int]                `json:"target_chapter"`
	ActualChapter    Nullable[int]                `json:"actual_chapter"`
	RelatedThreadIDs *[]string                    `json:"related_thread_ids,omitempty"`
	Notes            *string                      `json:"notes,omitempty"`
}

// ToPatch 转为应用层补丁
func (r *UpdateMilestoneRequest) ToPatch() *blueprint.MilestonePatch {
	p := &blueprint.MilestonePatch{
		MilestoneID:      r.MilestoneID,
		Title:            r.Title,
		Description:      r.Description,
		Conditions:       r.Conditions,
		Cost:             r.Cost,
		Aftermath:        r.Aftermath,
		TargetChapter:    r.TargetChapter.Ptr(),
		ActualChapter:    r.ActualChapter.Ptr(),
		RelatedThreadIDs: r.RelatedThreadIDs,
		Notes:            r.Notes,
	}
	if r.Status != nil {
		status := entity.MilestoneStatus(*r.Status)
		p.Status = &status
	}
	return p
}
