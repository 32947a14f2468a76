package entity

import (
	"time"

	"github.com/google/uuid"
)

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	MilestoneStatusAchieved   MilestoneStatus = "achieved"
)

// MilestoneCondition 达成条件项
type MilestoneCondition struct {
	Item string `json:"item"`
	Met  bool   `json:"met"`
}

// Milestone 进阶里程碑实体 - 成长节点
// 每个里程碑应有代价与后遗症，代价会反向制造新冲突
type Milestone struct {
	ID               string               `json:"id"`
	ProjectID        string               `json:"project_id"`
	MilestoneID      string               `json:"milestone_id"` // 显示用编号如 M01
	Title            string               `json:"title"`
	Description      string               `json:"description,omitempty"`
	Conditions       []MilestoneCondition `json:"conditions"`
	Cost             string               `json:"cost,omitempty"`
	Aftermath        string               `json:"aftermath,omitempty"`
	Status           MilestoneStatus      `json:"status"`
	TargetChapter    *int                 `json:"target_chapter"`
	ActualChapter    *int                 `json:"actual_chapter"`
	RelatedThreadIDs []string             `json:"related_thread_ids"`
	Notes            string               `json:"notes,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	AchievedAt       *time.Time           `json:"achieved_at"`
}

// TableName 指定表名
func (Milestone) TableName() string {
	return "structure_milestones"
}

// NewMilestone 创建新里程碑，未指定的字段取默认值
func NewMilestone(projectID, milestoneID, title string) *Milestone {
	now := time.Now()
	return &Milestone{
		ID:               uuid.NewString(),
		ProjectID:        projectID,
		MilestoneID:      milestoneID,
		Title:            title,
		Conditions:       []MilestoneCondition{},
		Status:           MilestoneStatusPending,
		RelatedThreadIDs: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// TransitionStatus 变更状态并维护达成时间
// 进入 achieved 时打上时间戳，离开 achieved 时清空，允许作者回退纠错
func (m *Milestone) TransitionStatus(next MilestoneStatus) {
	if next == MilestoneStatusAchieved && m.Status != MilestoneStatusAchieved {
		now := time.Now()
		m.AchievedAt = &now
	}
	if next != MilestoneStatusAchieved {
		m.AchievedAt = nil
	}
	m.Status = next
	m.UpdatedAt = time.Now()
}

// IsAchieved 里程碑是否已达成
func (m *Milestone) IsAchieved() bool {
	return m.Status == MilestoneStatusAchieved
}

// Touch 更新修改时间
func (m *Milestone) Touch() {
	m.UpdatedAt = time.Now()
}
