// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ThreadStatus 谜题线程状态
type ThreadStatus string

const (
	ThreadStatusPending    ThreadStatus = "pending"
	ThreadStatusInProgress ThreadStatus = "in_progress"
	ThreadStatusRevealed   ThreadStatus = "revealed"
)

// DefaultThreadColor 线程默认显示颜色
const DefaultThreadColor = "#3B82F6"

// RevealPoint 阶段揭示点
type RevealPoint struct {
	Volume  int    `json:"volume"`
	Chapter int    `json:"chapter"`
	Reveal  string `json:"reveal"`
}

// Thread 谜题线程实体 - 贯穿全书的核心谜题线
// 状态仅作标注用途，不做迁移合法性校验，允许作者随时改回
type Thread struct {
	ID                  string        `json:"id"`
	ProjectID           string        `json:"project_id"`
	ThreadID            string        `json:"thread_id"` // 显示用编号如 T01
	Title               string        `json:"title"`
	CoreQuestion        string        `json:"core_question"`
	FinalAnswer         string        `json:"final_answer,omitempty"`
	Status              ThreadStatus  `json:"status"`
	RevealSchedule      []RevealPoint `json:"reveal_schedule"`
	RelatedCharacterIDs []string      `json:"related_character_ids"`
	Notes               string        `json:"notes,omitempty"`
	Color               string        `json:"color"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// TableName 指定表名
func (Thread) TableName() string {
	return "structure_threads"
}

// NewThread 创建新线程，未指定的字段取默认值
func NewThread(projectID, threadID, title, coreQuestion string) *Thread {
	now := time.Now()
	return &Thread{
		ID:                  uuid.NewString(),
		ProjectID:           projectID,
		ThreadID:            threadID,
		Title:               title,
		CoreQuestion:        coreQuestion,
		Status:              ThreadStatusPending,
		RevealSchedule:      []RevealPoint{},
		RelatedCharacterIDs: []string{},
		Color:               DefaultThreadColor,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// IsRevealed 线程是否已揭示
func (t *Thread) IsRevealed() bool {
	return t.Status == ThreadStatusRevealed
}

// Touch 更新修改时间
func (t *Thread) Touch() {
	t.UpdatedAt = time.Now()
}
