package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClueStatus 线索状态
type ClueStatus string

const (
	ClueStatusSeed       ClueStatus = "seed"
	ClueStatusVerified   ClueStatus = "verified"
	ClueStatusPayoff     ClueStatus = "payoff"
	ClueStatusRedHerring ClueStatus = "red_herring"
)

// LifecyclePhase 生命周期阶段记录
type LifecyclePhase struct {
	Chapter int    `json:"chapter"`
	Note    string `json:"note,omitempty"`
}

// ClueLifecycle 线索生命周期：种下 -> 验证 -> 回收
type ClueLifecycle struct {
	Seed   *LifecyclePhase `json:"seed,omitempty"`
	Verify *LifecyclePhase `json:"verify,omitempty"`
	Payoff *LifecyclePhase `json:"payoff,omitempty"`
}

// Clue 线索账本实体 - 可追踪线索
// ThreadID 可空，所属线程删除后被置空而非级联删除
type Clue struct {
	ID                  string         `json:"id"`
	ProjectID           string         `json:"project_id"`
	ThreadID            *string        `json:"thread_id"`
	ClueID              string         `json:"clue_id"` // 显示用编号如 C01
	Title               string         `json:"title"`
	Description         string         `json:"description,omitempty"`
	Carrier             string         `json:"carrier,omitempty"` // 载体：录音/名单/监控帧/账本/残片/证词
	Status              ClueStatus     `json:"status"`
	Lifecycle           *ClueLifecycle `json:"lifecycle"`
	IsRedHerring        bool           `json:"is_red_herring"`
	RelatedCharacterIDs []string       `json:"related_character_ids"`
	Notes               string         `json:"notes,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// TableName 指定表名
func (Clue) TableName() string {
	return "structure_clues"
}

// NewClue 创建新线索，未指定的字段取默认值
func NewClue(projectID, clueID, title string) *Clue {
	now := time.Now()
	return &Clue{
		ID:                  uuid.NewString(),
		ProjectID:           projectID,
		ClueID:              clueID,
		Title:               title,
		Status:              ClueStatusSeed,
		Lifecycle:           &ClueLifecycle{},
		IsRedHerring:        false,
		RelatedCharacterIDs: []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// DetachThread 解除与线程的关联
func (c *Clue) DetachThread() {
	c.ThreadID = nil
	c.UpdatedAt = time.Now()
}

// Touch 更新修改时间
func (c *Clue) Touch() {
	c.UpdatedAt = time.Now()
}
