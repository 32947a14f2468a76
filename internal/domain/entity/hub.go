package entity

import (
	"time"

	"github.com/google/uuid"
)

// HubFrequency 枢纽出场频率
type HubFrequency string

const (
	HubFrequencyEvery3Chapters HubFrequency = "every_3_chapters"
	HubFrequencyEvery5Chapters HubFrequency = "every_5_chapters"
	HubFrequencyPerVolume      HubFrequency = "per_volume"
	HubFrequencyAsNeeded       HubFrequency = "as_needed"
)

// HubAppearance 枢纽出场记录
type HubAppearance struct {
	Volume  int    `json:"volume"`
	Chapter int    `json:"chapter"`
	Summary string `json:"summary"`
}

// Hub 枢纽场景实体 - 固定频率出现的信息交换场景
type Hub struct {
	ID                   string          `json:"id"`
	ProjectID            string          `json:"project_id"`
	HubID                string          `json:"hub_id"` // 显示用编号如 H01
	Name                 string          `json:"name"`
	Location             string          `json:"location,omitempty"`
	Frequency            HubFrequency    `json:"frequency"`
	ResidentCharacterIDs []string        `json:"resident_character_ids"`
	Functions            []string        `json:"functions"` // 如：信息对账/定价交易/误导施放/关系升级
	TradingRules         string          `json:"trading_rules,omitempty"`
	Taboos               string          `json:"taboos,omitempty"`
	Appearances          []HubAppearance `json:"appearances"`
	Notes                string          `json:"notes,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TableName 指定表名
func (Hub) TableName() string {
	return "structure_hubs"
}

// NewHub 创建新枢纽，未指定的字段取默认值
func NewHub(projectID, hubID, name string) *Hub {
	now := time.Now()
	return &Hub{
		ID:                   uuid.NewString(),
		ProjectID:            projectID,
		HubID:                hubID,
		Name:                 name,
		Frequency:            HubFrequencyEvery5Chapters,
		ResidentCharacterIDs: []string{},
		Functions:            []string{},
		Appearances:          []HubAppearance{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Touch 更新修改时间
func (h *Hub) Touch() {
	h.UpdatedAt = time.Now()
}
