package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewThreadDefaults(t *testing.T) {
	th := NewThread("p1", "T01", "主角身世之谜", "主角的生父究竟是谁")

	assert.NotEmpty(t, th.ID)
	assert.Equal(t, ThreadStatusPending, th.Status)
	assert.Equal(t, DefaultThreadColor, th.Color)
	assert.NotNil(t, th.RevealSchedule)
	assert.Empty(t, th.RevealSchedule)
	assert.NotNil(t, th.RelatedCharacterIDs)
	assert.False(t, th.IsRevealed())

	th.Status = ThreadStatusRevealed
	assert.True(t, th.IsRevealed())
}

func TestNewClueDefaults(t *testing.T) {
	c := NewClue("p1", "C01", "烧焦的名单")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, ClueStatusSeed, c.Status)
	assert.False(t, c.IsRedHerring)
	assert.Nil(t, c.ThreadID)
	assert.NotNil(t, c.Lifecycle)
	assert.NotNil(t, c.RelatedCharacterIDs)
}

func TestClueDetachThread(t *testing.T) {
	c := NewClue("p1", "C01", "烧焦的名单")
	threadID := "t-123"
	c.ThreadID = &threadID

	c.DetachThread()
	assert.Nil(t, c.ThreadID)
}

func TestNewHubDefaults(t *testing.T) {
	h := NewHub("p1", "H01", "黑市茶馆")

	assert.NotEmpty(t, h.ID)
	assert.Equal(t, HubFrequencyEvery5Chapters, h.Frequency)
	assert.NotNil(t, h.ResidentCharacterIDs)
	assert.NotNil(t, h.Functions)
	assert.NotNil(t, h.Appearances)
}
