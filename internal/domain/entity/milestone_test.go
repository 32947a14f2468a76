package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMilestoneDefaults(t *testing.T) {
	m := NewMilestone("p1", "M01", "第一次突破")

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "p1", m.ProjectID)
	assert.Equal(t, "M01", m.MilestoneID)
	assert.Equal(t, MilestoneStatusPending, m.Status)
	assert.NotNil(t, m.Conditions)
	assert.Empty(t, m.Conditions)
	assert.NotNil(t, m.RelatedThreadIDs)
	assert.Nil(t, m.TargetChapter)
	assert.Nil(t, m.AchievedAt)
}

func TestMilestoneTransitionStatus(t *testing.T) {
	t.Run("进入 achieved 时打上达成时间", func(t *testing.T) {
		m := NewMilestone("p1", "M01", "突破")
		m.TransitionStatus(MilestoneStatusAchieved)

		assert.Equal(t, MilestoneStatusAchieved, m.Status)
		require.NotNil(t, m.AchievedAt)
		assert.True(t, m.IsAchieved())
	})

	t.Run("重复进入 achieved 不刷新达成时间", func(t *testing.T) {
		m := NewMilestone("p1", "M01", "突破")
		m.TransitionStatus(MilestoneStatusAchieved)
		first := *m.AchievedAt

		m.TransitionStatus(MilestoneStatusAchieved)
		require.NotNil(t, m.AchievedAt)
		assert.Equal(t, first, *m.AchievedAt)
	})

	t.Run("离开 achieved 时清空达成时间", func(t *testing.T) {
		m := NewMilestone("p1", "M01", "突破")
		m.TransitionStatus(MilestoneStatusAchieved)
		require.NotNil(t, m.AchievedAt)

		m.TransitionStatus(MilestoneStatusInProgress)
		assert.Equal(t, MilestoneStatusInProgress, m.Status)
		assert.Nil(t, m.AchievedAt)
		assert.False(t, m.IsAchieved())
	})

	t.Run("pending 之间切换不产生达成时间", func(t *testing.T) {
		m := NewMilestone("p1", "M01", "突破")
		m.TransitionStatus(MilestoneStatusInProgress)
		assert.Nil(t, m.AchievedAt)
	})
}
