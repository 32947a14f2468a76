package blueprint

import (
	"context"
	"time"

	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/pkg/metrics"
)

// Stats 蓝图统计
type Stats struct {
	ThreadsTotal       int `json:"threads_total"`
	ThreadsRevealed    int `json:"threads_revealed"`
	CluesTotal         int `json:"clues_total"`
	CluesPayoff        int `json:"clues_payoff"`
	HubsTotal          int `json:"hubs_total"`
	MilestonesTotal    int `json:"milestones_total"`
	MilestonesAchieved int `json:"milestones_achieved"`
}

// Overview 项目结构蓝图总览
type Overview struct {
	ProjectID  string              `json:"project_id"`
	Threads    []*entity.Thread    `json:"threads"`
	Clues      []*entity.Clue      `json:"clues"`
	Hubs       []*entity.Hub       `json:"hubs"`
	Milestones []*entity.Milestone `json:"milestones"`
	Stats      Stats               `json:"stats"`
}

// GetOverview 获取项目完整结构蓝图
// 四次读取相互独立，不包事务；并发写入下总览是尽力而为的快照
func (s *Service) GetOverview(ctx context.Context, callerID, projectID string) (*Overview, error) {
	start := time.Now()

	if err := s.verifyAccess(ctx, projectID, callerID); err != nil {
		metrics.OverviewDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}

	threads, err := s.threads.ListByProject(ctx, projectID, nil)
	if err != nil {
		metrics.OverviewDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}
	clues, err := s.clues.ListByProject(ctx, projectID, nil)
	if err != nil {
		metrics.OverviewDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}
	hubs, err := s.hubs.ListByProject(ctx, projectID)
	if err != nil {
		metrics.OverviewDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}
	milestones, err := s.milestones.ListByProject(ctx, projectID, nil)
	if err != nil {
		metrics.OverviewDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, err
	}

	overview := &Overview{
		ProjectID:  projectID,
		Threads:    threads,
		Clues:      clues,
		Hubs:       hubs,
		Milestones: milestones,
		Stats:      deriveStats(threads, clues, hubs, milestones),
	}

	metrics.OverviewDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	return overview, nil
}

// deriveStats 由四个实体列表推导统计
func deriveStats(threads []*entity.Thread, clues []*entity.Clue, hubs []*entity.Hub, milestones []*entity.Milestone) Stats {
	stats := Stats{
		ThreadsTotal:    len(threads),
		CluesTotal:      len(clues),
		HubsTotal:       len(hubs),
		MilestonesTotal: len(milestones),
	}
	for _, t := range threads {
		if t.Status == entity.ThreadStatusRevealed {
			stats.ThreadsRevealed++
		}
	}
	for _, c := range clues {
		if c.Status == entity.ClueStatusPayoff {
			stats.CluesPayoff++
		}
	}
	for _, m := range milestones {
		if m.Status == entity.MilestoneStatusAchieved {
			stats.MilestonesAchieved++
		}
	}
	return stats
}
