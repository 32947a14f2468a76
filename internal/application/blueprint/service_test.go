package blueprint

import (
	"context"
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
	apperrors "z-novel-blueprint-api/pkg/errors"
	"z-novel-blueprint-api/pkg/metrics"
)

// ===== 内存仓储实现 =====

type fakeThreadRepo struct {
	items map[string]*entity.Thread
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{items: make(map[string]*entity.Thread)}
}

func (r *fakeThreadRepo) Create(_ context.Context, t *entity.Thread) error {
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeThreadRepo) GetByID(_ context.Context, id string) (*entity.Thread, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeThreadRepo) Update(_ context.Context, t *entity.Thread) error {
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *fakeThreadRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeThreadRepo) ListByProject(_ context.Context, projectID string, filter *repository.ThreadFilter) ([]*entity.Thread, error) {
	var out []*entity.Thread
	for _, t := range r.items {
		if t.ProjectID != projectID {
			continue
		}
		if filter != nil && filter.Status != "" && t.Status != filter.Status {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type fakeClueRepo struct {
	items    map[string]*entity.Clue
	detached []string // 记录 DetachThread 调用的线程 ID
}

func newFakeClueRepo() *fakeClueRepo {
	return &fakeClueRepo{items: make(map[string]*entity.Clue)}
}

func (r *fakeClueRepo) Create(_ context.Context, c *entity.Clue) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeClueRepo) GetByID(_ context.Context, id string) (*entity.Clue, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClueRepo) Update(_ context.Context, c *entity.Clue) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeClueRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeClueRepo) ListByProject(_ context.Context, projectID string, filter *repository.ClueFilter) ([]*entity.Clue, error) {
	var out []*entity.Clue
	for _, c := range r.items {
		if c.ProjectID != projectID {
			continue
		}
		if filter != nil {
			if filter.Status != "" && c.Status != filter.Status {
				continue
			}
			if filter.ThreadID != "" && (c.ThreadID == nil || *c.ThreadID != filter.ThreadID) {
				continue
			}
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeClueRepo) DetachThread(_ context.Context, threadID string) error {
	r.detached = append(r.detached, threadID)
	for _, c := range r.items {
		if c.ThreadID != nil && *c.ThreadID == threadID {
			c.ThreadID = nil
		}
	}
	return nil
}

type fakeHubRepo struct {
	items map[string]*entity.Hub
}

func newFakeHubRepo() *fakeHubRepo {
	return &fakeHubRepo{items: make(map[string]*entity.Hub)}
}

func (r *fakeHubRepo) Create(_ context.Context, h *entity.Hub) error {
	cp := *h
	r.items[h.ID] = &cp
	return nil
}

func (r *fakeHubRepo) GetByID(_ context.Context, id string) (*entity.Hub, error) {
	h, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (r *fakeHubRepo) Update(_ context.Context, h *entity.Hub) error {
	cp := *h
	r.items[h.ID] = &cp
	return nil
}

func (r *fakeHubRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeHubRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Hub, error) {
	var out []*entity.Hub
	for _, h := range r.items {
		if h.ProjectID == projectID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMilestoneRepo struct {
	items map[string]*entity.Milestone
}

func newFakeMilestoneRepo() *fakeMilestoneRepo {
	return &fakeMilestoneRepo{items: make(map[string]*entity.Milestone)}
}

func (r *fakeMilestoneRepo) Create(_ context.Context, m *entity.Milestone) error {
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeMilestoneRepo) GetByID(_ context.Context, id string) (*entity.Milestone, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMilestoneRepo) Update(_ context.Context, m *entity.Milestone) error {
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeMilestoneRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeMilestoneRepo) ListByProject(_ context.Context, projectID string, filter *repository.MilestoneFilter) ([]*entity.Milestone, error) {
	var out []*entity.Milestone
	for _, m := range r.items {
		if m.ProjectID != projectID {
			continue
		}
		if filter != nil && filter.Status != "" && m.Status != filter.Status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

// fakeGate 记录校验调用，按项目返回预设结果
type fakeGate struct {
	denied   map[string]error
	verified []string
}

func newFakeGate() *fakeGate {
	return &fakeGate{denied: make(map[string]error)}
}

func (g *fakeGate) VerifyAccess(_ context.Context, projectID, _ string) error {
	g.verified = append(g.verified, projectID)
	if err, ok := g.denied[projectID]; ok {
		return err
	}
	return nil
}

// fakeTx 直接执行回调，并记录事务次数
type fakeTx struct {
	calls int
}

func (t *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fixture struct {
	svc        *Service
	threads    *fakeThreadRepo
	clues      *fakeClueRepo
	hubs       *fakeHubRepo
	milestones *fakeMilestoneRepo
	gate       *fakeGate
	tx         *fakeTx
}

func newFixture() *fixture {
	f := &fixture{
		threads:    newFakeThreadRepo(),
		clues:      newFakeClueRepo(),
		hubs:       newFakeHubRepo(),
		milestones: newFakeMilestoneRepo(),
		gate:       newFakeGate(),
		tx:         &fakeTx{},
	}
	f.svc = NewService(f.threads, f.clues, f.hubs, f.milestones, f.gate, f.tx)
	return f
}

func strPtr(s string) *string { return &s }

// ===== 线程 =====

func TestCreateThread(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	thread := entity.NewThread("p1", "T01", "身世之谜", "生父是谁")
	err := f.svc.CreateThread(ctx, "u1", thread)
	require.NoError(t, err)

	stored, err := f.threads.GetByID(ctx, thread.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.ThreadStatusPending, stored.Status)
	assert.Equal(t, []string{"p1"}, f.gate.verified)
}

func TestCreateThreadAccessDenied(t *testing.T) {
	f := newFixture()
	f.gate.denied["p1"] = apperrors.ErrPermissionDenied

	thread := entity.NewThread("p1", "T01", "身世之谜", "生父是谁")
	err := f.svc.CreateThread(context.Background(), "u2", thread)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	// 校验失败时不得写入
	stored, _ := f.threads.GetByID(context.Background(), thread.ID)
	assert.Nil(t, stored)
}

func TestUpdateThreadMergePatch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	thread := entity.NewThread("p1", "T01", "身世之谜", "生父是谁")
	thread.Notes = "旧备注"
	require.NoError(t, f.svc.CreateThread(ctx, "u1", thread))

	t.Run("仅提交的字段生效", func(t *testing.T) {
		status := entity.ThreadStatusRevealed
		updated, err := f.svc.UpdateThread(ctx, "u1", thread.ID, &ThreadPatch{
			Status: &status,
			Title:  strPtr("新标题"),
		})
		require.NoError(t, err)
		assert.Equal(t, "新标题", updated.Title)
		assert.Equal(t, entity.ThreadStatusRevealed, updated.Status)
		// 未提交字段保持不变
		assert.Equal(t, "生父是谁", updated.CoreQuestion)
		assert.Equal(t, "旧备注", updated.Notes)
	})

	t.Run("显式提交空值同样覆盖", func(t *testing.T) {
		updated, err := f.svc.UpdateThread(ctx, "u1", thread.ID, &ThreadPatch{
			Notes: strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "", updated.Notes)
	})
}

func TestUpdateThreadNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateThread(context.Background(), "u1", "missing", &ThreadPatch{})
	assert.ErrorIs(t, err, apperrors.ErrThreadNotFound)
	// 不存在的资源不应触发访问校验
	assert.Empty(t, f.gate.verified)
}

func TestDeleteThreadDetachesClues(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	thread := entity.NewThread("p1", "T01", "身世之谜", "生父是谁")
	require.NoError(t, f.svc.CreateThread(ctx, "u1", thread))

	attached := entity.NewClue("p1", "C01", "烧焦的名单")
	attached.ThreadID = &thread.ID
	require.NoError(t, f.svc.CreateClue(ctx, "u1", attached))

	other := entity.NewClue("p1", "C02", "无关线索")
	require.NoError(t, f.svc.CreateClue(ctx, "u1", other))

	require.NoError(t, f.svc.DeleteThread(ctx, "u1", thread.ID))

	// 线程已删除
	stored, _ := f.threads.GetByID(ctx, thread.ID)
	assert.Nil(t, stored)

	// 关联线索被保留但解除关联
	c, err := f.clues.GetByID(ctx, attached.ID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Nil(t, c.ThreadID)

	// 解除关联与删除在同一事务中
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{thread.ID}, f.clues.detached)
}

func TestDeleteThreadNotFound(t *testing.T) {
	f := newFixture()

	err := f.svc.DeleteThread(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, apperrors.ErrThreadNotFound)
	assert.Zero(t, f.tx.calls)
}

func TestListThreadsWithFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	revealed := entity.NewThread("p1", "T01", "已揭示", "q")
	revealed.Status = entity.ThreadStatusRevealed
	require.NoError(t, f.svc.CreateThread(ctx, "u1", revealed))
	require.NoError(t, f.svc.CreateThread(ctx, "u1", entity.NewThread("p1", "T02", "进行中", "q")))
	require.NoError(t, f.svc.CreateThread(ctx, "u1", entity.NewThread("p2", "T01", "别的项目", "q")))

	all, err := f.svc.ListThreads(ctx, "u1", "p1", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := f.svc.ListThreads(ctx, "u1", "p1", &repository.ThreadFilter{Status: entity.ThreadStatusRevealed})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "T01", filtered[0].ThreadID)
}

// ===== 线索 =====

func TestUpdateClueExplicitDetach(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	clue := entity.NewClue("p1", "C01", "烧焦的名单")
	threadID := "t-123"
	clue.ThreadID = &threadID
	require.NoError(t, f.svc.CreateClue(ctx, "u1", clue))

	t.Run("外层 nil 表示不修改", func(t *testing.T) {
		updated, err := f.svc.UpdateClue(ctx, "u1", clue.ID, &CluePatch{
			Title: strPtr("改名"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.ThreadID)
		assert.Equal(t, "t-123", *updated.ThreadID)
	})

	t.Run("内层 nil 表示显式解除关联", func(t *testing.T) {
		var null *string
		updated, err := f.svc.UpdateClue(ctx, "u1", clue.ID, &CluePatch{
			ThreadID: &null,
		})
		require.NoError(t, err)
		assert.Nil(t, updated.ThreadID)
	})

	t.Run("重新挂到新线程", func(t *testing.T) {
		next := strPtr("t-456")
		updated, err := f.svc.UpdateClue(ctx, "u1", clue.ID, &CluePatch{
			ThreadID: &next,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.ThreadID)
		assert.Equal(t, "t-456", *updated.ThreadID)
	})
}

func TestUpdateClueNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateClue(context.Background(), "u1", "missing", &CluePatch{})
	assert.ErrorIs(t, err, apperrors.ErrClueNotFound)
}

func TestListCluesByThread(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	threadID := "t-1"
	c1 := entity.NewClue("p1", "C01", "线索一")
	c1.ThreadID = &threadID
	require.NoError(t, f.svc.CreateClue(ctx, "u1", c1))
	require.NoError(t, f.svc.CreateClue(ctx, "u1", entity.NewClue("p1", "C02", "游离线索")))

	filtered, err := f.svc.ListClues(ctx, "u1", "p1", &repository.ClueFilter{ThreadID: "t-1"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "C01", filtered[0].ClueID)
}

// ===== 里程碑 =====

func TestUpdateMilestoneStatusStampsAchievedAt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m := entity.NewMilestone("p1", "M01", "突破")
	require.NoError(t, f.svc.CreateMilestone(ctx, "u1", m))

	achieved := entity.MilestoneStatusAchieved
	updated, err := f.svc.UpdateMilestone(ctx, "u1", m.ID, &MilestonePatch{Status: &achieved})
	require.NoError(t, err)
	require.NotNil(t, updated.AchievedAt)

	pending := entity.MilestoneStatusPending
	updated, err = f.svc.UpdateMilestone(ctx, "u1", m.ID, &MilestonePatch{Status: &pending})
	require.NoError(t, err)
	assert.Nil(t, updated.AchievedAt)
}

func TestUpdateMilestoneClearChapters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	m := entity.NewMilestone("p1", "M01", "突破")
	target := 42
	m.TargetChapter = &target
	require.NoError(t, f.svc.CreateMilestone(ctx, "u1", m))

	var null *int
	updated, err := f.svc.UpdateMilestone(ctx, "u1", m.ID, &MilestonePatch{TargetChapter: &null})
	require.NoError(t, err)
	assert.Nil(t, updated.TargetChapter)
}

// ===== 总览 =====

func TestGetOverviewStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	revealed := entity.NewThread("p1", "T01", "已揭示", "q")
	revealed.Status = entity.ThreadStatusRevealed
	require.NoError(t, f.svc.CreateThread(ctx, "u1", revealed))
	require.NoError(t, f.svc.CreateThread(ctx, "u1", entity.NewThread("p1", "T02", "进行中", "q")))

	payoff := entity.NewClue("p1", "C01", "已回收")
	payoff.Status = entity.ClueStatusPayoff
	require.NoError(t, f.svc.CreateClue(ctx, "u1", payoff))
	require.NoError(t, f.svc.CreateClue(ctx, "u1", entity.NewClue("p1", "C02", "种下")))
	require.NoError(t, f.svc.CreateClue(ctx, "u1", entity.NewClue("p1", "C03", "种下")))

	require.NoError(t, f.svc.CreateHub(ctx, "u1", entity.NewHub("p1", "H01", "茶馆")))

	achieved := entity.NewMilestone("p1", "M01", "已达成")
	achieved.TransitionStatus(entity.MilestoneStatusAchieved)
	require.NoError(t, f.svc.CreateMilestone(ctx, "u1", achieved))
	require.NoError(t, f.svc.CreateMilestone(ctx, "u1", entity.NewMilestone("p1", "M02", "待达成")))

	overview, err := f.svc.GetOverview(ctx, "u1", "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", overview.ProjectID)
	assert.Equal(t, Stats{
		ThreadsTotal:       2,
		ThreadsRevealed:    1,
		CluesTotal:         3,
		CluesPayoff:        1,
		HubsTotal:          1,
		MilestonesTotal:    2,
		MilestonesAchieved: 1,
	}, overview.Stats)

	assert.Len(t, overview.Threads, overview.Stats.ThreadsTotal)
	assert.Len(t, overview.Clues, overview.Stats.CluesTotal)
	assert.Len(t, overview.Hubs, overview.Stats.HubsTotal)
	assert.Len(t, overview.Milestones, overview.Stats.MilestonesTotal)
}

func TestGetOverviewEmptyProject(t *testing.T) {
	f := newFixture()

	overview, err := f.svc.GetOverview(context.Background(), "u1", "p-empty")
	require.NoError(t, err)
	assert.Equal(t, Stats{}, overview.Stats)
	assert.Empty(t, overview.Threads)
}

func TestGetOverviewAccessDenied(t *testing.T) {
	f := newFixture()
	f.gate.denied["p1"] = apperrors.ErrProjectNotFound

	_, err := f.svc.GetOverview(context.Background(), "u1", "p1")
	assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
}

// ===== 指标 =====

func opCount(kind, op, status string) float64 {
	return testutil.ToFloat64(metrics.BlueprintOpsTotal.WithLabelValues(kind, op, status))
}

func TestUpdateRecordsMetricsOnEveryOutcome(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run("不存在的资源计入失败", func(t *testing.T) {
		before := opCount("thread", "update", "error")
		_, err := f.svc.UpdateThread(ctx, "u1", "missing", &ThreadPatch{})
		require.ErrorIs(t, err, apperrors.ErrThreadNotFound)
		assert.Equal(t, before+1, opCount("thread", "update", "error"))
	})

	t.Run("校验拒绝计入失败", func(t *testing.T) {
		thread := entity.NewThread("p-denied", "T01", "身世之谜", "生父是谁")
		f.threads.items[thread.ID] = thread
		f.gate.denied["p-denied"] = apperrors.ErrPermissionDenied

		before := opCount("thread", "update", "error")
		_, err := f.svc.UpdateThread(ctx, "u2", thread.ID, &ThreadPatch{})
		require.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Equal(t, before+1, opCount("thread", "update", "error"))
	})

	t.Run("成功更新计入成功", func(t *testing.T) {
		thread := entity.NewThread("p1", "T02", "宝藏下落", "藏在哪里")
		require.NoError(t, f.svc.CreateThread(ctx, "u1", thread))

		before := opCount("thread", "update", "ok")
		_, err := f.svc.UpdateThread(ctx, "u1", thread.ID, &ThreadPatch{Title: strPtr("新标题")})
		require.NoError(t, err)
		assert.Equal(t, before+1, opCount("thread", "update", "ok"))
	})
}
