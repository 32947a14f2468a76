package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-novel-blueprint-api/internal/application/blueprint"
	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
	"z-novel-blueprint-api/internal/interfaces/http/middleware"
	apperrors "z-novel-blueprint-api/pkg/errors"
)

// ===== 内存仓储 =====

type memThreadRepo struct{ items map[string]*entity.Thread }

func (r *memThreadRepo) Create(_ context.Context, t *entity.Thread) error {
	r.items[t.ID] = t
	return nil
}

func (r *memThreadRepo) GetByID(_ context.Context, id string) (*entity.Thread, error) {
	return r.items[id], nil
}

func (r *memThreadRepo) Update(_ context.Context, t *entity.Thread) error {
	r.items[t.ID] = t
	return nil
}

func (r *memThreadRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memThreadRepo) ListByProject(_ context.Context, projectID string, _ *repository.ThreadFilter) ([]*entity.Thread, error) {
	var out []*entity.Thread
	for _, t := range r.items {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memClueRepo struct{ items map[string]*entity.Clue }

func (r *memClueRepo) Create(_ context.Context, c *entity.Clue) error {
	r.items[c.ID] = c
	return nil
}

func (r *memClueRepo) GetByID(_ context.Context, id string) (*entity.Clue, error) {
	return r.items[id], nil
}

func (r *memClueRepo) Update(_ context.Context, c *entity.Clue) error {
	r.items[c.ID] = c
	return nil
}

func (r *memClueRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memClueRepo) ListByProject(_ context.Context, projectID string, _ *repository.ClueFilter) ([]*entity.Clue, error) {
	var out []*entity.Clue
	for _, c := range r.items {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClueRepo) DetachThread(_ context.Context, threadID string) error {
	for _, c := range r.items {
		if c.ThreadID != nil && *c.ThreadID == threadID {
			c.ThreadID = nil
		}
	}
	return nil
}

type memHubRepo struct{ items map[string]*entity.Hub }

func (r *memHubRepo) Create(_ context.Context, h *entity.Hub) error {
	r.items[h.ID] = h
	return nil
}

func (r *memHubRepo) GetByID(_ context.Context, id string) (*entity.Hub, error) {
	return r.items[id], nil
}

func (r *memHubRepo) Update(_ context.Context, h *entity.Hub) error {
	r.items[h.ID] = h
	return nil
}

func (r *memHubRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memHubRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Hub, error) {
	var out []*entity.Hub
	for _, h := range r.items {
		if h.ProjectID == projectID {
			out = append(out, h)
		}
	}
	return out, nil
}

type memMilestoneRepo struct{ items map[string]*entity.Milestone }

func (r *memMilestoneRepo) Create(_ context.Context, m *entity.Milestone) error {
	r.items[m.ID] = m
	return nil
}

func (r *memMilestoneRepo) GetByID(_ context.Context, id string) (*entity.Milestone, error) {
	return r.items[id], nil
}

func (r *memMilestoneRepo) Update(_ context.Context, m *entity.Milestone) error {
	r.items[m.ID] = m
	return nil
}

func (r *memMilestoneRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memMilestoneRepo) ListByProject(_ context.Context, projectID string, _ *repository.MilestoneFilter) ([]*entity.Milestone, error) {
	var out []*entity.Milestone
	for _, m := range r.items {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

// stubAccessGate 按预设错误拒绝全部校验
type stubAccessGate struct{ err error }

func (g *stubAccessGate) VerifyAccess(context.Context, string, string) error {
	return g.err
}

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ===== 路由装配 =====

type httpFixture struct {
	engine  *gin.Engine
	threads *memThreadRepo
	clues   *memClueRepo
	gate    *stubAccessGate
}

func newHTTPFixture() *httpFixture {
	gin.SetMode(gin.TestMode)

	threads := &memThreadRepo{items: make(map[string]*entity.Thread)}
	clues := &memClueRepo{items: make(map[string]*entity.Clue)}
	hubs := &memHubRepo{items: make(map[string]*entity.Hub)}
	milestones := &memMilestoneRepo{items: make(map[string]*entity.Milestone)}
	gate := &stubAccessGate{}
	svc := blueprint.NewService(threads, clues, hubs, milestones, gate, passthroughTx{})

	engine := gin.New()
	engine.Use(func(c *gin.Context) { c.Set("user_id", "u-1") })
	engine.Use(middleware.Identity())

	th := NewThreadHandler(svc)
	ch := NewClueHandler(svc)
	bh := NewBlueprintHandler(svc)

	g := engine.Group("/blueprint")
	g.GET("/projects/:pid", bh.GetProjectBlueprint)
	g.GET("/threads/projects/:pid", th.ListThreads)
	g.POST("/threads", th.CreateThread)
	g.PUT("/threads/:id", th.UpdateThread)
	g.GET("/clues/projects/:pid", ch.ListClues)

	return &httpFixture{engine: engine, threads: threads, clues: clues, gate: gate}
}

func (f *httpFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

// ===== 用例 =====

func TestListCluesEmptyProjectReturnsEmptyArray(t *testing.T) {
	f := newHTTPFixture()

	w := f.do(http.MethodGet, "/blueprint/clues/projects/p-empty", "")

	assert.Equal(t, http.StatusOK, w.Code)
	// 空项目返回空数组而非 null
	assert.JSONEq(t, `{"items":[],"total":0}`, w.Body.String())
}

func TestCreateThreadReturns201(t *testing.T) {
	f := newHTTPFixture()

	w := f.do(http.MethodPost, "/blueprint/threads",
		`{"project_id":"p1","thread_id":"T01","title":"身世之谜","core_question":"生父是谁"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, f.threads.items, 1)
	assert.Contains(t, w.Body.String(), `"thread_id":"T01"`)
}

func TestCreateThreadMissingFieldsReturns400(t *testing.T) {
	f := newHTTPFixture()

	w := f.do(http.MethodPost, "/blueprint/threads", `{"project_id":"p1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.threads.items)
}

func TestUpdateThreadMissingReturns404(t *testing.T) {
	f := newHTTPFixture()

	w := f.do(http.MethodPut, "/blueprint/threads/missing", `{"title":"新标题"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "thread not found")
}

func TestListThreadsDeniedReturns403(t *testing.T) {
	f := newHTTPFixture()
	f.gate.err = apperrors.ErrPermissionDenied

	w := f.do(http.MethodGet, "/blueprint/threads/projects/p1", "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "no access to this project")
}

func TestGetProjectBlueprintProjectMissingReturns404(t *testing.T) {
	f := newHTTPFixture()
	f.gate.err = apperrors.ErrProjectNotFound

	w := f.do(http.MethodGet, "/blueprint/projects/p-gone", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
