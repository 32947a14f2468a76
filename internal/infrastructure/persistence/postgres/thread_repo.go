// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
)

// ThreadRepository 谜题线程仓储实现
type ThreadRepository struct {
	client *Client
}

// NewThreadRepository 创建线程仓储
func NewThreadRepository(client *Client) *ThreadRepository {
	return &ThreadRepository{client: client}
}

// Create 创建线程
func (r *ThreadRepository) Create(ctx context.Context, thread *entity.Thread) error {
	ctx, span := tracer.Start(ctx, "postgres.ThreadRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	scheduleJSON, _ := json.Marshal(thread.RevealSchedule)
	charactersJSON, _ := json.Marshal(thread.RelatedCharacterIDs)

	query := `
		INSERT INTO structure_threads (id, project_id, thread_id, title, core_question, final_answer,
			status, reveal_schedule, related_character_ids, notes, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		thread.ID, thread.ProjectID, thread.ThreadID, thread.Title, thread.CoreQuestion,
		thread.FinalAnswer, thread.Status, scheduleJSON, charactersJSON, thread.Notes, thread.Color,
	).Scan(&thread.CreatedAt, &thread.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create thread: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取线程
func (r *ThreadRepository) GetByID(ctx context.Context, id string) (*entity.Thread, error) {
	ctx, span := tracer.Start(ctx, "postgres.ThreadRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, project_id, thread_id, title, core_question, final_answer,
			status, reveal_schedule, related_character_ids, notes, color, created_at, updated_at
		FROM structure_threads
		WHERE id = $1
	`

	thread, err := scanThread(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get thread: %w", err)
	}

	return thread, nil
}

// Update 更新线程
func (r *ThreadRepository) Update(ctx context.Context, thread *entity.Thread) error {
	ctx, span := tracer.Start(ctx, "postgres.ThreadRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	scheduleJSON, _ := json.Marshal(thread.RevealSchedule)
	charactersJSON, _ := json.Marshal(thread.RelatedCharacterIDs)

	query := `
		UPDATE structure_threads
		SET thread_id = $1, title = $2, core_question = $3, final_answer = $4, status = $5,
			reveal_schedule = $6, related_character_ids = $7, notes = $8, color = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		thread.ThreadID, thread.Title, thread.CoreQuestion, thread.FinalAnswer, thread.Status,
		scheduleJSON, charactersJSON, thread.Notes, thread.Color, thread.ID,
	).Scan(&thread.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update thread: %w", err)
	}

	return nil
}

// Delete 删除线程
func (r *ThreadRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ThreadRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM structure_threads WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete thread: %w", err)
	}

	return nil
}

// ListByProject 获取项目下全部线程
func (r *ThreadRepository) ListByProject(ctx context.Context, projectID string, filter *repository.ThreadFilter) ([]*entity.Thread, error) {
	ctx, span := tracer.Start(ctx, "postgres.ThreadRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, project_id, thread_id, title, core_question, final_answer,
			status, reveal_schedule, related_character_ids, notes, color, created_at, updated_at
		FROM structure_threads
		WHERE project_id = $1
	`
	args := []interface{}{projectID}

	if filter != nil && filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at ASC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	threads := []*entity.Thread{}
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}

	return threads, nil
}

// rowScanner 兼容 sql.Row 和 sql.Rows 的扫描接口
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanThread 从行扫描线程实体
func scanThread(row rowScanner) (*entity.Thread, error) {
	var thread entity.Thread
	var scheduleJSON, charactersJSON []byte

	err := row.Scan(
		&thread.ID, &thread.ProjectID, &thread.ThreadID, &thread.Title, &thread.CoreQuestion,
		&thread.FinalAnswer, &thread.Status, &scheduleJSON, &charactersJSON,
		&thread.Notes, &thread.Color, &thread.CreatedAt, &thread.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	thread.RevealSchedule = []entity.RevealPoint{}
	thread.RelatedCharacterIDs = []string{}
	json.Unmarshal(scheduleJSON, &thread.RevealSchedule)
	json.Unmarshal(charactersJSON, &thread.RelatedCharacterIDs)

	return &thread, nil
}
