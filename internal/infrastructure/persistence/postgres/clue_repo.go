package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
)

// ClueRepository 线索仓储实现
type ClueRepository struct {
	client *Client
}

// NewClueRepository 创建线索仓储
func NewClueRepository(client *Client) *ClueRepository {
	return &ClueRepository{client: client}
}

// Create 创建线索
func (r *ClueRepository) Create(ctx context.Context, clue *entity.Clue) error {
	ctx, span := tracer.Start(ctx, "postgres.ClueRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	lifecycleJSON, _ := json.Marshal(clue.Lifecycle)
	charactersJSON, _ := json.Marshal(clue.RelatedCharacterIDs)

	var threadID sql.NullString
	if clue.ThreadID != nil {
		threadID = sql.NullString{String: *clue.ThreadID, Valid: true}
	}

	query := `
		INSERT INTO structure_clues (id, project_id, thread_id, clue_id, title, description, carrier,
			status, lifecycle, is_red_herring, related_character_ids, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		clue.ID, clue.ProjectID, threadID, clue.ClueID, clue.Title, clue.Description,
		clue.Carrier, clue.Status, lifecycleJSON, clue.IsRedHerring, charactersJSON, clue.Notes,
	).Scan(&clue.CreatedAt, &clue.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create clue: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取线索
func (r *ClueRepository) GetByID(ctx context.Context, id string) (*entity.Clue, error) {
	ctx, span := tracer.Start(ctx, "postgres.ClueRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, project_id, thread_id, clue_id, title, description, carrier,
			status, lifecycle, is_red_herring, related_character_ids, notes, created_at, updated_at
		FROM structure_clues
		WHERE id = $1
	`

	clue, err := scanClue(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get clue: %w", err)
	}

	return clue, nil
}

// Update 更新线索
func (r *ClueRepository) Update(ctx context.Context, clue *entity.Clue) error {
	ctx, span := tracer.Start(ctx, "postgres.ClueRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	lifecycleJSON, _ := json.Marshal(clue.Lifecycle)
	charactersJSON, _ := json.Marshal(clue.RelatedCharacterIDs)

	var threadID sql.NullString
	if clue.ThreadID != nil {
		threadID = sql.NullString{String: *clue.ThreadID, Valid: true}
	}

	query := `
		UPDATE structure_clues
		SET thread_id = $1, clue_id = $2, title = $3, description = $4, carrier = $5, status = $6,
			lifecycle = $7, is_red_herring = $8, related_character_ids = $9, notes = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		threadID, clue.ClueID, clue.Title, clue.Description, clue.Carrier, clue.Status,
		lifecycleJSON, clue.IsRedHerring, charactersJSON, clue.Notes, clue.ID,
	).Scan(&clue.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update clue: %w", err)
	}

	return nil
}

// Delete 删除线索
func (r *ClueRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ClueRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM structure_clues WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete clue: %w", err)
	}

	return nil
}

// ListByProject 获取项目下全部线索
func (r *ClueRepository) ListByProject(ctx context.Context, projectID string, filter *repository.ClueFilter) ([]*entity.Clue, error) {
	ctx, span := tracer.Start(ctx, "postgres.ClueRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, project_id, thread_id, clue_id, title, description, carrier,
			status, lifecycle, is_red_herring, related_character_ids, notes, created_at, updated_at
		FROM structure_clues
		WHERE project_id = $1
	`
	args := []interface{}{projectID}

	if filter != nil {
		if filter.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", len(args)+1)
			args = append(args, filter.Status)
		}
		if filter.ThreadID != "" {
			query += fmt.Sprintf(" AND thread_id = $%d", len(args)+1)
			args = append(args, filter.ThreadID)
		}
	}
	query += " ORDER BY created_at ASC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list clues: %w", err)
	}
	defer rows.Close()

	clues := []*entity.Clue{}
	for rows.Next() {
		clue, err := scanClue(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan clue: %w", err)
		}
		clues = append(clues, clue)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate clues: %w", err)
	}

	return clues, nil
}

// DetachThread 将引用指定线程的所有线索的 thread_id 置空
func (r *ClueRepository) DetachThread(ctx context.Context, threadID string) error {
	ctx, span := tracer.Start(ctx, "postgres.ClueRepository.DetachThread")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `UPDATE structure_clues SET thread_id = NULL, updated_at = NOW() WHERE thread_id = $1`
	if _, err := q.ExecContext(ctx, query, threadID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to detach clues from thread: %w", err)
	}

	return nil
}

// scanClue 从行扫描线索实体
func scanClue(row rowScanner) (*entity.Clue, error) {
	var clue entity.Clue
	var threadID sql.NullString
	var lifecycleJSON, charactersJSON []byte

	err := row.Scan(
		&clue.ID, &clue.ProjectID, &threadID, &clue.ClueID, &clue.Title, &clue.Description,
		&clue.Carrier, &clue.Status, &lifecycleJSON, &clue.IsRedHerring,
		&charactersJSON, &clue.Notes, &clue.CreatedAt, &clue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if threadID.Valid {
		clue.ThreadID = &threadID.String
	}
	clue.Lifecycle = &entity.ClueLifecycle{}
	clue.RelatedCharacterIDs = []string{}
	json.Unmarshal(lifecycleJSON, clue.Lifecycle)
	json.Unmarshal(charactersJSON, &clue.RelatedCharacterIDs)

	return &clue, nil
}
