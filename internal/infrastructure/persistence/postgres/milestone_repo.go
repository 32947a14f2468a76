package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"z-novel-blueprint-api/internal/domain/entity"
	"z-novel-blueprint-api/internal/domain/repository"
)

// MilestoneRepository 里程碑仓储实现
type MilestoneRepository struct {
	client *Client
}

// NewMilestoneRepository 创建里程碑仓储
func NewMilestoneRepository(client *Client) *MilestoneRepository {
	return &MilestoneRepository{client: client}
}

// Create 创建里程碑
func (r *MilestoneRepository) Create(ctx context.Context, milestone *entity.Milestone) error {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	conditionsJSON, _ := json.Marshal(milestone.Conditions)
	threadsJSON, _ := json.Marshal(milestone.RelatedThreadIDs)

	query := `
		INSERT INTO structure_milestones (id, project_id, milestone_id, title, description, conditions,
			cost, aftermath, status, target_chapter, actual_chapter, related_thread_ids, notes,
			created_at, updated_at, achieved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW(), $14)
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		milestone.ID, milestone.ProjectID, milestone.MilestoneID, milestone.Title, milestone.Description,
		conditionsJSON, milestone.Cost, milestone.Aftermath, milestone.Status,
		milestone.TargetChapter, milestone.ActualChapter, threadsJSON, milestone.Notes, milestone.AchievedAt,
	).Scan(&milestone.CreatedAt, &milestone.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create milestone: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取里程碑
func (r *MilestoneRepository) GetByID(ctx context.Context, id string) (*entity.Milestone, error) {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, project_id, milestone_id, title, description, conditions,
			cost, aftermath, status, target_chapter, actual_chapter, related_thread_ids, notes,
			created_at, updated_at, achieved_at
		FROM structure_milestones
		WHERE id = $1
	`

	milestone, err := scanMilestone(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}

	return milestone, nil
}

// Update 更新里程碑
func (r *MilestoneRepository) Update(ctx context.Context, milestone *entity.Milestone) error {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	conditionsJSON, _ := json.Marshal(milestone.Conditions)
	threadsJSON, _ := json.Marshal(milestone.RelatedThreadIDs)

	query := `
		UPDATE structure_milestones
		SET milestone_id = $1, title = $2, description = $3, conditions = $4, cost = $5, aftermath = $6,
			status = $7, target_chapter = $8, actual_chapter = $9, related_thread_ids = $10, notes = $11,
			achieved_at = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		milestone.MilestoneID, milestone.Title, milestone.Description, conditionsJSON,
		milestone.Cost, milestone.Aftermath, milestone.Status, milestone.TargetChapter,
		milestone.ActualChapter, threadsJSON, milestone.Notes, milestone.AchievedAt, milestone.ID,
	).Scan(&milestone.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update milestone: %w", err)
	}

	return nil
}

// Delete 删除里程碑
func (r *MilestoneRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM structure_milestones WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete milestone: %w", err)
	}

	return nil
}

// ListByProject 获取项目下全部里程碑
func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID string, filter *repository.MilestoneFilter) ([]*entity.Milestone, error) {
	ctx, span := tracer.Start(ctx, "postgres.MilestoneRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, project_id, milestone_id, title, description, conditions,
			cost, aftermath, status, target_chapter, actual_chapter, related_thread_ids, notes,
			created_at, updated_at, achieved_at
		FROM structure_milestones
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
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer rows.Close()

	milestones := []*entity.Milestone{}
	for rows.Next() {
		milestone, err := scanMilestone(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, milestone)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate milestones: %w", err)
	}

	return milestones, nil
}

// scanMilestone 从行扫描里程碑实体
func scanMilestone(row rowScanner) (*entity.Milestone, error) {
	var milestone entity.Milestone
	var conditionsJSON, threadsJSON []byte
	var targetChapter, actualChapter sql.NullInt64
	var achievedAt sql.NullTime

	err := row.Scan(
		&milestone.ID, &milestone.ProjectID, &milestone.MilestoneID, &milestone.Title,
		&milestone.Description, &conditionsJSON, &milestone.Cost, &milestone.Aftermath,
		&milestone.Status, &targetChapter, &actualChapter, &threadsJSON, &milestone.Notes,
		&milestone.CreatedAt, &milestone.UpdatedAt, &achievedAt,
	)
	if err != nil {
		return nil, err
	}

	if targetChapter.Valid {
		v := int(targetChapter.Int64)
		milestone.TargetChapter = &v
	}
	if actualChapter.Valid {
		v := int(actualChapter.Int64)
		milestone.ActualChapter = &v
	}
	if achievedAt.Valid {
		t := achievedAt.Time
		milestone.AchievedAt = &t
	}
	milestone.Conditions = []entity.MilestoneCondition{}
	milestone.RelatedThreadIDs = []string{}
	json.Unmarshal(conditionsJSON, &milestone.Conditions)
	json.Unmarshal(threadsJSON, &milestone.RelatedThreadIDs)

	return &milestone, nil
}
