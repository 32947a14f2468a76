package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"z-novel-blueprint-api/internal/domain/entity"
)

// HubRepository 枢纽场景仓储实现
type HubRepository struct {
	client *Client
}

// NewHubRepository 创建枢纽仓储
func NewHubRepository(client *Client) *HubRepository {
	return &HubRepository{client: client}
}

// Create 创建枢纽
func (r *HubRepository) Create(ctx context.Context, hub *entity.Hub) error {
	ctx, span := tracer.Start(ctx, "postgres.HubRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	residentsJSON, _ := json.Marshal(hub.ResidentCharacterIDs)
	functionsJSON, _ := json.Marshal(hub.Functions)
	appearancesJSON, _ := json.Marshal(hub.Appearances)

	query := `
		INSERT INTO structure_hubs (id, project_id, hub_id, name, location, frequency,
			resident_character_ids, functions, trading_rules, taboos, appearances, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		hub.ID, hub.ProjectID, hub.HubID, hub.Name, hub.Location, hub.Frequency,
		residentsJSON, functionsJSON, hub.TradingRules, hub.Taboos, appearancesJSON, hub.Notes,
	).Scan(&hub.CreatedAt, &hub.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create hub: %w", err)
	}

	return nil
}

// GetByID 根据 ID 获取枢纽
func (r *HubRepository) GetByID(ctx context.Context, id string) (*entity.Hub, error) {
	ctx, span := tracer.Start(ctx, "postgres.HubRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, project_id, hub_id, name, location, frequency,
			resident_character_ids, functions, trading_rules, taboos, appearances, notes, created_at, updated_at
		FROM structure_hubs
		WHERE id = $1
	`

	hub, err := scanHub(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get hub: %w", err)
	}

	return hub, nil
}

// Update 更新枢纽
func (r *HubRepository) Update(ctx context.Context, hub *entity.Hub) error {
	ctx, span := tracer.Start(ctx, "postgres.HubRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	residentsJSON, _ := json.Marshal(hub.ResidentCharacterIDs)
	functionsJSON, _ := json.Marshal(hub.Functions)
	appearancesJSON, _ := json.Marshal(hub.Appearances)

	query := `
		UPDATE structure_hubs
		SET hub_id = $1, name = $2, location = $3, frequency = $4, resident_character_ids = $5,
			functions = $6, trading_rules = $7, taboos = $8, appearances = $9, notes = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		hub.HubID, hub.Name, hub.Location, hub.Frequency, residentsJSON,
		functionsJSON, hub.TradingRules, hub.Taboos, appearancesJSON, hub.Notes, hub.ID,
	).Scan(&hub.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update hub: %w", err)
	}

	return nil
}

// Delete 删除枢纽
func (r *HubRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.HubRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM structure_hubs WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete hub: %w", err)
	}

	return nil
}

// ListByProject 获取项目下全部枢纽
func (r *HubRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Hub, error) {
	ctx, span := tracer.Start(ctx, "postgres.HubRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		SELECT id, project_id, hub_id, name, location, frequency,
			resident_character_ids, functions, trading_rules, taboos, appearances, notes, created_at, updated_at
		FROM structure_hubs
		WHERE project_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list hubs: %w", err)
	}
	defer rows.Close()

	hubs := []*entity.Hub{}
	for rows.Next() {
		hub, err := scanHub(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan hub: %w", err)
		}
		hubs = append(hubs, hub)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate hubs: %w", err)
	}

	return hubs, nil
}

// scanHub 从行扫描枢纽实体
func scanHub(row rowScanner) (*entity.Hub, error) {
	var hub entity.Hub
	var residentsJSON, functionsJSON, appearancesJSON []byte

	err := row.Scan(
		&hub.ID, &hub.ProjectID, &hub.HubID, &hub.Name, &hub.Location, &hub.Frequency,
		&residentsJSON, &functionsJSON, &hub.TradingRules, &hub.Taboos,
		&appearancesJSON, &hub.Notes, &hub.CreatedAt, &hub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	hub.ResidentCharacterIDs = []string{}
	hub.Functions = []string{}
	hub.Appearances = []entity.HubAppearance{}
	json.Unmarshal(residentsJSON, &hub.ResidentCharacterIDs)
	json.Unmarshal(functionsJSON, &hub.Functions)
	json.Unmarshal(appearancesJSON, &hub.Appearances)

	return &hub, nil
}
