package postgres

import (
	"context"
	"fmt"
)

// schemaStatements 结构蓝图相关表的建表语句，可重复执行
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id VARCHAR(36) PRIMARY KEY,
		owner_id VARCHAR(36),
		title VARCHAR(200) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS structure_threads (
		id VARCHAR(36) PRIMARY KEY,
		project_id VARCHAR(36) NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		thread_id VARCHAR(50) NOT NULL,
		title VARCHAR(200) NOT NULL,
		core_question TEXT NOT NULL DEFAULT '',
		final_answer TEXT NOT NULL DEFAULT '',
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		reveal_schedule JSONB NOT NULL DEFAULT '[]'::jsonb,
		related_character_ids JSONB NOT NULL DEFAULT '[]'::jsonb,
		notes TEXT NOT NULL DEFAULT '',
		color VARCHAR(20) NOT NULL DEFAULT '#3B82F6',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_structure_threads_project ON structure_threads (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_structure_threads_status ON structure_threads (project_id, status)`,

	`CREATE TABLE IF NOT EXISTS structure_clues (
		id VARCHAR(36) PRIMARY KEY,
		project_id VARCHAR(36) NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		thread_id VARCHAR(36) REFERENCES structure_threads(id) ON DELETE SET NULL,
		clue_id VARCHAR(50) NOT NULL,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		carrier VARCHAR(200) NOT NULL DEFAULT '',
		status VARCHAR(50) NOT NULL DEFAULT 'seed',
		lifecycle JSONB NOT NULL DEFAULT '{}'::jsonb,
		is_red_herring BOOLEAN NOT NULL DEFAULT FALSE,
		related_character_ids JSONB NOT NULL DEFAULT '[]'::jsonb,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_structure_clues_project ON structure_clues (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_structure_clues_thread ON structure_clues (thread_id)`,
	`CREATE INDEX IF NOT EXISTS idx_structure_clues_status ON structure_clues (project_id, status)`,

	`CREATE TABLE IF NOT EXISTS structure_hubs (
		id VARCHAR(36) PRIMARY KEY,
		project_id VARCHAR(36) NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		hub_id VARCHAR(50) NOT NULL,
		name VARCHAR(200) NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		frequency VARCHAR(50) NOT NULL DEFAULT 'every_5_chapters',
		resident_character_ids JSONB NOT NULL DEFAULT '[]'::jsonb,
		functions JSONB NOT NULL DEFAULT '[]'::jsonb,
		trading_rules TEXT NOT NULL DEFAULT '',
		taboos TEXT NOT NULL DEFAULT '',
		appearances JSONB NOT NULL DEFAULT '[]'::jsonb,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_structure_hubs_project ON structure_hubs (project_id)`,

	`CREATE TABLE IF NOT EXISTS structure_milestones (
		id VARCHAR(36) PRIMARY KEY,
		project_id VARCHAR(36) NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		milestone_id VARCHAR(50) NOT NULL,
		title VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		conditions JSONB NOT NULL DEFAULT '[]'::jsonb,
		cost TEXT NOT NULL DEFAULT '',
		aftermath TEXT NOT NULL DEFAULT '',
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		target_chapter INTEGER,
		actual_chapter INTEGER,
		related_thread_ids JSONB NOT NULL DEFAULT '[]'::jsonb,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		achieved_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_structure_milestones_project ON structure_milestones (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_structure_milestones_status ON structure_milestones (project_id, status)`,
}

// EnsureSchema 创建结构蓝图所需的表和索引
func (c *Client) EnsureSchema(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.EnsureSchema")
	defer span.End()

	for _, stmt := range schemaStatements {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
