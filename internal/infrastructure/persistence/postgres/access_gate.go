package postgres

import (
	"context"
	"database/sql"
	"fmt"

	apperrors "z-novel-blueprint-api/pkg/errors"
)

// AccessGate 基于项目归属的访问校验实现
type AccessGate struct {
	client *Client
}

// NewAccessGate 创建访问校验器
func NewAccessGate(client *Client) *AccessGate {
	return &AccessGate{client: client}
}

// VerifyAccess 校验用户对项目的访问权限
// 项目无归属人时视为公共项目，任何已认证用户可访问
func (g *AccessGate) VerifyAccess(ctx context.Context, projectID, userID string) error {
	ctx, span := tracer.Start(ctx, "postgres.AccessGate.VerifyAccess")
	defer span.End()

	q := getQuerier(ctx, g.client.db)

	var ownerID sql.NullString
	err := q.QueryRowContext(ctx, `SELECT owner_id FROM projects WHERE id = $1`, projectID).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.ErrProjectNotFound
		}
		span.RecordError(err)
		return apperrors.Wrap(fmt.Errorf("failed to query project owner: %w", err),
			apperrors.CodeDatabaseError, "access check failed")
	}

	if !ownerID.Valid || ownerID.String == "" {
		return nil
	}
	if ownerID.String != userID {
		return apperrors.ErrPermissionDenied
	}

	return nil
}
