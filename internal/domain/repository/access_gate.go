package repository

import (
	"context"
)

// AccessGate 项目访问校验接口
// 每次蓝图操作前都必须通过校验；校验失败时操作不得产生任何副作用
type AccessGate interface {
	// VerifyAccess 校验用户对项目的访问权限
	// 项目不存在返回 ErrProjectNotFound，无权限返回 ErrPermissionDenied
	VerifyAccess(ctx context.Context, projectID, userID string) error
}
