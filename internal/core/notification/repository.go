package notification

import (
	"context"

	"github.com/brehanbank/promotion-service/internal/core/identity"
)

// Repository は通知永続化の抽象です。ストアは追記型であり、
// 既読フラグの更新以外で既存行が変更されることはありません。
type Repository interface {
	Create(ctx context.Context, n *Notification) (*Notification, error)
	ListByRecipient(ctx context.Context, role identity.Role, scope string) ([]*Notification, error)
	CountUnread(ctx context.Context, role identity.Role, scope string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, role identity.Role, scope string) error
}
