package notification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brehanbank/promotion-service/internal/core/identity"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// UseCase は通知に関するユースケースの公開インターフェースです。
type UseCase interface {
	Append(ctx context.Context, events []Notification) error
	List(ctx context.Context, caller identity.Caller) ([]*Notification, error)
	UnreadCount(ctx context.Context, caller identity.Caller) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, caller identity.Caller) error
}

// Service は通知ユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// Append はディスパッチャーが生成したイベント列に ID と作成時刻を付与して永続化します。
// スコア書き込みのコミット後に呼び出され、失敗しても書き込みはロールバックされません。
func (s *Service) Append(ctx context.Context, events []Notification) error {
	now := s.clock.Now()
	for _, event := range events {
		event.ID = uuid.NewString()
		event.Read = false
		event.CreatedAt = now
		if _, err := s.repo.Create(ctx, &event); err != nil {
			return err
		}
	}
	return nil
}

// List は呼び出し元の役割とスコープに宛てられた通知を新しい順に返します。
func (s *Service) List(ctx context.Context, caller identity.Caller) ([]*Notification, error) {
	if !identity.IsValidRole(caller.Role) {
		return nil, ErrInvalidRecipient
	}
	return s.repo.ListByRecipient(ctx, caller.Role, caller.ScopeValue())
}

// UnreadCount は未読通知の件数を返します。
func (s *Service) UnreadCount(ctx context.Context, caller identity.Caller) (int64, error) {
	if !identity.IsValidRole(caller.Role) {
		return 0, ErrInvalidRecipient
	}
	return s.repo.CountUnread(ctx, caller.Role, caller.ScopeValue())
}

// MarkRead は指定された通知を既読にします。
func (s *Service) MarkRead(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead は呼び出し元に宛てられた通知をすべて既読にします。
func (s *Service) MarkAllRead(ctx context.Context, caller identity.Caller) error {
	if !identity.IsValidRole(caller.Role) {
		return ErrInvalidRecipient
	}
	return s.repo.MarkAllRead(ctx, caller.Role, caller.ScopeValue())
}
