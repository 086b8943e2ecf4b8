package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/brehanbank/promotion-service/internal/core/identity"
	"github.com/brehanbank/promotion-service/internal/core/notification"
	pgdb "github.com/brehanbank/promotion-service/internal/platform/db/postgres"
)

const notificationColumns = `
               n.id,
               n.employee_id,
               n.employee_name,
               n.type,
               n.title,
               n.message,
               n.recipient_role,
               n.recipient_scope,
               n.read,
               n.created_at`

// NotificationRepository は PostgreSQL を利用した通知永続化の実装です。
// 通知テーブルは追記型であり、更新されるのは read カラムだけです。
type NotificationRepository struct {
	pool pgdb.Queryer
}

// NewNotificationRepository は NotificationRepository を生成します。
func NewNotificationRepository(pool pgdb.Queryer) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Create は通知を追記します。
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) (*notification.Notification, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO notifications AS n (id, employee_id, employee_name, type, title, message, recipient_role, recipient_scope, read, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING`+notificationColumns+`
    `,
		n.ID,
		n.EmployeeID,
		n.EmployeeName,
		string(n.Type),
		n.Title,
		n.Message,
		string(n.RecipientRole),
		n.RecipientScope,
		n.Read,
		n.CreatedAt,
	)

	created, err := scanNotification(row)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListByRecipient は宛先の役割とスコープに一致する通知を新しい順に返します。
// スコープが空の場合（admin）は役割のみで絞り込みます。
func (r *NotificationRepository) ListByRecipient(ctx context.Context, role identity.Role, scope string) ([]*notification.Notification, error) {
	query := `
        SELECT` + notificationColumns + `
          FROM notifications n
         WHERE n.recipient_role = $1
    `
	args := []any{string(role)}
	if scope != "" {
		query += `           AND n.recipient_scope = $2
    `
		args = append(args, scope)
	}
	query += `         ORDER BY n.created_at DESC, n.id DESC
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// CountUnread は未読通知の件数を返します。保留キューのバッジ表示に使われます。
func (r *NotificationRepository) CountUnread(ctx context.Context, role identity.Role, scope string) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications n WHERE n.recipient_role = $1 AND n.read = FALSE`
	args := []any{string(role)}
	if scope != "" {
		query += ` AND n.recipient_scope = $2`
		args = append(args, scope)
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var count int64
	if err := exec.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead は指定された通知を既読にします。
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead は宛先に一致する通知をすべて既読にします。
func (r *NotificationRepository) MarkAllRead(ctx context.Context, role identity.Role, scope string) error {
	query := `UPDATE notifications SET read = TRUE WHERE recipient_role = $1 AND read = FALSE`
	args := []any{string(role)}
	if scope != "" {
		query += ` AND recipient_scope = $2`
		args = append(args, scope)
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var (
		n             notification.Notification
		nType         string
		recipientRole string
	)

	if err := row.Scan(
		&n.ID,
		&n.EmployeeID,
		&n.EmployeeName,
		&nType,
		&n.Title,
		&n.Message,
		&recipientRole,
		&n.RecipientScope,
		&n.Read,
		&n.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, err
	}

	n.Type = notification.Type(nType)
	n.RecipientRole = identity.Role(recipientRole)
	return &n, nil
}
