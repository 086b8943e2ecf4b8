package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brehanbank/promotion-service/internal/core/identity"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeNotificationRepo struct {
	notifications []*Notification
	createErr     error
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *Notification) (*Notification, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *n
	r.notifications = append(r.notifications, &clone)
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByRecipient(_ context.Context, role identity.Role, scope string) ([]*Notification, error) {
	var result []*Notification
	for _, n := range r.notifications {
		if n.RecipientRole != role {
			continue
		}
		if scope != "" && n.RecipientScope != scope {
			continue
		}
		clone := *n
		result = append(result, &clone)
	}
	return result, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, role identity.Role, scope string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.RecipientRole == role && (scope == "" || n.RecipientScope == scope) && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, role identity.Role, scope string) error {
	for _, n := range r.notifications {
		if n.RecipientRole == role && (scope == "" || n.RecipientScope == scope) {
			n.Read = true
		}
	}
	return nil
}

func TestAppend_AssignsIdentityAndTimestamp(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{}
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(repo, &stubClock{now: now})

	events := []Notification{
		{
			EmployeeID:     "emp-1",
			EmployeeName:   "Abebe Kebede",
			Type:           TypeDistrictRecommendationNeeded,
			RecipientRole:  identity.RoleDistrictManager,
			RecipientScope: "East",
		},
	}

	if err := svc.Append(context.Background(), events); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	if len(repo.notifications) != 1 {
		t.Fatalf("expected 1 stored notification, got %d", len(repo.notifications))
	}
	stored := repo.notifications[0]
	if stored.ID == "" {
		t.Fatalf("Append must assign an id")
	}
	if !stored.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, stored.CreatedAt)
	}
	if stored.Read {
		t.Fatalf("new notifications start unread")
	}
}

func TestList_FiltersByRecipient(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{notifications: []*Notification{
		{ID: "n-1", RecipientRole: identity.RoleDistrictManager, RecipientScope: "East"},
		{ID: "n-2", RecipientRole: identity.RoleDistrictManager, RecipientScope: "West"},
		{ID: "n-3", RecipientRole: identity.RoleManager, RecipientScope: "Main"},
	}}
	svc := NewService(repo, nil)

	dm := identity.Caller{Role: identity.RoleDistrictManager, District: "East"}
	list, err := svc.List(context.Background(), dm)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "n-1" {
		t.Fatalf("expected only n-1 for East district manager, got %+v", list)
	}

	if _, err := svc.List(context.Background(), identity.Caller{Role: identity.Role("intern")}); !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("expected ErrInvalidRecipient, got %v", err)
	}
}

func TestMarkRead(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{notifications: []*Notification{
		{ID: "n-1", RecipientRole: identity.RoleDistrictManager, RecipientScope: "East"},
	}}
	svc := NewService(repo, nil)

	if err := svc.MarkRead(context.Background(), "n-1"); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
	if !repo.notifications[0].Read {
		t.Fatalf("notification should be marked read")
	}

	if err := svc.MarkRead(context.Background(), "  "); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID for blank id, got %v", err)
	}
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	t.Parallel()

	repo := &fakeNotificationRepo{notifications: []*Notification{
		{ID: "n-1", RecipientRole: identity.RoleDistrictManager, RecipientScope: "East"},
		{ID: "n-2", RecipientRole: identity.RoleDistrictManager, RecipientScope: "East"},
		{ID: "n-3", RecipientRole: identity.RoleDistrictManager, RecipientScope: "West"},
	}}
	svc := NewService(repo, nil)

	dm := identity.Caller{Role: identity.RoleDistrictManager, District: "East"}

	count, err := svc.UnreadCount(context.Background(), dm)
	if err != nil {
		t.Fatalf("UnreadCount returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 unread, got %d", count)
	}

	if err := svc.MarkAllRead(context.Background(), dm); err != nil {
		t.Fatalf("MarkAllRead returned error: %v", err)
	}

	count, err = svc.UnreadCount(context.Background(), dm)
	if err != nil {
		t.Fatalf("UnreadCount returned error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 unread after MarkAllRead, got %d", count)
	}
	if repo.notifications[2].Read {
		t.Fatalf("West notification must stay untouched")
	}
}
