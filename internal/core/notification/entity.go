package notification

import (
	"time"

	"github.com/brehanbank/promotion-service/internal/core/identity"
)

// Type は通知の種別を表します。
type Type string

const (
	// TypeManagerRecommendationNeeded は支店マネージャーの推薦入力を促す通知です。
	TypeManagerRecommendationNeeded Type = "manager_recommendation_needed"
	// TypeDistrictRecommendationNeeded は地区マネージャーの推薦入力を促す通知です。
	TypeDistrictRecommendationNeeded Type = "district_recommendation_needed"
)

// Notification は次に責任を持つ役割へ送られるイベントです。
// 状態遷移ごとに一度だけ作成され、既読フラグ以外は変更されません。
type Notification struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Type         Type
	Title        string
	Message      string

	// RecipientRole と RecipientScope が配送先を決めます。
	// スコープは地区または支店の識別子です。
	RecipientRole  identity.Role
	RecipientScope string

	Read      bool
	CreatedAt time.Time
}
