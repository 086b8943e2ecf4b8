package identity

import "errors"

// Role は呼び出し元の役割を表します。
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleManager         Role = "manager"
	RoleDistrictManager Role = "district_manager"
)

// ErrUnknownRole は未定義の役割が指定された場合に返却されます。
var ErrUnknownRole = errors.New("identity: unknown role")

// Caller は上流の認証コラボレーターが検証済みの呼び出し元を表します。
// この値はリクエスト毎に明示的に受け渡され、グローバルな状態からは決して読み取りません。
type Caller struct {
	Role     Role
	Branch   string // manager の場合のみ設定されます
	District string // district_manager の場合のみ設定されます
}

// NewCaller は役割を検証して Caller を生成します。
func NewCaller(role Role, branch, district string) (Caller, error) {
	if !IsValidRole(role) {
		return Caller{}, ErrUnknownRole
	}
	return Caller{Role: role, Branch: branch, District: district}, nil
}

// IsValidRole は役割が定義済みかどうかを返します。
func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleDistrictManager:
		return true
	default:
		return false
	}
}

// ScopeValue は呼び出し元が制限される組織スコープの識別子を返します。
// admin は全体を参照できるため空文字列を返します。
func (c Caller) ScopeValue() string {
	switch c.Role {
	case RoleManager:
		return c.Branch
	case RoleDistrictManager:
		return c.District
	default:
		return ""
	}
}
