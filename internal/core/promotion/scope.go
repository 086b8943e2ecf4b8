package promotion

import "github.com/brehanbank/promotion-service/internal/core/identity"

// ScopeFilter は一覧・保留キュー取得の前に適用される可視範囲です。
// 書き込みの認可は Authorize の責務であり、このゲートは読み取りの
// 可視性だけを制御します。両者は独立した制御として常に両方が適用されます。
type ScopeFilter struct {
	Branch   string
	District string
}

// ScopeFor は呼び出し元の役割から可視範囲を導出します。
// admin は無制限、manager は自支店、district_manager は自地区に制限されます。
func ScopeFor(caller identity.Caller) ScopeFilter {
	switch caller.Role {
	case identity.RoleManager:
		return ScopeFilter{Branch: caller.Branch}
	case identity.RoleDistrictManager:
		return ScopeFilter{District: caller.District}
	default:
		return ScopeFilter{}
	}
}

// Allows は従業員が可視範囲内かどうかを返します。
func (f ScopeFilter) Allows(e *Employee) bool {
	if e == nil {
		return false
	}
	if f.Branch != "" && e.Branch != f.Branch {
		return false
	}
	if f.District != "" && e.District != f.District {
		return false
	}
	return true
}
