package promotion

import "github.com/brehanbank/promotion-service/internal/core/identity"

// scopeCheck は役割とフィールドが一致した後に適用される組織スコープの検査です。
// nil は任意の従業員への書き込みを許可します。
type scopeCheck func(caller identity.Caller, e *Employee) bool

// grantRule は「どの役割がどのフィールドを書けるか」を 1 行で表します。
type grantRule struct {
	role  identity.Role
	field Field
	scope scopeCheck
}

// grantTable は認可の全ルールです。上から順に評価され、最初に一致した行が適用されます。
// 役割やフィールドの追加はこの表の編集だけで完結します。
var grantTable = []grantRule{
	{role: identity.RoleAdmin, field: FieldIndPMS25},
	{role: identity.RoleAdmin, field: FieldTotalExp20},
	{role: identity.RoleManager, field: FieldTMDRec20, scope: sameBranch},
	{role: identity.RoleDistrictManager, field: FieldDisRec15, scope: sameDistrict},
}

func sameBranch(caller identity.Caller, e *Employee) bool {
	return caller.Branch != "" && caller.Branch == e.Branch
}

func sameDistrict(caller identity.Caller, e *Employee) bool {
	return caller.District != "" && caller.District == e.District
}

// Authorize は呼び出し元が指定フィールドへ書き込めるかを判定します。
// 純粋な判定であり副作用はありません。拒否は型付きの理由を持つ
// *AuthorizationError として返却されます。
func Authorize(caller identity.Caller, e *Employee, field Field) error {
	for _, rule := range grantTable {
		if rule.role != caller.Role || rule.field != field {
			continue
		}
		if rule.scope != nil && !rule.scope(caller, e) {
			return &AuthorizationError{Reason: DenialOutOfScope, Role: caller.Role, Field: field}
		}
		return nil
	}
	return &AuthorizationError{Reason: DenialFieldNotOwnedByRole, Role: caller.Role, Field: field}
}
