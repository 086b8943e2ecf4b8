package promotion

import (
	"errors"
	"fmt"

	"github.com/brehanbank/promotion-service/internal/core/identity"
)

var (
	ErrEmployeeNotFound    = errors.New("promotion: employee not found")
	ErrInvalidEmployeeID   = errors.New("promotion: invalid employee id")
	ErrUnknownField        = errors.New("promotion: unknown score field")
	ErrValueOutOfRange     = errors.New("promotion: score value out of range")
	ErrFieldNotOwnedByRole = errors.New("promotion: field not owned by role")
	ErrOutOfScope          = errors.New("promotion: employee out of caller scope")
	ErrVersionConflict     = errors.New("promotion: employee version conflict")
	ErrConcurrencyConflict = errors.New("promotion: concurrent update retries exhausted")
	ErrInvalidPageSize     = errors.New("promotion: invalid page size")
	ErrInvalidPageToken    = errors.New("promotion: invalid page token")
)

// DenialReason は認可拒否の型付き理由です。
type DenialReason string

const (
	// DenialFieldNotOwnedByRole は役割がそのフィールドの書き込み権限を持たないことを示します。
	DenialFieldNotOwnedByRole DenialReason = "field_not_owned_by_role"
	// DenialOutOfScope は役割は一致するが組織スコープが一致しないことを示します。
	DenialOutOfScope DenialReason = "out_of_scope"
)

// AuthorizationError は認可拒否の詳細を保持します。
// 「不正な値」と「書き込めないフィールド」を呼び出し元が区別できるようにします。
type AuthorizationError struct {
	Reason DenialReason
	Role   identity.Role
	Field  Field
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("promotion: role %q denied for field %q: %s", e.Role, e.Field, e.Reason)
}

// Unwrap は理由に対応するセンチネルエラーを返します。
func (e *AuthorizationError) Unwrap() error {
	switch e.Reason {
	case DenialOutOfScope:
		return ErrOutOfScope
	default:
		return ErrFieldNotOwnedByRole
	}
}

// ValidationError はスコア値が宣言された境界の外であることを表します。
// 永続化前に検出され、部分的な書き込みは発生しません。
type ValidationError struct {
	Field Field
	Value float64
	Max   float64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("promotion: %s must be between 0 and %g, got %g", e.Field, e.Max, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrValueOutOfRange
}
