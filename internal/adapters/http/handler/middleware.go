package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/brehanbank/promotion-service/internal/core/identity"
)

const callerLocalKey = "caller"

// 呼び出し元の身元は上流の認証コラボレーターが検証済みのヘッダーで届きます。
// このサブシステムはその内容をそのまま信頼します（トークン検証は非目標）。
const (
	headerRole     = "X-Role"
	headerBranch   = "X-Branch"
	headerDistrict = "X-District"
)

// CallerMiddleware は信頼済みヘッダーから CallerIdentity を構築して
// リクエストローカルに格納します。役割が欠落または未定義の場合は 401 を返します。
func CallerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := identity.Role(strings.TrimSpace(c.Get(headerRole)))
		caller, err := identity.NewCaller(
			role,
			strings.TrimSpace(c.Get(headerBranch)),
			strings.TrimSpace(c.Get(headerDistrict)),
		)
		if err != nil {
			return jsonError(c, fiber.StatusUnauthorized, "unknown or missing caller role")
		}

		c.Locals(callerLocalKey, caller)
		return c.Next()
	}
}

// CallerFromCtx はミドルウェアが格納した CallerIdentity を取り出します。
func CallerFromCtx(c *fiber.Ctx) (identity.Caller, bool) {
	caller, ok := c.Locals(callerLocalKey).(identity.Caller)
	return caller, ok
}
