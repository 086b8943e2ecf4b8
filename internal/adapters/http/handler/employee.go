package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brehanbank/promotion-service/internal/core/promotion"
)

// EmployeeHandler は従業員関連のエンドポイントを提供します。
type EmployeeHandler struct {
	usecase  promotion.UseCase
	validate *validator.Validate
}

// NewEmployeeHandler は EmployeeHandler を生成します。
func NewEmployeeHandler(usecase promotion.UseCase) *EmployeeHandler {
	return &EmployeeHandler{
		usecase:  usecase,
		validate: validator.New(),
	}
}

// List は呼び出し元のスコープ内の従業員一覧を返します。
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	caller, ok := CallerFromCtx(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "missing caller identity")
	}

	result, err := h.usecase.ListEmployees(c.Context(), caller, promotion.ListEmployeesInput{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Branch:     c.Query("branch"),
		PageSize:   c.QueryInt("page_size"),
		PageToken:  c.Query("page_token"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(listEmployeesResponse{
		Employees:     toEmployeeResponses(result.Employees),
		NextPageToken: result.NextPageToken,
	})
}

// Get は従業員 1 件を返します。スコープ外はありません扱いです。
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	caller, ok := CallerFromCtx(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "missing caller identity")
	}

	employee, err := h.usecase.GetEmployee(c.Context(), caller, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toEmployeeResponse(employee))
}

// Pending は呼び出し元の役割で推薦待ちの従業員一覧を返します。
func (h *EmployeeHandler) Pending(c *fiber.Ctx) error {
	caller, ok := CallerFromCtx(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "missing caller identity")
	}

	employees, err := h.usecase.PendingEmployees(c.Context(), caller)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(listEmployeesResponse{Employees: toEmployeeResponses(employees)})
}

// UpdateRecommendation はスコア構成要素を 1 つ書き込みます。
func (h *EmployeeHandler) UpdateRecommendation(c *fiber.Ctx) error {
	caller, ok := CallerFromCtx(c)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "missing caller identity")
	}

	var req updateRecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondError(c, err)
	}

	employee, err := h.usecase.UpdateRecommendation(c.Context(), caller, promotion.UpdateRecommendationInput{
		EmployeeID: c.Params("id"),
		Field:      promotion.Field(req.Field),
		Value:      req.Value,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toEmployeeResponse(employee))
}
