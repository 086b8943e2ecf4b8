package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brehanbank/promotion-service/internal/adapters/http/handler"
	"github.com/brehanbank/promotion-service/internal/core/identity"
	"github.com/brehanbank/promotion-service/internal/core/promotion"
)

type fakePromotionUseCase struct {
	updateFunc  func(ctx context.Context, caller identity.Caller, in promotion.UpdateRecommendationInput) (*promotion.Employee, error)
	getFunc     func(ctx context.Context, caller identity.Caller, id string) (*promotion.Employee, error)
	listFunc    func(ctx context.Context, caller identity.Caller, in promotion.ListEmployeesInput) (*promotion.ListEmployeesResult, error)
	pendingFunc func(ctx context.Context, caller identity.Caller) ([]*promotion.Employee, error)
}

func (f *fakePromotionUseCase) UpdateRecommendation(ctx context.Context, caller identity.Caller, in promotion.UpdateRecommendationInput) (*promotion.Employee, error) {
	return f.updateFunc(ctx, caller, in)
}

func (f *fakePromotionUseCase) GetEmployee(ctx context.Context, caller identity.Caller, id string) (*promotion.Employee, error) {
	return f.getFunc(ctx, caller, id)
}

func (f *fakePromotionUseCase) ListEmployees(ctx context.Context, caller identity.Caller, in promotion.ListEmployeesInput) (*promotion.ListEmployeesResult, error) {
	return f.listFunc(ctx, caller, in)
}

func (f *fakePromotionUseCase) PendingEmployees(ctx context.Context, caller identity.Caller) ([]*promotion.Employee, error) {
	return f.pendingFunc(ctx, caller)
}

func newEmployeeApp(usecase promotion.UseCase) *fiber.App {
	app := fiber.New()
	h := handler.NewEmployeeHandler(usecase)
	api := app.Group("/api", handler.CallerMiddleware())
	api.Get("/employees", h.List)
	api.Get("/employees/pending", h.Pending)
	api.Get("/employees/:id", h.Get)
	api.Put("/employees/:id/recommendation", h.UpdateRecommendation)
	return app
}

func floatPtr(v float64) *float64 { return &v }

func sampleEmployee() *promotion.Employee {
	return &promotion.Employee{
		ID:         "emp-1",
		FileNumber: "BR-1001",
		FullName:   "Abebe Kebede",
		Branch:     "Bole Branch",
		District:   "East District",
		IndPMS25:   floatPtr(20),
		TotalExp20: floatPtr(15),
		Total:      35,
		Version:    1,
		UpdatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEmployeeHandler_UpdateRecommendation_Success(t *testing.T) {
	t.Parallel()

	usecase := &fakePromotionUseCase{
		updateFunc: func(_ context.Context, caller identity.Caller, in promotion.UpdateRecommendationInput) (*promotion.Employee, error) {
			if caller.Role != identity.RoleManager {
				t.Errorf("unexpected role: %s", caller.Role)
			}
			if in.EmployeeID != "emp-1" || in.Field != promotion.FieldTMDRec20 || in.Value != 18.5 {
				t.Errorf("unexpected input: %+v", in)
			}
			e := sampleEmployee()
			e.TMDRec20 = floatPtr(18.5)
			e.Total = 53.5
			return e, nil
		},
	}
	app := newEmployeeApp(usecase)

	req := httptest.NewRequest(http.MethodPut, "/api/employees/emp-1/recommendation",
		strings.NewReader(`{"field":"tmdrec20","value":18.5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", "manager")
	req.Header.Set("X-Branch", "Bole Branch")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var body struct {
		TMDRec20      *float64 `json:"tmdrec20"`
		Total         float64  `json:"total"`
		WorkflowState string   `json:"workflow_state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TMDRec20 == nil || *body.TMDRec20 != 18.5 {
		t.Errorf("unexpected tmdrec20: %v", body.TMDRec20)
	}
	if body.Total != 53.5 {
		t.Errorf("unexpected total: %v", body.Total)
	}
}

func TestEmployeeHandler_UpdateRecommendation_UnknownField(t *testing.T) {
	t.Parallel()

	app := newEmployeeApp(&fakePromotionUseCase{})

	req := httptest.NewRequest(http.MethodPut, "/api/employees/emp-1/recommendation",
		strings.NewReader(`{"field":"bonus99","value":5}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", "admin")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestEmployeeHandler_UpdateRecommendation_Forbidden(t *testing.T) {
	t.Parallel()

	usecase := &fakePromotionUseCase{
		updateFunc: func(context.Context, identity.Caller, promotion.UpdateRecommendationInput) (*promotion.Employee, error) {
			return nil, &promotion.AuthorizationError{
				Reason: promotion.DenialFieldNotOwnedByRole,
				Role:   identity.RoleManager,
				Field:  promotion.FieldDisRec15,
			}
		},
	}
	app := newEmployeeApp(usecase)

	req := httptest.NewRequest(http.MethodPut, "/api/employees/emp-1/recommendation",
		strings.NewReader(`{"field":"disrec15","value":10}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", "manager")
	req.Header.Set("X-Branch", "Bole Branch")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestEmployeeHandler_UpdateRecommendation_Conflict(t *testing.T) {
	t.Parallel()

	usecase := &fakePromotionUseCase{
		updateFunc: func(context.Context, identity.Caller, promotion.UpdateRecommendationInput) (*promotion.Employee, error) {
			return nil, promotion.ErrConcurrencyConflict
		},
	}
	app := newEmployeeApp(usecase)

	req := httptest.NewRequest(http.MethodPut, "/api/employees/emp-1/recommendation",
		strings.NewReader(`{"field":"indpms25","value":10}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", "admin")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestEmployeeHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	usecase := &fakePromotionUseCase{
		getFunc: func(context.Context, identity.Caller, string) (*promotion.Employee, error) {
			return nil, promotion.ErrEmployeeNotFound
		},
	}
	app := newEmployeeApp(usecase)

	req := httptest.NewRequest(http.MethodGet, "/api/employees/emp-9", nil)
	req.Header.Set("X-Role", "manager")
	req.Header.Set("X-Branch", "Bole Branch")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestEmployeeHandler_List_Success(t *testing.T) {
	t.Parallel()

	usecase := &fakePromotionUseCase{
		listFunc: func(_ context.Context, _ identity.Caller, in promotion.ListEmployeesInput) (*promotion.ListEmployeesResult, error) {
			if in.Search != "abebe" {
				t.Errorf("unexpected search: %q", in.Search)
			}
			return &promotion.ListEmployeesResult{
				Employees:     []*promotion.Employee{sampleEmployee()},
				NextPageToken: "50",
			}, nil
		},
	}
	app := newEmployeeApp(usecase)

	req := httptest.NewRequest(http.MethodGet, "/api/employees?search=abebe", nil)
	req.Header.Set("X-Role", "district_manager")
	req.Header.Set("X-District", "East District")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var body struct {
		Employees     []json.RawMessage `json:"employees"`
		NextPageToken string            `json:"next_page_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Employees) != 1 {
		t.Errorf("unexpected employee count: %d", len(body.Employees))
	}
	if body.NextPageToken != "50" {
		t.Errorf("unexpected next page token: %q", body.NextPageToken)
	}
}

func TestEmployeeHandler_Pending_Success(t *testing.T) {
	t.Parallel()

	usecase := &fakePromotionUseCase{
		pendingFunc: func(_ context.Context, caller identity.Caller) ([]*promotion.Employee, error) {
			if caller.Role != identity.RoleManager {
				t.Errorf("unexpected role: %s", caller.Role)
			}
			return []*promotion.Employee{sampleEmployee()}, nil
		},
	}
	app := newEmployeeApp(usecase)

	req := httptest.NewRequest(http.MethodGet, "/api/employees/pending", nil)
	req.Header.Set("X-Role", "manager")
	req.Header.Set("X-Branch", "Bole Branch")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestEmployeeHandler_UnknownRole(t *testing.T) {
	t.Parallel()

	app := newEmployeeApp(&fakePromotionUseCase{})

	req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
	req.Header.Set("X-Role", "intern")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}
