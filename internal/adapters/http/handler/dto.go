package handler

import (
	"time"

	"github.com/brehanbank/promotion-service/internal/core/notification"
	"github.com/brehanbank/promotion-service/internal/core/promotion"
)

const dateLayout = "2006-01-02"

// updateRecommendationRequest はスコア書き込みのリクエストボディです。
type updateRecommendationRequest struct {
	Field string  `json:"field" validate:"required,oneof=indpms25 totalexp20 tmdrec20 disrec15"`
	Value float64 `json:"value" validate:"gte=0"`
}

// employeeResponse は従業員レコードの JSON 表現です。
// フィールド名は既存クライアントとの互換のため snake_case を維持します。
type employeeResponse struct {
	ID         string `json:"id"`
	FileNumber string `json:"file_number"`
	FullName   string `json:"full_name"`

	Branch     string `json:"branch,omitempty"`
	District   string `json:"district,omitempty"`
	Department string `json:"department,omitempty"`
	Region     string `json:"region,omitempty"`
	Cluster    string `json:"cluster,omitempty"`
	TwinBranch string `json:"twin_branch,omitempty"`

	Sex              string `json:"sex,omitempty"`
	JobGrade         string `json:"job_grade,omitempty"`
	JobCategory      string `json:"job_category,omitempty"`
	CurrentPosition  string `json:"current_position,omitempty"`
	NewPosition      string `json:"new_position,omitempty"`
	EducationalLevel string `json:"educational_level,omitempty"`
	FieldOfStudy     string `json:"field_of_study,omitempty"`
	EmploymentDate   string `json:"employment_date,omitempty"`
	LastDOP          string `json:"last_dop,omitempty"`

	IndPMS25   *float64 `json:"indpms25"`
	TotalExp20 *float64 `json:"totalexp20"`
	TMDRec20   *float64 `json:"tmdrec20"`
	DisRec15   *float64 `json:"disrec15"`
	Total      float64  `json:"total"`

	WorkflowState string    `json:"workflow_state"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// listEmployeesResponse は一覧取得のレスポンスです。
type listEmployeesResponse struct {
	Employees     []employeeResponse `json:"employees"`
	NextPageToken string             `json:"next_page_token,omitempty"`
}

// notificationResponse は通知の JSON 表現です。
type notificationResponse struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	RecipientRole  string    `json:"recipient_role"`
	RecipientScope string    `json:"recipient_scope"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

func toEmployeeResponse(e *promotion.Employee) employeeResponse {
	return employeeResponse{
		ID:               e.ID,
		FileNumber:       e.FileNumber,
		FullName:         e.FullName,
		Branch:           e.Branch,
		District:         e.District,
		Department:       e.Department,
		Region:           e.Region,
		Cluster:          e.Cluster,
		TwinBranch:       e.TwinBranch,
		Sex:              e.Sex,
		JobGrade:         e.JobGrade,
		JobCategory:      e.JobCategory,
		CurrentPosition:  e.CurrentPosition,
		NewPosition:      e.NewPosition,
		EducationalLevel: e.EducationalLevel,
		FieldOfStudy:     e.FieldOfStudy,
		EmploymentDate:   formatDate(e.EmploymentDate),
		LastDOP:          formatDate(e.LastDOP),
		IndPMS25:         e.IndPMS25,
		TotalExp20:       e.TotalExp20,
		TMDRec20:         e.TMDRec20,
		DisRec15:         e.DisRec15,
		Total:            e.Total,
		WorkflowState:    string(promotion.Classify(e)),
		UpdatedAt:        e.UpdatedAt,
	}
}

func toEmployeeResponses(employees []*promotion.Employee) []employeeResponse {
	responses := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, toEmployeeResponse(e))
	}
	return responses
}

func toNotificationResponse(n *notification.Notification) notificationResponse {
	return notificationResponse{
		ID:             n.ID,
		EmployeeID:     n.EmployeeID,
		EmployeeName:   n.EmployeeName,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		RecipientRole:  string(n.RecipientRole),
		RecipientScope: n.RecipientScope,
		Read:           n.Read,
		CreatedAt:      n.CreatedAt,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
