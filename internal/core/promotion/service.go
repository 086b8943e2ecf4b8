package promotion

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brehanbank/promotion-service/internal/core/identity"
	"github.com/brehanbank/promotion-service/internal/core/notification"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// NotificationSink はディスパッチャーが生成したイベントの届け先です。
// スコア書き込みのコミット後に呼び出されるため、失敗してもスコアは巻き戻りません。
type NotificationSink interface {
	Append(ctx context.Context, events []notification.Notification) error
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200

	// maxWriteAttempts は楽観的同時実行制御が競合した際の read-modify-write 再試行上限です。
	maxWriteAttempts = 3
)

// UseCase は昇進評価ワークフローの公開インターフェースです。
type UseCase interface {
	UpdateRecommendation(ctx context.Context, caller identity.Caller, in UpdateRecommendationInput) (*Employee, error)
	GetEmployee(ctx context.Context, caller identity.Caller, id string) (*Employee, error)
	ListEmployees(ctx context.Context, caller identity.Caller, in ListEmployeesInput) (*ListEmployeesResult, error)
	PendingEmployees(ctx context.Context, caller identity.Caller) ([]*Employee, error)
}

// Service は昇進評価ワークフローのユースケースをまとめます。
type Service struct {
	repo   Repository
	sink   NotificationSink
	clock  Clock
	tx     TransactionManager
	logger *zap.Logger
}

// NewService は Service を生成します。
func NewService(repo Repository, sink NotificationSink, clock Clock, tx TransactionManager, logger *zap.Logger) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, sink: sink, clock: clock, tx: tx, logger: logger}
}

// UpdateRecommendationInput はスコア書き込みの入力です。
type UpdateRecommendationInput struct {
	EmployeeID string
	Field      Field
	Value      float64
}

// ListEmployeesInput は一覧取得の入力です。
type ListEmployeesInput struct {
	Search     string
	Department string
	Branch     string
	PageSize   int
	PageToken  string
}

// ListEmployeesResult は一覧取得の結果です。
type ListEmployeesResult struct {
	Employees     []*Employee
	NextPageToken string
}

// UpdateRecommendation はスコア構成要素を 1 つ書き込みます。
// 認可 → 書き込み＋再計算（同一トランザクション） → 分類 → 通知の順で進みます。
// 書き込みが競合に敗れた場合は read-modify-write を最初からやり直すため、
// より古い値が合計に勝ち残ることはありません。
func (s *Service) UpdateRecommendation(ctx context.Context, caller identity.Caller, in UpdateRecommendationInput) (*Employee, error) {
	if strings.TrimSpace(in.EmployeeID) == "" {
		return nil, ErrInvalidEmployeeID
	}
	if !IsValidField(in.Field) {
		return nil, ErrUnknownField
	}

	value := QuantizeScore(in.Value)
	if err := ValidateComponent(in.Field, value); err != nil {
		return nil, err
	}

	var (
		before  *Employee
		updated *Employee
	)

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
			existing, err := s.repo.FindByID(txCtx, in.EmployeeID)
			if err != nil {
				return err
			}

			if err := Authorize(caller, existing, in.Field); err != nil {
				return err
			}

			before = existing.Clone()

			existing.SetComponent(in.Field, value)
			Recompute(existing)
			existing.UpdatedAt = s.clock.Now()

			result, err := s.repo.UpdateScores(txCtx, existing)
			if err != nil {
				return err
			}

			updated = result
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, ErrVersionConflict) {
			if attempt == maxWriteAttempts {
				return nil, ErrConcurrencyConflict
			}
			continue
		}
		return nil, err
	}

	s.dispatch(ctx, before, updated)
	return updated, nil
}

// dispatch はコミット済みの書き込みから通知イベントを導出してシンクへ追記します。
// 配送はベストエフォートであり、失敗はログに残すだけで呼び出し元には伝播しません。
func (s *Service) dispatch(ctx context.Context, before, updated *Employee) {
	events := OnRecommendationWritten(before, updated)
	if len(events) == 0 || s.sink == nil {
		return
	}
	if err := s.sink.Append(ctx, events); err != nil {
		s.logger.Warn("notification delivery failed",
			zap.String("employee_id", updated.ID),
			zap.Int("events", len(events)),
			zap.Error(err),
		)
	}
}

// GetEmployee は従業員レコードを 1 件取得します。可視範囲外のレコードは
// エラーではなく存在しないものとして扱われます。
func (s *Service) GetEmployee(ctx context.Context, caller identity.Caller, id string) (*Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidEmployeeID
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if !ScopeFor(caller).Allows(found) {
			return ErrEmployeeNotFound
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は可視範囲を適用した上で検索条件に一致する従業員を返します。
func (s *Service) ListEmployees(ctx context.Context, caller identity.Caller, in ListEmployeesInput) (*ListEmployeesResult, error) {
	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	filter := ListFilter{
		Scope:      ScopeFor(caller),
		Search:     strings.TrimSpace(in.Search),
		Department: strings.TrimSpace(in.Department),
		Branch:     strings.TrimSpace(in.Branch),
		Limit:      limit,
		Offset:     offset,
	}

	var (
		employees []*Employee
		nextToken string
	)

	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, token, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		employees = result
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListEmployeesResult{Employees: employees, NextPageToken: nextToken}, nil
}

// PendingEmployees は呼び出し元の役割が次のアクションを負う従業員の保留キューを返します。
// admin にはキューが存在しないため常に空です。
func (s *Service) PendingEmployees(ctx context.Context, caller identity.Caller) ([]*Employee, error) {
	var wanted WorkflowState
	switch caller.Role {
	case identity.RoleManager:
		wanted = StateNeedsManagerRecommendation
	case identity.RoleDistrictManager:
		wanted = StateNeedsDistrictRecommendation
	default:
		return []*Employee{}, nil
	}

	var pending []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		employees, err := s.repo.ListByScope(txCtx, ScopeFor(caller))
		if err != nil {
			return err
		}
		pending = make([]*Employee, 0, len(employees))
		for _, e := range employees {
			if Classify(e) == wanted {
				pending = append(pending, e)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return pending, nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
