package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brehanbank/promotion-service/internal/core/promotion"
	pgdb "github.com/brehanbank/promotion-service/internal/platform/db/postgres"
)

const checkViolationCode = "23514"

const employeeColumns = `
               e.id,
               e.file_number,
               e.full_name,
               e.sex,
               e.job_grade,
               e.job_category,
               e.branch,
               e.district,
               e.department,
               e.region,
               e.cluster,
               e.twin_branch,
               e.current_position,
               e.new_position,
               e.educational_level,
               e.field_of_study,
               e.employment_date,
               e.last_dop,
               e.indpms25,
               e.totalexp20,
               e.tmdrec20,
               e.disrec15,
               e.total,
               e.version,
               e.created_at,
               e.updated_at`

// EmployeeRepository は PostgreSQL を利用した従業員レコード永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// FindByID は ID で従業員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*promotion.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT`+employeeColumns+`
          FROM employees e
         WHERE e.id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// UpdateScores はスコア構成要素と合計値を compare-and-swap で書き込みます。
// version が一致した場合のみ行が更新され、version は 1 増加します。
// 一致する行が無い場合は ErrVersionConflict を返し、レコード自体の存否は
// 呼び出し側の再読込に委ねます。
func (r *EmployeeRepository) UpdateScores(ctx context.Context, e *promotion.Employee) (*promotion.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees e
           SET indpms25 = $1,
               totalexp20 = $2,
               tmdrec20 = $3,
               disrec15 = $4,
               total = $5,
               version = e.version + 1,
               updated_at = $6
         WHERE e.id = $7 AND e.version = $8
        RETURNING`+employeeColumns+`
    `,
		nullableFloat(e.IndPMS25),
		nullableFloat(e.TotalExp20),
		nullableFloat(e.TMDRec20),
		nullableFloat(e.DisRec15),
		e.Total,
		e.UpdatedAt,
		e.ID,
		e.Version,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, promotion.ErrEmployeeNotFound) {
			return nil, promotion.ErrVersionConflict
		}
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// List は可視範囲と検索条件を適用した一覧を取得します。
func (r *EmployeeRepository) List(ctx context.Context, filter promotion.ListFilter) ([]*promotion.Employee, string, error) {
	if filter.Limit <= 0 {
		return nil, "", promotion.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", promotion.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 6)
	conditions := scopeConditions(filter.Scope, &args)

	if filter.Branch != "" {
		args = append(args, filter.Branch)
		conditions = append(conditions, "e.branch = $"+strconv.Itoa(len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conditions = append(conditions, "e.department = $"+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "(e.full_name ILIKE "+placeholder+" OR e.file_number ILIKE "+placeholder+")")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limitWithBuffer)
	limitPlaceholder := "$" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPlaceholder := "$" + strconv.Itoa(len(args))

	query := `
        SELECT` + employeeColumns + `
          FROM employees e` + whereClause + `
         ORDER BY e.full_name ASC, e.id ASC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*promotion.Employee, 0, filter.Limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, "", translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateEmployeePgError(err)
	}

	var nextToken string
	if len(employees) == limitWithBuffer {
		employees = employees[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	return employees, nextToken, nil
}

// ListByScope は可視範囲内の全従業員を返します。保留キューの導出に使われます。
func (r *EmployeeRepository) ListByScope(ctx context.Context, scope promotion.ScopeFilter) ([]*promotion.Employee, error) {
	args := make([]any, 0, 2)
	conditions := scopeConditions(scope, &args)

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
        SELECT` + employeeColumns + `
          FROM employees e` + whereClause + `
         ORDER BY e.full_name ASC, e.id ASC
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	var employees []*promotion.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

func scopeConditions(scope promotion.ScopeFilter, args *[]any) []string {
	var conditions []string
	if scope.Branch != "" {
		*args = append(*args, scope.Branch)
		conditions = append(conditions, "e.branch = $"+strconv.Itoa(len(*args)))
	}
	if scope.District != "" {
		*args = append(*args, scope.District)
		conditions = append(conditions, "e.district = $"+strconv.Itoa(len(*args)))
	}
	return conditions
}

func scanEmployee(row pgx.Row) (*promotion.Employee, error) {
	var (
		e              promotion.Employee
		employmentDate sql.NullTime
		lastDOP        sql.NullTime
		indpms25       sql.NullFloat64
		totalexp20     sql.NullFloat64
		tmdrec20       sql.NullFloat64
		disrec15       sql.NullFloat64
	)

	if err := row.Scan(
		&e.ID,
		&e.FileNumber,
		&e.FullName,
		&e.Sex,
		&e.JobGrade,
		&e.JobCategory,
		&e.Branch,
		&e.District,
		&e.Department,
		&e.Region,
		&e.Cluster,
		&e.TwinBranch,
		&e.CurrentPosition,
		&e.NewPosition,
		&e.EducationalLevel,
		&e.FieldOfStudy,
		&employmentDate,
		&lastDOP,
		&indpms25,
		&totalexp20,
		&tmdrec20,
		&disrec15,
		&e.Total,
		&e.Version,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, promotion.ErrEmployeeNotFound
		}
		return nil, err
	}

	e.EmploymentDate = nullTimeToDate(employmentDate)
	e.LastDOP = nullTimeToDate(lastDOP)
	e.IndPMS25 = nullFloatToPtr(indpms25)
	e.TotalExp20 = nullFloatToPtr(totalexp20)
	e.TMDRec20 = nullFloatToPtr(tmdrec20)
	e.DisRec15 = nullFloatToPtr(disrec15)

	return &e, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return promotion.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolationCode {
		return promotion.ErrValueOutOfRange
	}

	return err
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullFloatToPtr(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	f := value.Float64
	return &f
}

func nullTimeToDate(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &date
}
