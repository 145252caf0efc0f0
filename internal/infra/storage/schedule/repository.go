package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/pkg/dbmetrics"
	"github.com/huwelijksplanner/HP-BookingService/pkg/psqlbuilder"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// Repository репозиторий для работы с правилами повторения и блокировками дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var ruleColumns = []string{
	"id",
	"resource_id",
	"kind",
	"day_of_week",
	"day_of_month",
	"week_of_month",
	"expression",
	"start_time",
	"end_time",
	"valid_from",
	"valid_until",
	"description",
	"is_active",
	"created_at",
	"updated_at",
}

// CreateRule создает новое правило повторения
func (r *Repository) CreateRule(ctx context.Context, rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("recurring_rules").
		Columns(
			"resource_id",
			"kind",
			"day_of_week",
			"day_of_month",
			"week_of_month",
			"expression",
			"start_time",
			"end_time",
			"valid_from",
			"valid_until",
			"description",
			"is_active",
		).
		Values(
			rule.ResourceID,
			rule.Kind,
			rule.DayOfWeek,
			rule.DayOfMonth,
			rule.WeekOfMonth,
			rule.Expression,
			rule.StartTime,
			rule.EndTime,
			rule.ValidFrom,
			rule.ValidUntil,
			rule.Description,
			rule.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRule - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetRuleByID получает правило по ID
func (r *Repository) GetRuleByID(ctx context.Context, id int64) (*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("recurring_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRuleByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRuleByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ListRulesByResource получает все правила ресурса, упорядоченные по времени начала
func (r *Repository) ListRulesByResource(ctx context.Context, resourceID int64) ([]*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("recurring_rules").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRulesByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRulesByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.RecurringRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRulesByResource - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRulesByResource - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// DeleteRule удаляет правило повторения
// Удаление правила немедленно влияет на следующую композицию доступности:
// расширение всегда пересчитывается, никогда не кэшируется
func (r *Repository) DeleteRule(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("recurring_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteRule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

var blockedDateColumns = []string{
	"id",
	"resource_id",
	"blocked_date",
	"all_day",
	"start_time",
	"end_time",
	"reason",
	"created_at",
	"updated_at",
}

// CreateBlockedDate создает новую блокировку даты
func (r *Repository) CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns(
			"resource_id",
			"blocked_date",
			"all_day",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			blocked.ResourceID,
			blocked.Date,
			blocked.AllDay,
			nullableTime(blocked.StartTime),
			nullableTime(blocked.EndTime),
			blocked.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&blocked.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}

	blocked.CreatedAt = createdAt.Time
	blocked.UpdatedAt = updatedAt.Time

	return blocked, nil
}

// ListBlockedDatesByResource получает блокировки ресурса в диапазоне дат [from, to]
func (r *Repository) ListBlockedDatesByResource(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedDateColumns...).
		From("blocked_dates").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.GtOrEq{"blocked_date": from}).
		Where(squirrel.LtOrEq{"blocked_date": to}).
		OrderBy("blocked_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDatesByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDatesByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blockedDates := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		blocked, err := scanBlockedDate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDatesByResource - scan row: %v", ErrScanRow, err)
		}
		blockedDates = append(blockedDates, blocked)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDatesByResource - rows error: %v", ErrScanRow, err)
	}

	return blockedDates, nil
}

// DeleteBlockedDate удаляет блокировку даты
func (r *Repository) DeleteBlockedDate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.RecurringRule, error) {
	var rule domain.RecurringRule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.ResourceID,
		&rule.Kind,
		&rule.DayOfWeek,
		&rule.DayOfMonth,
		&rule.WeekOfMonth,
		&rule.Expression,
		&rule.StartTime,
		&rule.EndTime,
		&rule.ValidFrom,
		&rule.ValidUntil,
		&rule.Description,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func scanBlockedDate(row rowScanner) (*domain.BlockedDate, error) {
	var blocked domain.BlockedDate
	var startTime, endTime sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&blocked.ID,
		&blocked.ResourceID,
		&blocked.Date,
		&blocked.AllDay,
		&startTime,
		&endTime,
		&blocked.Reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startTime.Valid {
		blocked.StartTime = types.TimeString(startTime.String)
	}
	if endTime.Valid {
		blocked.EndTime = types.TimeString(endTime.String)
	}
	blocked.CreatedAt = createdAt.Time
	blocked.UpdatedAt = updatedAt.Time

	return &blocked, nil
}

// nullableTime конвертирует пустое время в NULL для частичных блокировок
func nullableTime(t types.TimeString) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
