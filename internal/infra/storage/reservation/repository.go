package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/pkg/dbmetrics"
	"github.com/huwelijksplanner/HP-BookingService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие проигранную гонку за слот
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
	pgSerializationError = "40001"
)

// Repository репозиторий для работы с резервациями слотов
// Единственное место с разделяемым изменяемым состоянием в движке
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var reservationColumns = []string{
	"id",
	"location_id",
	"officiant_id",
	"holder_id",
	"reservation_date",
	"start_time",
	"end_time",
	"status",
	"language_override",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create вставляет новую резервацию под ограничением уникальности и
// exclusion constraint на пересечение интервалов (см. migrations).
// При нарушении ограничения возвращает ErrSlotConflict: другой вызов
// выиграл гонку, вызывающая сторона пересчитывает доступность и повторяет
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns(
			"location_id",
			"officiant_id",
			"holder_id",
			"reservation_date",
			"start_time",
			"end_time",
			"status",
			"language_override",
		).
		Values(
			res.LocationID,
			res.OfficiantID,
			res.HolderID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.Status,
			res.LanguageOverride,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isConflict(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает резервацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetActiveByLocationAndDate получает активные резервации локации на дату.
// Внутри транзакции добавляет FOR UPDATE: блокировка строк на время
// проверки вместимости в usecase резервирования
func (r *Repository) GetActiveByLocationAndDate(ctx context.Context, locationID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("time_slots").
		Where(squirrel.Eq{"location_id": locationID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.Eq{"status": domain.StatusReserved}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByLocationAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByLocationAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetActiveByOfficiantAndRange получает активные резервации церемониймейстера
// в диапазоне дат - его busy интервалы для композиции доступности
func (r *Repository) GetActiveByOfficiantAndRange(ctx context.Context, officiantID int64, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("time_slots").
		Where(squirrel.Eq{"officiant_id": officiantID}).
		Where(squirrel.Eq{"status": domain.StatusReserved}).
		Where(squirrel.GtOrEq{"reservation_date": from}).
		Where(squirrel.LtOrEq{"reservation_date": to}).
		OrderBy("reservation_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByOfficiantAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByOfficiantAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByHolder получает резервации дела (dossier), включая отменённые
func (r *Repository) GetByHolder(ctx context.Context, holderID uuid.UUID) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("time_slots").
		Where(squirrel.Eq{"holder_id": holderID}).
		OrderBy("reservation_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByHolder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHolder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Cancel освобождает слот: проставляет статус cancelled и причину.
// Отменённая строка сохраняется для истории, но больше не блокирует
// будущие резервации того же интервала (exclusion constraint частичный)
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusReserved}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	// Строка либо не существует, либо уже отменена: гонка cancel/cancel
	// разрешается детерминированно, вторая отмена получает ошибку
	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// isConflict проверяет, что ошибка БД означает проигранную гонку за слот
func isConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgUniqueViolation || code == pgExclusionViolation || code == pgSerializationError
	}
	return false
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.LocationID,
		&res.OfficiantID,
		&res.HolderID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.LanguageOverride,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
