package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

var (
	testHolderID = uuid.MustParse("7b0f8f7e-3f64-4f1a-9c26-0f3db15a2f11")
	testDate     = time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	testTime     = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func reservationRows(ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "location_id", "officiant_id", "holder_id", "reservation_date",
		"start_time", "end_time", "status", "language_override",
		"cancellation_reason", "cancelled_at", "created_at", "updated_at",
	})
	for _, id := range ids {
		rows.AddRow(
			id, int64(1), nil, testHolderID.String(), testDate,
			"10:00", "10:45", "reserved", false,
			nil, nil, testTime, testTime,
		)
	}
	return rows
}

func TestRepository_Create(t *testing.T) {
	newReservation := func() *domain.Reservation {
		return &domain.Reservation{
			LocationID: 1,
			HolderID:   testHolderID,
			Date:       testDate,
			StartTime:  types.TimeString("10:00"),
			EndTime:    types.TimeString("10:45"),
			Status:     domain.StatusReserved,
		}
	}

	t.Run("успешная вставка", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO time_slots")).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), testTime, testTime))

		created, err := repo.Create(context.Background(), newReservation())

		require.NoError(t, err)
		assert.Equal(t, int64(42), created.ID)
		assert.Equal(t, testTime, created.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	conflictCodes := []struct {
		name string
		code pq.ErrorCode
	}{
		{name: "нарушение уникальности", code: "23505"},
		{name: "нарушение exclusion constraint", code: "23P01"},
		{name: "сбой сериализации", code: "40001"},
	}

	for _, tc := range conflictCodes {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)

			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO time_slots")).
				WillReturnError(&pq.Error{Code: tc.code})

			_, err := repo.Create(context.Background(), newReservation())

			assert.ErrorIs(t, err, ErrSlotConflict)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("прочие ошибки БД не маскируются под конфликт", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO time_slots")).
			WillReturnError(&pq.Error{Code: "42P01"})

		_, err := repo.Create(context.Background(), newReservation())

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSlotConflict)
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("резервация найдена", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, location_id, officiant_id, holder_id, reservation_date, start_time, end_time, status, language_override, cancellation_reason, cancelled_at, created_at, updated_at FROM time_slots WHERE id = $1")).
			WithArgs(int64(42)).
			WillReturnRows(reservationRows(42))

		res, err := repo.GetByID(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
		assert.Equal(t, testHolderID, res.HolderID)
		assert.Equal(t, types.TimeString("10:00"), res.StartTime)
		assert.Equal(t, domain.StatusReserved, res.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("резервация не найдена", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta("FROM time_slots")).
			WithArgs(int64(999)).
			WillReturnRows(reservationRows())

		_, err := repo.GetByID(context.Background(), 999)

		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRepository_GetActiveByLocationAndDate(t *testing.T) {
	repo, mock := newTestRepository(t)

	// Вне транзакции запрос идет без FOR UPDATE
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY start_time ASC")).
		WithArgs(int64(1), testDate, "reserved").
		WillReturnRows(reservationRows(1, 2))

	reservations, err := repo.GetActiveByLocationAndDate(context.Background(), 1, testDate)

	require.NoError(t, err)
	assert.Len(t, reservations, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetActiveByOfficiantAndRange(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE officiant_id = $1 AND status = $2 AND reservation_date >= $3 AND reservation_date <= $4")).
		WithArgs(int64(7), "reserved", testDate, testDate).
		WillReturnRows(reservationRows(5))

	reservations, err := repo.GetActiveByOfficiantAndRange(context.Background(), 7, testDate, testDate)

	require.NoError(t, err)
	assert.Len(t, reservations, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByHolder(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE holder_id = $1 ORDER BY reservation_date DESC, start_time DESC")).
		WithArgs(testHolderID).
		WillReturnRows(reservationRows(3, 2, 1))

	reservations, err := repo.GetByHolder(context.Background(), testHolderID)

	require.NoError(t, err)
	assert.Len(t, reservations, 3)
}

func TestRepository_Cancel(t *testing.T) {
	t.Run("успешная отмена", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE time_slots SET")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Cancel(context.Background(), 42, "перенос церемонии")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("уже отмененная резервация", func(t *testing.T) {
		repo, mock := newTestRepository(t)

		// Фильтр status = reserved не совпал: строка уже освобождена
		mock.ExpectExec(regexp.QuoteMeta("UPDATE time_slots SET")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Cancel(context.Background(), 42, "")

		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestRepository_ForUpdateOnlyInTransaction(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("FOR UPDATE$").
		WillReturnRows(reservationRows())

	// Плейн-контекст не содержит транзакции, суффикс не добавляется
	// и ожидание с FOR UPDATE не совпадает
	_, err := repo.GetActiveByLocationAndDate(context.Background(), 1, testDate)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)
}
