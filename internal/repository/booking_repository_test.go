package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-labs/studyhive-api/internal/models"
)

func newBookingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "session_id", "student_email", "tutor_email", "price", "session_date", "created_at"}).
		AddRow("b1", "s1", "student@example.com", "tutor@example.com", "50", time.Now(), time.Now())
}

func TestBookingRepositoryListByScopeGlobal(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, session_id, student_email, tutor_email, price, session_date, created_at FROM bookings ORDER BY created_at ASC, id ASC")).
		WillReturnRows(bookingRows())

	bookings, err := repo.ListByScope(context.Background(), models.BookingScope{})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListByScopeTutor(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE tutor_email = $1 ORDER BY created_at ASC, id ASC")).
		WithArgs("tutor@example.com").
		WillReturnRows(bookingRows())

	_, err := repo.ListByScope(context.Background(), models.BookingScope{TutorEmail: "tutor@example.com"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListByScopeStudent(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE student_email = $1 ORDER BY created_at ASC, id ASC")).
		WithArgs("student@example.com").
		WillReturnRows(bookingRows())

	_, err := repo.ListByScope(context.Background(), models.BookingScope{StudentEmail: "student@example.com"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "s1", "student@example.com", "tutor@example.com", "50", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	booking := &models.Booking{SessionID: "s1", StudentEmail: "student@example.com", TutorEmail: "tutor@example.com", Price: "50"}
	require.NoError(t, repo.Create(context.Background(), booking))
	assert.NotEmpty(t, booking.ID)
	assert.False(t, booking.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
