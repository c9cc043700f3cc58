package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-labs/studyhive-api/internal/models"
)

type fakeStatsBookings struct {
	bookings  []models.Booking
	err       error
	lastScope models.BookingScope
}

func (f *fakeStatsBookings) ListByScope(_ context.Context, scope models.BookingScope) ([]models.Booking, error) {
	f.lastScope = scope
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakeStatsUsers struct {
	user     *models.User
	findErr  error
	students int
}

func (f *fakeStatsUsers) FindByEmail(context.Context, string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.user, nil
}

func (f *fakeStatsUsers) CountByRole(context.Context, models.Role) (int, error) {
	return f.students, nil
}

type fakeStatsSessions struct {
	total int
}

func (f *fakeStatsSessions) Count(context.Context) (int, error) {
	return f.total, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatsServiceAdminTotalsAndChart(t *testing.T) {
	bookings := &fakeStatsBookings{bookings: []models.Booking{
		{Price: "50", SessionDate: day(2024, time.March, 5)},
		{Price: "not-a-number", SessionDate: day(2024, time.November, 21)},
		{Price: "30", SessionDate: day(2024, time.January, 9)},
	}}
	svc := NewStatsService(bookings, &fakeStatsUsers{students: 12}, &fakeStatsSessions{total: 4}, nil, nil, time.Minute)

	report, cacheHit, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, models.BookingScope{}, bookings.lastScope)

	assert.Equal(t, 3, report.TotalBookings)
	assert.Equal(t, 80.0, report.TotalPrice)
	assert.Equal(t, 12, report.TotalStudents)
	assert.Equal(t, 4, report.TotalSessions)

	require.Len(t, report.Chart, 4)
	assert.Equal(t, []interface{}{"Day", "Sales"}, report.Chart[0])
	assert.Equal(t, []interface{}{"5/3", 50.0}, report.Chart[1])
	assert.Equal(t, []interface{}{"21/11", 0.0}, report.Chart[2])
	assert.Equal(t, []interface{}{"9/1", 30.0}, report.Chart[3])
}

func TestStatsServiceChartPreservesRetrievalOrder(t *testing.T) {
	// Rows arrive in insertion order, deliberately not sorted by date. The
	// chart must keep that order rather than re-sorting.
	bookings := &fakeStatsBookings{bookings: []models.Booking{
		{Price: "10", SessionDate: day(2024, time.December, 31)},
		{Price: "20", SessionDate: day(2024, time.January, 1)},
	}}
	svc := NewStatsService(bookings, &fakeStatsUsers{}, &fakeStatsSessions{}, nil, nil, time.Minute)

	report, _, err := svc.Admin(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Chart, 3)
	assert.Equal(t, "31/12", report.Chart[1][0])
	assert.Equal(t, "1/1", report.Chart[2][0])
}

func TestStatsServiceEmptyScopeYieldsHeaderOnlyChart(t *testing.T) {
	svc := NewStatsService(&fakeStatsBookings{}, &fakeStatsUsers{}, &fakeStatsSessions{}, nil, nil, time.Minute)

	report, _, err := svc.Admin(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.TotalBookings)
	assert.Zero(t, report.TotalPrice)
	require.Len(t, report.Chart, 1)
	assert.Equal(t, []interface{}{"Day", "Sales"}, report.Chart[0])
}

func TestStatsServiceTutorScopesAndMemberSince(t *testing.T) {
	registered := day(2023, time.June, 15)
	bookings := &fakeStatsBookings{bookings: []models.Booking{
		{Price: "100", SessionDate: day(2024, time.February, 2), TutorEmail: "tutor@example.com"},
	}}
	users := &fakeStatsUsers{user: &models.User{Email: "tutor@example.com", RegisteredAt: registered}}
	svc := NewStatsService(bookings, users, &fakeStatsSessions{}, nil, nil, time.Minute)

	report, _, err := svc.Tutor(context.Background(), "tutor@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.BookingScope{TutorEmail: "tutor@example.com"}, bookings.lastScope)
	assert.Equal(t, 1, report.TotalBookings)
	assert.Equal(t, 100.0, report.TotalPrice)
	assert.Equal(t, registered, report.MemberSince)
}

func TestStatsServiceStudentScopes(t *testing.T) {
	bookings := &fakeStatsBookings{}
	users := &fakeStatsUsers{user: &models.User{Email: "s@example.com", RegisteredAt: day(2024, time.May, 1)}}
	svc := NewStatsService(bookings, users, &fakeStatsSessions{}, nil, nil, time.Minute)

	_, _, err := svc.Student(context.Background(), "s@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.BookingScope{StudentEmail: "s@example.com"}, bookings.lastScope)
}

func TestStatsServiceMissingPrincipalIsAnError(t *testing.T) {
	users := &fakeStatsUsers{findErr: sql.ErrNoRows}
	svc := NewStatsService(&fakeStatsBookings{}, users, &fakeStatsSessions{}, nil, nil, time.Minute)

	_, _, err := svc.Tutor(context.Background(), "ghost@example.com")
	require.Error(t, err)

	_, _, err = svc.Student(context.Background(), "ghost@example.com")
	require.Error(t, err)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"50":     50,
		" 12.5 ": 12.5,
		"":       0,
		"free":   0,
		"-20":    0,
	}
	for raw, want := range cases {
		assert.Equal(t, want, parsePrice(raw), "price %q", raw)
	}
}

func TestChartLabelIsUnpadded(t *testing.T) {
	assert.Equal(t, "5/3", chartLabel(day(2024, time.March, 5)))
	assert.Equal(t, "21/11", chartLabel(day(2024, time.November, 21)))
}
