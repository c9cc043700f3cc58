package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type statsBookingRepository interface {
	ListByScope(ctx context.Context, scope models.BookingScope) ([]models.Booking, error)
}

type statsUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int, error)
}

type statsSessionRepository interface {
	Count(ctx context.Context) (int, error)
}

// StatsService aggregates booking records into role-scoped dashboard reports.
// Scope narrowing happens in the repository filter so an unscoped booking set
// is never pulled into memory. Reports are recomputed per request and cached
// briefly in Redis.
type StatsService struct {
	bookings statsBookingRepository
	users    statsUserRepository
	sessions statsSessionRepository
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewStatsService constructs a StatsService.
func NewStatsService(bookings statsBookingRepository, users statsUserRepository, sessions statsSessionRepository, cache *CacheService, logger *zap.Logger, cacheTTL time.Duration) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &StatsService{bookings: bookings, users: users, sessions: sessions, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// Admin produces the global report. The boolean reports cache utilisation.
func (s *StatsService) Admin(ctx context.Context) (*models.AdminStatsReport, bool, error) {
	const cacheKey = "stats:admin"
	var cached models.AdminStatsReport
	if hit := s.tryCache(ctx, cacheKey, &cached); hit {
		return &cached, true, nil
	}

	bookings, err := s.bookings.ListByScope(ctx, models.BookingScope{})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}

	totalCount, totalPrice, chart := buildSeries(bookings)

	totalStudents, err := s.users.CountByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	totalSessions, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count sessions")
	}

	report := &models.AdminStatsReport{
		TotalBookings: totalCount,
		TotalPrice:    totalPrice,
		TotalStudents: totalStudents,
		TotalSessions: totalSessions,
		Chart:         chart,
	}
	s.persistCache(ctx, cacheKey, report)
	return report, false, nil
}

// Tutor produces the per-tutor report for the authenticated identity.
func (s *StatsService) Tutor(ctx context.Context, email string) (*models.TutorStatsReport, bool, error) {
	cacheKey := "stats:tutor:" + email
	var cached models.TutorStatsReport
	if hit := s.tryCache(ctx, cacheKey, &cached); hit {
		return &cached, true, nil
	}

	bookings, err := s.bookings.ListByScope(ctx, models.BookingScope{TutorEmail: email})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}
	memberSince, err := s.memberSince(ctx, email)
	if err != nil {
		return nil, false, err
	}

	totalCount, totalPrice, chart := buildSeries(bookings)
	report := &models.TutorStatsReport{
		TotalBookings: totalCount,
		TotalPrice:    totalPrice,
		MemberSince:   memberSince,
		Chart:         chart,
	}
	s.persistCache(ctx, cacheKey, report)
	return report, false, nil
}

// Student produces the per-student report for the authenticated identity.
func (s *StatsService) Student(ctx context.Context, email string) (*models.StudentStatsReport, bool, error) {
	cacheKey := "stats:student:" + email
	var cached models.StudentStatsReport
	if hit := s.tryCache(ctx, cacheKey, &cached); hit {
		return &cached, true, nil
	}

	bookings, err := s.bookings.ListByScope(ctx, models.BookingScope{StudentEmail: email})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}
	memberSince, err := s.memberSince(ctx, email)
	if err != nil {
		return nil, false, err
	}

	totalCount, totalPrice, chart := buildSeries(bookings)
	report := &models.StudentStatsReport{
		TotalBookings: totalCount,
		TotalPrice:    totalPrice,
		MemberSince:   memberSince,
		Chart:         chart,
	}
	s.persistCache(ctx, cacheKey, report)
	return report, false, nil
}

// memberSince reads the registration timestamp off the principal record. A
// missing record here is a data-integrity fault: the caller passed the
// authorization gate, so a profile must exist. It is propagated, never
// silently defaulted.
func (s *StatsService) memberSince(ctx context.Context, email string) (time.Time, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "principal record missing for authenticated identity")
		}
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load principal")
	}
	return user.RegisteredAt, nil
}

func (s *StatsService) tryCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *StatsService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// buildSeries computes the totals and the chart series in a single pass over
// the bookings, preserving retrieval order. The series starts with the fixed
// ("Day", "Sales") header so it is self-describing to the charting consumer.
func buildSeries(bookings []models.Booking) (int, float64, models.ChartSeries) {
	chart := models.NewChartSeries()
	var totalPrice float64
	for _, booking := range bookings {
		price := parsePrice(booking.Price)
		totalPrice += price
		chart = append(chart, []interface{}{chartLabel(booking.SessionDate), price})
	}
	return len(bookings), totalPrice, chart
}

// parsePrice coerces the raw price column into a non-negative amount. Missing
// or unparseable values contribute zero; aggregation never rejects a record
// over a bad price.
func parsePrice(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// chartLabel renders a booking date as "day/month" with no zero padding and
// no year.
func chartLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
}
