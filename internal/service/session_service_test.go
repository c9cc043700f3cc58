package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-labs/studyhive-api/internal/models"
	appErrors "github.com/studyhive-labs/studyhive-api/pkg/errors"
)

type fakeSessionRepo struct {
	session    *models.Session
	updated    *models.Session
	deleted    string
	lastStatus models.SessionStatus
	lastFee    *float64
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	f.session = session
	return nil
}

func (f *fakeSessionRepo) FindByID(context.Context, string) (*models.Session, error) {
	return f.session, nil
}

func (f *fakeSessionRepo) List(context.Context, models.ListingParams) ([]models.Session, int, error) {
	return []models.Session{}, 0, nil
}

func (f *fakeSessionRepo) ListByTutor(context.Context, string) ([]models.Session, error) {
	return []models.Session{}, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, session *models.Session) error {
	f.updated = session
	return nil
}

func (f *fakeSessionRepo) UpdateStatus(_ context.Context, _ string, status models.SessionStatus, fee *float64) error {
	f.lastStatus = status
	f.lastFee = fee
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	f.deleted = id
	return nil
}

func validSessionRequest() CreateSessionRequest {
	return CreateSessionRequest{
		Title:               "Intro to Calculus",
		RegistrationEndDate: time.Now().Add(7 * 24 * time.Hour),
		SessionDate:         time.Now().Add(14 * 24 * time.Hour),
		Fee:                 25,
	}
}

func TestSessionServiceCreateStartsPending(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := NewSessionService(repo, nil, nil)

	session, err := svc.Create(context.Background(), "tutor@example.com", validSessionRequest())
	require.NoError(t, err)
	assert.Equal(t, models.SessionPending, session.Status)
	assert.Equal(t, "tutor@example.com", session.TutorEmail)
}

func TestSessionServiceGetRejectsMalformedID(t *testing.T) {
	svc := NewSessionService(&fakeSessionRepo{}, nil, nil)

	_, err := svc.Get(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSessionServiceUpdateEnforcesOwnership(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeSessionRepo{session: &models.Session{ID: id, TutorEmail: "owner@example.com"}}
	svc := NewSessionService(repo, nil, nil)

	req := UpdateSessionRequest{
		Title:               "Updated",
		RegistrationEndDate: time.Now(),
		SessionDate:         time.Now(),
	}

	_, err := svc.Update(context.Background(), id, "intruder@example.com", models.RoleTutor, req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.updated)

	_, err = svc.Update(context.Background(), id, "owner@example.com", models.RoleTutor, req)
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, "Updated", repo.updated.Title)
}

func TestSessionServiceUpdateAllowsAdminOverride(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeSessionRepo{session: &models.Session{ID: id, TutorEmail: "owner@example.com"}}
	svc := NewSessionService(repo, nil, nil)

	_, err := svc.Update(context.Background(), id, "admin@example.com", models.RoleAdmin, UpdateSessionRequest{
		Title:               "Admin edit",
		RegistrationEndDate: time.Now(),
		SessionDate:         time.Now(),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
}

func TestSessionServiceModerate(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeSessionRepo{session: &models.Session{ID: id, Status: models.SessionPending}}
	svc := NewSessionService(repo, nil, nil)

	fee := 40.0
	session, err := svc.Moderate(context.Background(), id, ModerateSessionRequest{Status: models.SessionApproved, Fee: &fee})
	require.NoError(t, err)
	assert.Equal(t, models.SessionApproved, session.Status)
	assert.Equal(t, 40.0, session.Fee)
	require.NotNil(t, repo.lastFee)

	_, err = svc.Moderate(context.Background(), id, ModerateSessionRequest{Status: "booked"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSessionServiceModerateRejectIgnoresFee(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeSessionRepo{session: &models.Session{ID: id, Status: models.SessionPending, Fee: 10}}
	svc := NewSessionService(repo, nil, nil)

	fee := 99.0
	session, err := svc.Moderate(context.Background(), id, ModerateSessionRequest{Status: models.SessionRejected, Fee: &fee})
	require.NoError(t, err)
	assert.Equal(t, models.SessionRejected, session.Status)
	assert.Equal(t, 10.0, session.Fee)
	assert.Nil(t, repo.lastFee)
}

func TestSessionServiceDeleteEnforcesOwnership(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeSessionRepo{session: &models.Session{ID: id, TutorEmail: "owner@example.com"}}
	svc := NewSessionService(repo, nil, nil)

	err := svc.Delete(context.Background(), id, "intruder@example.com", models.RoleTutor)
	require.Error(t, err)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), id, "owner@example.com", models.RoleTutor))
	assert.Equal(t, id, repo.deleted)
}
