package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type fakeApptRepo struct {
	byID      map[string]*domain.Appointment
	cancelled map[string]string
}

func newFakeApptRepo(appointments ...*domain.Appointment) *fakeApptRepo {
	repo := &fakeApptRepo{
		byID:      make(map[string]*domain.Appointment),
		cancelled: make(map[string]string),
	}
	for _, apt := range appointments {
		repo.byID[apt.ID] = apt
	}
	return repo
}

func (f *fakeApptRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	apt, ok := f.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return apt, nil
}

func (f *fakeApptRepo) GetActiveByTenantAndDate(_ context.Context, tenantID int64, date time.Time) ([]*domain.Appointment, error) {
	result := make([]*domain.Appointment, 0)
	for _, apt := range f.byID {
		if apt.TenantID == tenantID && apt.Date.Equal(date) && apt.IsActive() {
			result = append(result, apt)
		}
	}
	return result, nil
}

func (f *fakeApptRepo) Cancel(_ context.Context, id string, reason string) error {
	if _, ok := f.byID[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	f.cancelled[id] = reason
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func confirmedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              "5e0442ae-1d57-4f8a-9f1e-000000000001",
		TenantID:        1,
		CustomerPhone:   "+70000000001",
		Date:            testDate,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	apt := confirmedAppointment()
	svc := NewService(newFakeApptRepo(apt), noopLogger{})

	t.Run("owner can read own appointment", func(t *testing.T) {
		resp, err := svc.GetByID(ctx, apt.ID, "+70000000001")
		require.NoError(t, err)
		assert.Equal(t, apt.ID, resp.ID)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, "10:30", resp.EndTime)
	})

	t.Run("foreign phone is rejected", func(t *testing.T) {
		_, err := svc.GetByID(ctx, apt.ID, "+70000000002")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "5e0442ae-1d57-4f8a-9f1e-ffffffffffff", "+70000000001")
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels own appointment", func(t *testing.T) {
		apt := confirmedAppointment()
		repo := newFakeApptRepo(apt)
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(ctx, apt.ID, &models.CancelAppointmentRequest{
			CustomerPhone:      "+70000000001",
			CancellationReason: "передумал",
		})
		require.NoError(t, err)
		assert.Equal(t, "передумал", repo.cancelled[apt.ID])
	})

	t.Run("foreign phone cannot cancel", func(t *testing.T) {
		apt := confirmedAppointment()
		repo := newFakeApptRepo(apt)
		svc := NewService(repo, noopLogger{})

		err := svc.Cancel(ctx, apt.ID, &models.CancelAppointmentRequest{CustomerPhone: "+70000000002"})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, repo.cancelled)
	})

	t.Run("already cancelled appointment", func(t *testing.T) {
		apt := confirmedAppointment()
		apt.Status = domain.StatusCancelled
		svc := NewService(newFakeApptRepo(apt), noopLogger{})

		err := svc.Cancel(ctx, apt.ID, &models.CancelAppointmentRequest{CustomerPhone: "+70000000001"})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("completed appointment cannot be cancelled", func(t *testing.T) {
		apt := confirmedAppointment()
		apt.Status = domain.StatusCompleted
		svc := NewService(newFakeApptRepo(apt), noopLogger{})

		err := svc.Cancel(ctx, apt.ID, &models.CancelAppointmentRequest{CustomerPhone: "+70000000001"})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("reason over limit is rejected", func(t *testing.T) {
		apt := confirmedAppointment()
		svc := NewService(newFakeApptRepo(apt), noopLogger{})

		err := svc.Cancel(ctx, apt.ID, &models.CancelAppointmentRequest{
			CustomerPhone:      "+70000000001",
			CancellationReason: strings.Repeat("x", domain.MaxReasonLength+1),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_ListForDate(t *testing.T) {
	ctx := context.Background()

	active := confirmedAppointment()
	cancelled := confirmedAppointment()
	cancelled.ID = "5e0442ae-1d57-4f8a-9f1e-000000000002"
	cancelled.StartTime = "11:00"
	cancelled.Status = domain.StatusCancelled

	svc := NewService(newFakeApptRepo(active, cancelled), noopLogger{})

	resp, err := svc.ListForDate(ctx, 1, testDate)
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, active.ID, resp.Appointments[0].ID)
}
