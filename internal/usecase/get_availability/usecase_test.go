package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeScheduleResolver struct {
	day      *schedule.DayResolution
	dayErr   error
	duration int
}

func (f *fakeScheduleResolver) ResolveDay(_ context.Context, _ int64, _ time.Time) (*schedule.DayResolution, error) {
	if f.dayErr != nil {
		return nil, f.dayErr
	}
	return f.day, nil
}

func (f *fakeScheduleResolver) ResolveDuration(_ context.Context, _ int64, _ *string, granularityMinutes int) (int, error) {
	if f.duration > 0 {
		return f.duration, nil
	}
	return granularityMinutes, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetActiveByTenantAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeHoldLister struct {
	holds []*domain.Hold
}

func (f *fakeHoldLister) ListHolds(_ context.Context, _ int64, _ string) ([]*domain.Hold, error) {
	return f.holds, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// 2026-09-14 - понедельник
var (
	testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
)

func openDay() *schedule.DayResolution {
	return &schedule.DayResolution{
		Date:               testDate,
		OpenTime:           "09:00",
		CloseTime:          "18:00",
		GranularityMinutes: 30,
		Location:           time.UTC,
	}
}

func newTestUseCase(resolver *fakeScheduleResolver, repo *fakeAppointmentRepo, holds *fakeHoldLister, now time.Time) *UseCase {
	return NewUseCase(resolver, repo, holds, 15, noopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: now})
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("full open day yields full grid", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay()},
			&fakeAppointmentRepo{},
			&fakeHoldLister{},
			testNow,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		// 09:00 - 18:00 с шагом 30 минут: 18 слотов
		require.Len(t, resp.Available, 18)
		assert.Equal(t, types.TimeString("09:00"), resp.Available[0])
		assert.Equal(t, types.TimeString("17:30"), resp.Available[17])
		assert.Empty(t, resp.Booked)
		require.NotNil(t, resp.WorkingHours)
		assert.Equal(t, types.TimeString("09:00"), resp.WorkingHours.Open)
		assert.Equal(t, types.TimeString("18:00"), resp.WorkingHours.Close)
	})

	t.Run("booked appointment removes its slot", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay()},
			&fakeAppointmentRepo{appointments: []*domain.Appointment{
				{TenantID: 1, Date: testDate, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
			}},
			&fakeHoldLister{},
			testNow,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		assert.Len(t, resp.Available, 17)
		assert.NotContains(t, resp.Available, types.TimeString("10:00"))
		assert.Contains(t, resp.Available, types.TimeString("09:30"))
		assert.Contains(t, resp.Available, types.TimeString("10:30"))
		assert.Equal(t, []types.TimeString{"10:00"}, resp.Booked)
	})

	t.Run("long appointment blocks overlapping candidates", func(t *testing.T) {
		// Запись 10:00-11:00 занимает кандидатов 10:00 и 10:30
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay()},
			&fakeAppointmentRepo{appointments: []*domain.Appointment{
				{TenantID: 1, Date: testDate, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
			}},
			&fakeHoldLister{},
			testNow,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		assert.NotContains(t, resp.Available, types.TimeString("10:00"))
		assert.NotContains(t, resp.Available, types.TimeString("10:30"))
		// Граничащие слоты не задеты: строгие неравенства пересечения
		assert.Contains(t, resp.Available, types.TimeString("09:30"))
		assert.Contains(t, resp.Available, types.TimeString("11:00"))
	})

	t.Run("service duration shrinks tail of grid", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay(), duration: 60},
			&fakeAppointmentRepo{},
			&fakeHoldLister{},
			testNow,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		// Часовая услуга: последний старт 17:00, шаг остаётся 30 минут
		assert.Equal(t, types.TimeString("17:00"), resp.Available[len(resp.Available)-1])
		assert.Equal(t, 60, resp.DurationMinutes)
	})

	t.Run("foreign hold hides slot", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay()},
			&fakeAppointmentRepo{},
			&fakeHoldLister{holds: []*domain.Hold{
				{TenantID: 1, Date: "2026-09-14", StartTime: "11:00", CustomerPhone: "+70000000002",
					DurationMinutes: 30, ExpiresAt: testNow.Add(2 * time.Minute)},
			}},
			testNow,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate, CustomerPhone: "+70000000001"})
		require.NoError(t, err)

		assert.NotContains(t, resp.Available, types.TimeString("11:00"))
	})

	t.Run("own hold does not hide slot", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay()},
			&fakeAppointmentRepo{},
			&fakeHoldLister{holds: []*domain.Hold{
				{TenantID: 1, Date: "2026-09-14", StartTime: "11:00", CustomerPhone: "+70000000001",
					DurationMinutes: 30, ExpiresAt: testNow.Add(2 * time.Minute)},
			}},
			testNow,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate, CustomerPhone: "+70000000001"})
		require.NoError(t, err)

		assert.Contains(t, resp.Available, types.TimeString("11:00"))
	})

	t.Run("expired hold is ignored", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay()},
			&fakeAppointmentRepo{},
			&fakeHoldLister{holds: []*domain.Hold{
				{TenantID: 1, Date: "2026-09-14", StartTime: "11:00", CustomerPhone: "+70000000002",
					DurationMinutes: 30, ExpiresAt: testNow.Add(-time.Minute)},
			}},
			testNow,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate, CustomerPhone: "+70000000001"})
		require.NoError(t, err)

		assert.Contains(t, resp.Available, types.TimeString("11:00"))
	})

	t.Run("same day applies lead time cutoff", func(t *testing.T) {
		// Сейчас 12:05, лид-тайм 15 минут: отсечка 12:20, первый слот 12:30
		now := time.Date(2026, 9, 14, 12, 5, 0, 0, time.UTC)
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay()},
			&fakeAppointmentRepo{},
			&fakeHoldLister{},
			now,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		require.NotEmpty(t, resp.Available)
		assert.Equal(t, types.TimeString("12:30"), resp.Available[0])
	})

	t.Run("tenant lead time override wins", func(t *testing.T) {
		now := time.Date(2026, 9, 14, 12, 5, 0, 0, time.UTC)
		day := openDay()
		lead := 120
		day.MinLeadMinutes = &lead

		uc := newTestUseCase(&fakeScheduleResolver{day: day}, &fakeAppointmentRepo{}, &fakeHoldLister{}, now)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		// Отсечка 14:05, первый слот 14:30
		require.NotEmpty(t, resp.Available)
		assert.Equal(t, types.TimeString("14:30"), resp.Available[0])
	})

	t.Run("past date returns no available slots", func(t *testing.T) {
		now := time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC)
		uc := newTestUseCase(
			&fakeScheduleResolver{day: openDay()},
			&fakeAppointmentRepo{appointments: []*domain.Appointment{
				{TenantID: 1, Date: testDate, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusConfirmed},
			}},
			&fakeHoldLister{},
			now,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		assert.Empty(t, resp.Available)
		assert.Equal(t, []types.TimeString{"10:00"}, resp.Booked)
	})

	t.Run("blocked day", func(t *testing.T) {
		day := openDay()
		day.Blocked = true

		uc := newTestUseCase(&fakeScheduleResolver{day: day}, &fakeAppointmentRepo{}, &fakeHoldLister{}, testNow)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		assert.True(t, resp.Blocked)
		assert.Empty(t, resp.Available)
	})

	t.Run("closed day", func(t *testing.T) {
		day := openDay()
		day.Closed = true

		uc := newTestUseCase(&fakeScheduleResolver{day: day}, &fakeAppointmentRepo{}, &fakeHoldLister{}, testNow)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		assert.True(t, resp.Closed)
		assert.Empty(t, resp.Available)
	})

	t.Run("no schedule is a response, not an error", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeScheduleResolver{dayErr: schedule.ErrNoSchedule},
			&fakeAppointmentRepo{},
			&fakeHoldLister{},
			testNow,
		)

		resp, err := uc.Execute(ctx, &Request{TenantID: 1, Date: testDate})
		require.NoError(t, err)

		assert.True(t, resp.NoSchedule)
		assert.Empty(t, resp.Available)
	})

	t.Run("invalid tenant id", func(t *testing.T) {
		uc := newTestUseCase(&fakeScheduleResolver{day: openDay()}, &fakeAppointmentRepo{}, &fakeHoldLister{}, testNow)

		_, err := uc.Execute(ctx, &Request{TenantID: 0, Date: testDate})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGenerateAvailableSlots(t *testing.T) {
	t.Run("adjacent busy intervals do not overlap", func(t *testing.T) {
		busy := []busyInterval{{startMin: 600, endMin: 630}} // 10:00-10:30

		slots, err := generateAvailableSlots("09:00", "11:00", 30, 30, busy, -1)
		require.NoError(t, err)

		assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:30"}, slots)
	})

	t.Run("slot must end by closing time", func(t *testing.T) {
		slots, err := generateAvailableSlots("09:00", "10:00", 30, 45, nil, -1)
		require.NoError(t, err)

		// 09:30 + 45 минут заканчивается после закрытия
		assert.Equal(t, []types.TimeString{"09:00"}, slots)
	})

	t.Run("window shorter than duration yields nothing", func(t *testing.T) {
		slots, err := generateAvailableSlots("09:00", "09:20", 30, 30, nil, -1)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}
