package reserve_slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/slotstore"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// fakeApptRepo in-memory репозиторий с уникальным индексом слота
type fakeApptRepo struct {
	mu      sync.Mutex
	created []*domain.Appointment
	err     error
}

func (f *fakeApptRepo) Create(_ context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	for _, existing := range f.created {
		if existing.TenantID == apt.TenantID &&
			existing.Date.Equal(apt.Date) &&
			existing.StartTime == apt.StartTime &&
			existing.IsActive() {
			return nil, appointmentRepo.ErrSlotConflict
		}
	}

	stored := *apt
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeApptRepo) activeStartTimes() map[types.TimeString]bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	taken := make(map[types.TimeString]bool, len(f.created))
	for _, apt := range f.created {
		if apt.IsActive() {
			taken[apt.StartTime] = true
		}
	}
	return taken
}

// fakeAvailability отдаёт сетку слотов за вычетом записей из репозитория,
// имитируя честный пересчёт внутри критической секции
type fakeAvailability struct {
	repo       *fakeApptRepo
	grid       []types.TimeString
	duration   int
	blocked    bool
	closed     bool
	noSchedule bool
	err        error
}

func (f *fakeAvailability) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	if f.err != nil {
		return nil, f.err
	}

	resp := &getAvailability.Response{
		Date:            req.Date,
		TenantID:        req.TenantID,
		Available:       []types.TimeString{},
		Booked:          []types.TimeString{},
		DurationMinutes: f.duration,
		Blocked:         f.blocked,
		Closed:          f.closed,
		NoSchedule:      f.noSchedule,
	}
	if f.blocked || f.closed || f.noSchedule {
		return resp, nil
	}

	taken := f.repo.activeStartTimes()
	for _, slot := range f.grid {
		if !taken[slot] {
			resp.Available = append(resp.Available, slot)
		}
	}
	return resp, nil
}

// recordingStore обёртка над MemoryStore, считающая захваты и освобождения
type recordingStore struct {
	*slotstore.MemoryStore
	mu        sync.Mutex
	acquired  int
	released  int
	holds     int
	cleared   int
	lockBusy  bool
	holdError error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: slotstore.NewMemoryStore()}
}

func (s *recordingStore) AcquireLock(ctx context.Context, tenantID int64, date string, startTime types.TimeString, ttl time.Duration) (bool, error) {
	if s.lockBusy {
		return false, nil
	}
	ok, err := s.MemoryStore.AcquireLock(ctx, tenantID, date, startTime, ttl)
	if ok {
		s.mu.Lock()
		s.acquired++
		s.mu.Unlock()
	}
	return ok, err
}

func (s *recordingStore) ReleaseLock(ctx context.Context, tenantID int64, date string, startTime types.TimeString) error {
	s.mu.Lock()
	s.released++
	s.mu.Unlock()
	return s.MemoryStore.ReleaseLock(ctx, tenantID, date, startTime)
}

func (s *recordingStore) SetHold(ctx context.Context, hold *domain.Hold, ttl time.Duration) error {
	if s.holdError != nil {
		return s.holdError
	}
	s.mu.Lock()
	s.holds++
	s.mu.Unlock()
	return s.MemoryStore.SetHold(ctx, hold, ttl)
}

func (s *recordingStore) ClearHold(ctx context.Context, tenantID int64, date string, startTime types.TimeString) error {
	s.mu.Lock()
	s.cleared++
	s.mu.Unlock()
	return s.MemoryStore.ClearHold(ctx, tenantID, date, startTime)
}

func (s *recordingStore) counts() (acquired, released int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acquired, s.released
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

var testNow = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		LockTTL:               10 * time.Second,
		HoldTTLMinSeconds:     30,
		HoldTTLMaxSeconds:     300,
		HoldTTLDefaultSeconds: 120,
	}
}

func fullGrid() []types.TimeString {
	return []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}
}

func newTestSetup() (*UseCase, *fakeApptRepo, *recordingStore) {
	repo := &fakeApptRepo{}
	store := newRecordingStore()
	availability := &fakeAvailability{repo: repo, grid: fullGrid(), duration: 30}

	uc := NewUseCase(availability, repo, store, testConfig(), noopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: testNow})
	return uc, repo, store
}

func validRequest() *Request {
	return &Request{
		TenantID:      1,
		CustomerPhone: "+70000000001",
		Date:          "2026-09-14",
		StartTime:     "10:00",
	}
}

func TestUseCase_Execute_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms free slot", func(t *testing.T) {
		uc, repo, store := newTestSetup()

		resp, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		assert.Equal(t, StatusConfirmed, resp.Status)
		assert.NotEmpty(t, resp.AppointmentID)
		assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
		assert.Equal(t, 30, resp.DurationMinutes)
		assert.Nil(t, resp.HoldExpiresAt)

		require.Len(t, repo.created, 1)
		assert.Equal(t, domain.StatusConfirmed, repo.created[0].Status)
		assert.Equal(t, "+70000000001", repo.created[0].CustomerPhone)

		acquired, released := store.counts()
		assert.Equal(t, 1, acquired)
		assert.Equal(t, 1, released)
	})

	t.Run("second reserve gets slot taken with next suggestion", func(t *testing.T) {
		uc, _, _ := newTestSetup()

		_, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		_, err = uc.Execute(ctx, validRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSlotTaken)

		var slotTaken *SlotTakenError
		require.ErrorAs(t, err, &slotTaken)
		require.NotNil(t, slotTaken.SuggestedTime)
		assert.Equal(t, types.TimeString("10:30"), *slotTaken.SuggestedTime)
	})

	t.Run("suggestion wraps to earliest when nothing after", func(t *testing.T) {
		uc, _, _ := newTestSetup()

		req := validRequest()
		req.StartTime = "11:00"
		_, err := uc.Execute(ctx, req)
		require.NoError(t, err)

		_, err = uc.Execute(ctx, req)
		var slotTaken *SlotTakenError
		require.ErrorAs(t, err, &slotTaken)
		require.NotNil(t, slotTaken.SuggestedTime)
		assert.Equal(t, types.TimeString("09:00"), *slotTaken.SuggestedTime)
	})

	t.Run("no suggestion when day fully booked", func(t *testing.T) {
		repo := &fakeApptRepo{}
		store := newRecordingStore()
		availability := &fakeAvailability{repo: repo, grid: []types.TimeString{"10:00"}, duration: 30}
		uc := NewUseCase(availability, repo, store, testConfig(), noopLogger{}).
			WithTimeProvider(&fixedTimeProvider{now: testNow})

		_, err := uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		_, err = uc.Execute(ctx, validRequest())
		var slotTaken *SlotTakenError
		require.ErrorAs(t, err, &slotTaken)
		assert.Nil(t, slotTaken.SuggestedTime)
	})

	t.Run("unique violation is demoted to slot taken", func(t *testing.T) {
		uc, repo, store := newTestSetup()
		repo.err = appointmentRepo.ErrSlotConflict

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)

		_, released := store.counts()
		assert.Equal(t, 1, released)
	})
}

func TestUseCase_Execute_Lock(t *testing.T) {
	ctx := context.Background()

	t.Run("busy lock means slot processing", func(t *testing.T) {
		uc, repo, store := newTestSetup()
		store.lockBusy = true

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotProcessing)
		assert.Empty(t, repo.created)
	})

	t.Run("lock released on rejection paths", func(t *testing.T) {
		repo := &fakeApptRepo{}
		store := newRecordingStore()
		availability := &fakeAvailability{repo: repo, grid: fullGrid(), duration: 30, blocked: true}
		uc := NewUseCase(availability, repo, store, testConfig(), noopLogger{}).
			WithTimeProvider(&fixedTimeProvider{now: testNow})

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrBlockedDay)

		acquired, released := store.counts()
		assert.Equal(t, 1, acquired)
		assert.Equal(t, 1, released)
	})

	t.Run("lock released on internal error", func(t *testing.T) {
		repo := &fakeApptRepo{}
		store := newRecordingStore()
		availability := &fakeAvailability{repo: repo, err: errors.New("db down")}
		uc := NewUseCase(availability, repo, store, testConfig(), noopLogger{}).
			WithTimeProvider(&fixedTimeProvider{now: testNow})

		_, err := uc.Execute(ctx, validRequest())
		assert.ErrorIs(t, err, ErrInternal)

		_, released := store.counts()
		assert.Equal(t, 1, released)
	})
}

func TestUseCase_Execute_DayStates(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		setup   func(a *fakeAvailability)
		wantErr error
	}{
		{"blocked day", func(a *fakeAvailability) { a.blocked = true }, ErrBlockedDay},
		{"closed day", func(a *fakeAvailability) { a.closed = true }, ErrClosedDay},
		{"no schedule", func(a *fakeAvailability) { a.noSchedule = true }, ErrNoSchedule},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeApptRepo{}
			availability := &fakeAvailability{repo: repo, grid: fullGrid(), duration: 30}
			tc.setup(availability)

			uc := NewUseCase(availability, repo, newRecordingStore(), testConfig(), noopLogger{}).
				WithTimeProvider(&fixedTimeProvider{now: testNow})

			_, err := uc.Execute(ctx, validRequest())
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUseCase_Execute_Validation(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newTestSetup()

	t.Run("missing phone", func(t *testing.T) {
		req := validRequest()
		req.CustomerPhone = ""
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed date", func(t *testing.T) {
		req := validRequest()
		req.Date = "14.09.2026"
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})

	t.Run("malformed time", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "25:99"
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDateTime)
	})
}

func TestUseCase_Execute_Hold(t *testing.T) {
	ctx := context.Background()

	t.Run("hold mode creates hold instead of appointment", func(t *testing.T) {
		uc, repo, store := newTestSetup()

		req := validRequest()
		req.HoldOnly = true

		resp, err := uc.Execute(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, StatusHeld, resp.Status)
		assert.Empty(t, resp.AppointmentID)
		require.NotNil(t, resp.HoldExpiresAt)
		assert.Equal(t, testNow.Add(120*time.Second), *resp.HoldExpiresAt)
		assert.Empty(t, repo.created)
		assert.Equal(t, 1, store.holds)

		hold, err := store.GetHold(ctx, 1, "2026-09-14", "10:00")
		require.NoError(t, err)
		require.NotNil(t, hold)
		assert.Equal(t, "+70000000001", hold.CustomerPhone)
	})

	t.Run("requested ttl is clamped to bounds", func(t *testing.T) {
		cases := []struct {
			name      string
			requested *int
			wantSec   int
		}{
			{"below minimum", ptrInt(5), 30},
			{"above maximum", ptrInt(900), 300},
			{"within bounds", ptrInt(60), 60},
			{"nil uses default", nil, 120},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				uc, _, _ := newTestSetup()

				req := validRequest()
				req.HoldOnly = true
				req.HoldTTLSeconds = tc.requested

				resp, err := uc.Execute(ctx, req)
				require.NoError(t, err)
				require.NotNil(t, resp.HoldExpiresAt)
				assert.Equal(t, testNow.Add(time.Duration(tc.wantSec)*time.Second), *resp.HoldExpiresAt)
			})
		}
	})

	t.Run("confirm clears hold for the slot", func(t *testing.T) {
		uc, _, store := newTestSetup()

		holdReq := validRequest()
		holdReq.HoldOnly = true
		_, err := uc.Execute(ctx, holdReq)
		require.NoError(t, err)

		// Подтверждение тем же клиентом: его собственный холд не мешает
		_, err = uc.Execute(ctx, validRequest())
		require.NoError(t, err)

		hold, err := store.GetHold(ctx, 1, "2026-09-14", "10:00")
		require.NoError(t, err)
		assert.Nil(t, hold)
	})
}

func TestUseCase_Execute_Concurrent(t *testing.T) {
	// Конкурентные попытки на один слот: ровно одна запись создаётся,
	// остальные получают детерминированный отказ
	ctx := context.Background()
	uc, repo, store := newTestSetup()

	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	confirmed := 0
	rejected := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := uc.Execute(ctx, validRequest())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && resp.Status == StatusConfirmed:
				confirmed++
			case errors.Is(err, ErrSlotProcessing), errors.Is(err, ErrSlotTaken):
				rejected++
			default:
				t.Errorf("unexpected outcome: resp=%v err=%v", resp, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, confirmed)
	assert.Equal(t, attempts-1, rejected)
	require.Len(t, repo.created, 1)

	acquired, released := store.counts()
	assert.Equal(t, acquired, released)
}

func ptrInt(v int) *int {
	return &v
}
