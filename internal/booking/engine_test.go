package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javialvarezdrive/gym-policia-local/internal/domain"
)

// newTestService returns a service over a fresh memStore with one shift, one
// activity, one monitor and one regular agent already registered.
func newTestService(t *testing.T) (*Service, *memStore, *domain.Shift, *domain.Activity, *domain.Agent, *domain.Agent) {
	t.Helper()

	store := newMemStore()
	service := NewService(store, true)
	ctx := context.Background()

	shift, err := service.CreateShift(ctx, "Mañana", "08:00:00", "14:00:00")
	require.NoError(t, err)

	activity, err := service.CreateActivity(ctx, "Spinning", "ciclo indoor")
	require.NoError(t, err)

	monitor, err := service.RegisterAgent(ctx, &domain.Agent{
		FirstName: "Carmen",
		LastName:  "García López",
		Badge:     "100001",
		Section:   domain.SectionPatrullas,
		Group:     domain.GroupG1,
		Email:     "carmen@policialocal.example",
		IsMonitor: true,
	})
	require.NoError(t, err)

	agent, err := service.RegisterAgent(ctx, &domain.Agent{
		FirstName: "Miguel",
		LastName:  "Pérez Ruiz",
		Badge:     "100002",
		Section:   domain.SectionMotorista,
		Group:     domain.GroupG2,
		IsMonitor: false,
	})
	require.NoError(t, err)

	return service, store, shift, activity, monitor, agent
}

func TestCreateSession(t *testing.T) {
	service, _, shift, activity, monitor, agent := newTestService(t)
	ctx := context.Background()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	session, err := service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
	require.NoError(t, err)
	assert.NotZero(t, session.ID)
	assert.Equal(t, date, session.Date)

	// second booking of the same slot must fail
	_, err = service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
	assert.ErrorIs(t, err, domain.ErrSlotAlreadyBooked)

	// the time-of-day component must not open a second slot on the same day
	sameDay := time.Date(2026, 9, 14, 18, 30, 0, 0, time.UTC)
	_, err = service.CreateSession(ctx, sameDay, shift.ID, activity.ID, monitor.ID)
	assert.ErrorIs(t, err, domain.ErrSlotAlreadyBooked)

	// a regular agent cannot lead a session
	nextDay := date.AddDate(0, 0, 1)
	_, err = service.CreateSession(ctx, nextDay, shift.ID, activity.ID, agent.ID)
	assert.ErrorIs(t, err, domain.ErrNotAMonitor)

	// unknown references
	_, err = service.CreateSession(ctx, nextDay, 9999, activity.ID, monitor.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = service.CreateSession(ctx, nextDay, shift.ID, 9999, monitor.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = service.CreateSession(ctx, nextDay, shift.ID, activity.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSessionPastDatePolicy(t *testing.T) {
	service, _, shift, activity, monitor, _ := newTestService(t)
	ctx := context.Background()

	today := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return today }
	yesterday := today.AddDate(0, 0, -1)

	// past dates are allowed by default, sessions can be recorded after the fact
	_, err := service.CreateSession(ctx, yesterday, shift.ID, activity.ID, monitor.ID)
	require.NoError(t, err)

	strict := NewService(service.store, false)
	strict.now = func() time.Time { return today }

	_, err = strict.CreateSession(ctx, yesterday.AddDate(0, 0, -1), shift.ID, activity.ID, monitor.ID)
	assert.True(t, domain.IsValidationError(err))

	// today itself is never "past"
	_, err = strict.CreateSession(ctx, today.AddDate(0, 0, 1), shift.ID, activity.ID, monitor.ID)
	require.NoError(t, err)
}

// Concurrent bookings of the same slot: exactly one wins no matter the
// interleaving.
func TestCreateSessionConcurrentSameSlot(t *testing.T) {
	service, _, shift, activity, monitor, _ := newTestService(t)
	ctx := context.Background()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	const attempts = 50
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded, alreadyBooked := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrSlotAlreadyBooked):
			alreadyBooked++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, alreadyBooked)
}

func TestAddAttendee(t *testing.T) {
	service, _, shift, activity, monitor, agent := newTestService(t)
	ctx := context.Background()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	session, err := service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
	require.NoError(t, err)

	attendance, err := service.AddAttendee(ctx, session.ID, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, attendance.SessionID)
	assert.Equal(t, agent.ID, attendance.AgentID)

	_, err = service.AddAttendee(ctx, session.ID, agent.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateAttendance)

	// the monitor can enroll in their own session
	_, err = service.AddAttendee(ctx, session.ID, monitor.ID)
	require.NoError(t, err)

	_, err = service.AddAttendee(ctx, 9999, agent.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = service.AddAttendee(ctx, session.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Concurrent enrollment of the same agent: exactly one attendance row exists
// afterwards.
func TestAddAttendeeConcurrentSameAgent(t *testing.T) {
	service, _, shift, activity, monitor, agent := newTestService(t)
	ctx := context.Background()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	session, err := service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
	require.NoError(t, err)

	const attempts = 50
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.AddAttendee(ctx, session.ID, agent.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrDuplicateAttendance):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)

	attendees, err := service.ListAttendees(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, attendees, 1)
}

func TestRemoveAttendee(t *testing.T) {
	service, _, shift, activity, monitor, agent := newTestService(t)
	ctx := context.Background()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	session, err := service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
	require.NoError(t, err)
	_, err = service.AddAttendee(ctx, session.ID, agent.ID)
	require.NoError(t, err)

	require.NoError(t, service.RemoveAttendee(ctx, session.ID, agent.ID))

	// a second removal reports not found, which callers may treat as benign
	err = service.RemoveAttendee(ctx, session.ID, agent.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	attendees, err := service.ListAttendees(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, attendees)
}

func TestCancelSessionCascades(t *testing.T) {
	service, store, shift, activity, monitor, agent := newTestService(t)
	ctx := context.Background()
	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	session, err := service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
	require.NoError(t, err)
	_, err = service.AddAttendee(ctx, session.ID, agent.ID)
	require.NoError(t, err)
	_, err = service.AddAttendee(ctx, session.ID, monitor.ID)
	require.NoError(t, err)

	require.NoError(t, service.CancelSession(ctx, session.ID))

	_, err = service.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// no orphaned attendance rows remain
	attendance, err := store.ListAttendanceBetween(ctx, date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, attendance)

	// the slot is free again
	_, err = service.CreateSession(ctx, date, shift.ID, activity.ID, monitor.ID)
	require.NoError(t, err)

	err = service.CancelSession(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreFailurePropagates(t *testing.T) {
	service, store, shift, activity, monitor, _ := newTestService(t)
	ctx := context.Background()

	store.setForcedErr(domain.ErrStoreUnavailable)

	_, err := service.CreateSession(ctx, time.Now(), shift.ID, activity.ID, monitor.ID)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = service.ListSessions(ctx, time.Now(), time.Now().AddDate(0, 0, 7))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
