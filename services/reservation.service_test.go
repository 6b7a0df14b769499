package services

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"hotel-service/domain"
)

type stubStore struct {
	rooms        domain.Rooms
	reservations map[string]*domain.Reservation
	saveErr      error
	saveCount    int
}

func (st *stubStore) Load(ctx context.Context) (domain.Rooms, map[string]*domain.Reservation, error) {
	if st.reservations == nil {
		st.reservations = map[string]*domain.Reservation{}
	}
	return st.rooms, st.reservations, nil
}

func (st *stubStore) Save(ctx context.Context, rooms domain.Rooms, reservations map[string]*domain.Reservation) error {
	st.saveCount++
	return st.saveErr
}

func newTestService(store domain.Store) *ReservationServiceImpl {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewReservationServiceImpl(store, logger, otel.Tracer("test"), context.Background())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeedsDefaultCatalogWhenStoreIsEmpty(t *testing.T) {
	service := newTestService(&stubStore{})

	rooms := service.ListRooms(context.Background())
	require.Len(t, rooms, 18)

	counts := map[domain.RoomType]int{}
	for _, room := range rooms {
		counts[room.Type]++
	}
	assert.Equal(t, 10, counts[domain.Standard])
	assert.Equal(t, 5, counts[domain.Deluxe])
	assert.Equal(t, 3, counts[domain.Suite])
}

func TestDoesNotReseedPersistedCatalog(t *testing.T) {
	store := &stubStore{
		rooms: domain.Rooms{
			{RoomNumber: 1, Type: domain.Standard, PricePerNight: 100.00, MaxOccupancy: 2},
		},
	}
	service := newTestService(store)

	rooms := service.ListRooms(context.Background())
	require.Len(t, rooms, 1)
	assert.Equal(t, 1, rooms[0].RoomNumber)
}

func TestBookSearchCancelScenario(t *testing.T) {
	// Seed a single standard room at 100.00 and walk the full lifecycle.
	store := &stubStore{
		rooms: domain.Rooms{
			{RoomNumber: 1, Type: domain.Standard, PricePerNight: 100.00, MaxOccupancy: 2},
		},
	}
	service := newTestService(store)
	ctx := context.Background()

	available, err := service.FindAvailableRooms(domain.Standard, date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)

	reservation, err := service.MakeReservation(1, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	assert.Equal(t, 200.00, reservation.TotalPrice)
	assert.Equal(t, domain.StatusPending, reservation.Status())
	assert.Len(t, reservation.ReservationId, 8)

	available, err = service.FindAvailableRooms(domain.Standard, date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	require.NoError(t, service.CancelReservation(reservation.ReservationId, ctx))

	available, err = service.FindAvailableRooms(domain.Standard, date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	assert.Len(t, available, 1)
}

func TestDoubleBookingFails(t *testing.T) {
	service := newTestService(&stubStore{})
	ctx := context.Background()

	_, err := service.MakeReservation(101, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 14), ctx)
	require.NoError(t, err)

	// Exact same range.
	_, err = service.MakeReservation(101, "Jane Smith", "jane@example.com", date(2024, 1, 10), date(2024, 1, 14), ctx)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable())

	// Overlapping range.
	_, err = service.MakeReservation(101, "Jane Smith", "jane@example.com", date(2024, 1, 13), date(2024, 1, 16), ctx)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable())

	// Back to back is allowed, checkout day is not part of the stay.
	_, err = service.MakeReservation(101, "Jane Smith", "jane@example.com", date(2024, 1, 14), date(2024, 1, 16), ctx)
	assert.NoError(t, err)

	// A different room is unaffected.
	_, err = service.MakeReservation(102, "Jane Smith", "jane@example.com", date(2024, 1, 10), date(2024, 1, 14), ctx)
	assert.NoError(t, err)
}

func TestFindAvailableRoomsFiltersType(t *testing.T) {
	service := newTestService(&stubStore{})
	ctx := context.Background()

	deluxe, err := service.FindAvailableRooms(domain.Deluxe, date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	assert.Len(t, deluxe, 5)
	for _, room := range deluxe {
		assert.Equal(t, domain.Deluxe, room.Type)
	}

	all, err := service.FindAvailableRooms("", date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	assert.Len(t, all, 18)
}

func TestFindAvailableRoomsRejectsInvertedRange(t *testing.T) {
	service := newTestService(&stubStore{})

	_, err := service.FindAvailableRooms("", date(2024, 1, 12), date(2024, 1, 10), context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange())

	// Zero nights is also invalid.
	_, err = service.FindAvailableRooms("", date(2024, 1, 10), date(2024, 1, 10), context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange())
}

func TestMakeReservationRejectsUnknownRoom(t *testing.T) {
	service := newTestService(&stubStore{})

	_, err := service.MakeReservation(999, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 12), context.Background())
	assert.ErrorIs(t, err, domain.ErrRoomNotFound())
}

func TestCancellationLifecycle(t *testing.T) {
	service := newTestService(&stubStore{})
	ctx := context.Background()

	assert.ErrorIs(t, service.CancelReservation("missing1", ctx), domain.ErrReservationNotFound())

	reservation, err := service.MakeReservation(101, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)

	require.NoError(t, service.CancelReservation(reservation.ReservationId, ctx))
	assert.ErrorIs(t, service.CancelReservation(reservation.ReservationId, ctx), domain.ErrAlreadyCancelled())

	found, ok := service.FindReservation(reservation.ReservationId, ctx)
	require.True(t, ok)
	assert.Equal(t, domain.StatusCancelled, found.Status())
}

func TestPaymentLifecycle(t *testing.T) {
	service := newTestService(&stubStore{})
	ctx := context.Background()

	assert.ErrorIs(t, service.ProcessPayment("missing1", ctx), domain.ErrReservationNotFound())

	reservation, err := service.MakeReservation(101, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)

	require.NoError(t, service.ProcessPayment(reservation.ReservationId, ctx))
	assert.ErrorIs(t, service.ProcessPayment(reservation.ReservationId, ctx), domain.ErrAlreadyPaid())

	found, _ := service.FindReservation(reservation.ReservationId, ctx)
	assert.Equal(t, domain.StatusPaid, found.Status())

	// Paid then cancelled becomes cancelled, the paid flag stays set.
	require.NoError(t, service.CancelReservation(reservation.ReservationId, ctx))
	found, _ = service.FindReservation(reservation.ReservationId, ctx)
	assert.True(t, found.IsPaid)
	assert.Equal(t, domain.StatusCancelled, found.Status())

	// A cancelled reservation can never be paid.
	other, err := service.MakeReservation(102, "Jane Smith", "jane@example.com", date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	require.NoError(t, service.CancelReservation(other.ReservationId, ctx))
	assert.ErrorIs(t, service.ProcessPayment(other.ReservationId, ctx), domain.ErrReservationCancelled())
}

func TestFindReservationIsAQuery(t *testing.T) {
	service := newTestService(&stubStore{})

	reservation, found := service.FindReservation("nope1234", context.Background())
	assert.False(t, found)
	assert.Nil(t, reservation)
}

func TestTotalPriceIsNightsTimesRate(t *testing.T) {
	service := newTestService(&stubStore{})
	ctx := context.Background()

	// Seeded standard rooms cost 99.99 per night.
	reservation, err := service.MakeReservation(101, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 13), ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, reservation.Nights())
	assert.InDelta(t, 299.97, reservation.TotalPrice, 0.001)

	// Seeded suites cost 249.99 per night.
	suite, err := service.MakeReservation(301, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 11), ctx)
	require.NoError(t, err)
	assert.InDelta(t, 249.99, suite.TotalPrice, 0.001)
}

func TestSaveFailureKeepsMutation(t *testing.T) {
	store := &stubStore{saveErr: errors.New("disk full")}
	service := newTestService(store)
	ctx := context.Background()

	reservation, err := service.MakeReservation(101, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 12), ctx)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailure())
	require.NotNil(t, reservation)

	// The booking stands in memory despite the failed save.
	found, ok := service.FindReservation(reservation.ReservationId, ctx)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPending, found.Status())

	available, err := service.FindAvailableRooms(domain.Standard, date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	for _, room := range available {
		assert.NotEqual(t, 101, room.RoomNumber)
	}
}

func TestSaveCalledAfterEveryMutation(t *testing.T) {
	store := &stubStore{}
	service := newTestService(store)
	ctx := context.Background()

	reservation, err := service.MakeReservation(101, "John Doe", "john@example.com", date(2024, 1, 10), date(2024, 1, 12), ctx)
	require.NoError(t, err)
	require.NoError(t, service.ProcessPayment(reservation.ReservationId, ctx))
	require.NoError(t, service.CancelReservation(reservation.ReservationId, ctx))

	assert.Equal(t, 3, store.saveCount)
}

func TestReservationIDsAreUnique(t *testing.T) {
	service := newTestService(&stubStore{})
	ctx := context.Background()

	seen := map[string]bool{}
	day := date(2024, 1, 1)
	for i := 0; i < 50; i++ {
		reservation, err := service.MakeReservation(101, "John Doe", "john@example.com", day, day.AddDate(0, 0, 1), ctx)
		require.NoError(t, err)
		assert.Len(t, reservation.ReservationId, 8)
		assert.False(t, seen[reservation.ReservationId])
		seen[reservation.ReservationId] = true
		day = day.AddDate(0, 0, 1)
	}
}

// Randomized bookings and cancellations must never leave two active
// reservations for the same room with overlapping ranges, and the
// availability search must agree with a brute force recomputation.
func TestNoOverlapInvariantUnderRandomOperations(t *testing.T) {
	service := newTestService(&stubStore{})
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	roomNumbers := []int{101, 102, 103, 201, 202, 301}
	var made []*domain.Reservation

	for i := 0; i < 300; i++ {
		start := date(2024, 1, 1).AddDate(0, 0, rng.Intn(60))
		end := start.AddDate(0, 0, 1+rng.Intn(7))
		roomNumber := roomNumbers[rng.Intn(len(roomNumbers))]

		reservation, err := service.MakeReservation(roomNumber, "Guest", "guest@example.com", start, end, ctx)
		if err == nil {
			made = append(made, reservation)
		} else {
			assert.ErrorIs(t, err, domain.ErrRoomUnavailable())
		}

		if len(made) > 0 && rng.Intn(4) == 0 {
			victim := made[rng.Intn(len(made))]
			err := service.CancelReservation(victim.ReservationId, ctx)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrAlreadyCancelled())
			}
		}
	}

	// Invariant: active reservations on the same room never overlap.
	var active []*domain.Reservation
	for _, reservation := range made {
		current, ok := service.FindReservation(reservation.ReservationId, ctx)
		require.True(t, ok)
		if !current.IsCancelled {
			active = append(active, current)
		}
	}
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			if active[i].RoomNumber != active[j].RoomNumber {
				continue
			}
			assert.False(t, domain.DateRangesOverlap(
				active[i].CheckInDate, active[i].CheckOutDate,
				active[j].CheckInDate, active[j].CheckOutDate,
			), "overlapping active reservations %s and %s on room %d",
				active[i].ReservationId, active[j].ReservationId, active[i].RoomNumber)
		}
	}

	// The search agrees with a brute force scan: no false positives, no
	// false negatives.
	for q := 0; q < 50; q++ {
		start := date(2024, 1, 1).AddDate(0, 0, rng.Intn(60))
		end := start.AddDate(0, 0, 1+rng.Intn(7))

		available, err := service.FindAvailableRooms("", start, end, ctx)
		require.NoError(t, err)
		availableSet := map[int]bool{}
		for _, room := range available {
			availableSet[room.RoomNumber] = true
		}

		for _, room := range service.ListRooms(ctx) {
			booked := false
			for _, reservation := range active {
				if reservation.RoomNumber == room.RoomNumber &&
					domain.DateRangesOverlap(start, end, reservation.CheckInDate, reservation.CheckOutDate) {
					booked = true
					break
				}
			}
			assert.Equal(t, !booked, availableSet[room.RoomNumber],
				"room %d availability mismatch for %s..%s", room.RoomNumber, start, end)
		}
	}
}
