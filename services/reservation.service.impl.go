package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hotel-service/domain"
	"hotel-service/utils"
)

// ReservationServiceImpl owns the room catalog and the reservation set.
// A single engine-wide mutex guards every operation so the availability
// re-check and the insert inside MakeReservation are one atomic unit:
// two concurrent bookings for overlapping ranges on the same room can
// never both succeed.
type ReservationServiceImpl struct {
	mu           sync.Mutex
	rooms        domain.Rooms
	reservations map[string]*domain.Reservation
	store        domain.Store
	logger       *logrus.Logger
	tracer       trace.Tracer
}

func NewReservationServiceImpl(store domain.Store, logger *logrus.Logger, tracer trace.Tracer, ctx context.Context) *ReservationServiceImpl {
	rooms, reservations, err := store.Load(ctx)
	if err != nil {
		// Load fails soft in the bundled stores, keep the guard for foreign ones.
		logger.WithFields(logrus.Fields{"path": "services/reservation"}).Error("Error loading data, starting fresh: ", err)
		rooms = domain.Rooms{}
		reservations = map[string]*domain.Reservation{}
	}

	service := &ReservationServiceImpl{
		rooms:        rooms,
		reservations: reservations,
		store:        store,
		logger:       logger,
		tracer:       tracer,
	}
	service.initializeRooms()
	return service
}

// initializeRooms seeds the default catalog only when no persisted catalog
// exists, so rooms referenced by existing reservations still resolve.
func (s *ReservationServiceImpl) initializeRooms() {
	if len(s.rooms) > 0 {
		return
	}
	for i := 1; i <= 10; i++ {
		s.rooms = append(s.rooms, &domain.Room{RoomNumber: 100 + i, Type: domain.Standard, PricePerNight: 99.99, MaxOccupancy: 2})
	}
	for i := 1; i <= 5; i++ {
		s.rooms = append(s.rooms, &domain.Room{RoomNumber: 200 + i, Type: domain.Deluxe, PricePerNight: 159.99, MaxOccupancy: 4})
	}
	for i := 1; i <= 3; i++ {
		s.rooms = append(s.rooms, &domain.Room{RoomNumber: 300 + i, Type: domain.Suite, PricePerNight: 249.99, MaxOccupancy: 6})
	}
}

func (s *ReservationServiceImpl) ListRooms(ctx context.Context) domain.Rooms {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := make(domain.Rooms, len(s.rooms))
	copy(rooms, s.rooms)
	return rooms
}

// FindAvailableRooms returns every room of the requested type (all types
// when roomType is empty) with no active reservation overlapping
// [checkIn, checkOut). Inventory order is preserved.
func (s *ReservationServiceImpl) FindAvailableRooms(roomType domain.RoomType, checkIn time.Time, checkOut time.Time, ctx context.Context) (domain.Rooms, error) {
	_, span := s.tracer.Start(ctx, "ReservationService.FindAvailableRooms")
	defer span.End()

	if !checkOut.After(checkIn) {
		span.SetStatus(codes.Error, domain.ErrInvalidDateRange().Error())
		return nil, domain.ErrInvalidDateRange()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Collect the rooms booked during the requested range first, then
	// filter the catalog against that set.
	bookedRoomNumbers := map[int]bool{}
	for _, reservation := range s.reservations {
		if reservation.IsCancelled {
			continue
		}
		if domain.DateRangesOverlap(checkIn, checkOut, reservation.CheckInDate, reservation.CheckOutDate) {
			bookedRoomNumbers[reservation.RoomNumber] = true
		}
	}

	available := domain.Rooms{}
	for _, room := range s.rooms {
		if bookedRoomNumbers[room.RoomNumber] {
			continue
		}
		if roomType != "" && room.Type != roomType {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}

// MakeReservation re-validates availability against the current
// reservation set before inserting. The earlier search a caller ran
// cannot be trusted at booking time.
func (s *ReservationServiceImpl) MakeReservation(roomNumber int, guestName string, guestEmail string, checkIn time.Time, checkOut time.Time, ctx context.Context) (*domain.Reservation, error) {
	spanCtx, span := s.tracer.Start(ctx, "ReservationService.MakeReservation")
	defer span.End()

	if !checkOut.After(checkIn) {
		span.SetStatus(codes.Error, domain.ErrInvalidDateRange().Error())
		return nil, domain.ErrInvalidDateRange()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	room, found := s.findRoomLocked(roomNumber)
	if !found {
		span.SetStatus(codes.Error, domain.ErrRoomNotFound().Error())
		return nil, domain.ErrRoomNotFound()
	}

	if !s.isRoomAvailableLocked(roomNumber, checkIn, checkOut) {
		span.SetStatus(codes.Error, domain.ErrRoomUnavailable().Error())
		return nil, domain.ErrRoomUnavailable()
	}

	reservation := &domain.Reservation{
		ReservationId: utils.GenerateReservationID(s.reservations),
		RoomNumber:    roomNumber,
		GuestName:     guestName,
		GuestEmail:    guestEmail,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		TotalPrice:    float64(domain.Nights(checkIn, checkOut)) * room.PricePerNight,
	}
	s.reservations[reservation.ReservationId] = reservation

	if err := s.persistLocked(spanCtx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return reservation, err
	}
	return reservation, nil
}

func (s *ReservationServiceImpl) CancelReservation(reservationId string, ctx context.Context) error {
	spanCtx, span := s.tracer.Start(ctx, "ReservationService.CancelReservation")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, found := s.reservations[reservationId]
	if !found {
		span.SetStatus(codes.Error, domain.ErrReservationNotFound().Error())
		return domain.ErrReservationNotFound()
	}
	if reservation.IsCancelled {
		span.SetStatus(codes.Error, domain.ErrAlreadyCancelled().Error())
		return domain.ErrAlreadyCancelled()
	}

	// The paid flag is left untouched, refunds are handled outside this system.
	reservation.IsCancelled = true

	if err := s.persistLocked(spanCtx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s *ReservationServiceImpl) ProcessPayment(reservationId string, ctx context.Context) error {
	spanCtx, span := s.tracer.Start(ctx, "ReservationService.ProcessPayment")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, found := s.reservations[reservationId]
	if !found {
		span.SetStatus(codes.Error, domain.ErrReservationNotFound().Error())
		return domain.ErrReservationNotFound()
	}
	if reservation.IsPaid {
		span.SetStatus(codes.Error, domain.ErrAlreadyPaid().Error())
		return domain.ErrAlreadyPaid()
	}
	if reservation.IsCancelled {
		span.SetStatus(codes.Error, domain.ErrReservationCancelled().Error())
		return domain.ErrReservationCancelled()
	}

	reservation.IsPaid = true

	if err := s.persistLocked(spanCtx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// FindReservation is a query, absence is reported through the bool, not an error.
func (s *ReservationServiceImpl) FindReservation(reservationId string, ctx context.Context) (*domain.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, found := s.reservations[reservationId]
	return reservation, found
}

func (s *ReservationServiceImpl) FindRoom(roomNumber int) (*domain.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findRoomLocked(roomNumber)
}

func (s *ReservationServiceImpl) findRoomLocked(roomNumber int) (*domain.Room, bool) {
	for _, room := range s.rooms {
		if room.RoomNumber == roomNumber {
			return room, true
		}
	}
	return nil, false
}

// isRoomAvailableLocked and FindAvailableRooms share the same overlap
// predicate so the search and the booking re-check cannot drift.
func (s *ReservationServiceImpl) isRoomAvailableLocked(roomNumber int, checkIn time.Time, checkOut time.Time) bool {
	for _, reservation := range s.reservations {
		if reservation.IsCancelled {
			continue
		}
		if reservation.RoomNumber != roomNumber {
			continue
		}
		if domain.DateRangesOverlap(checkIn, checkOut, reservation.CheckInDate, reservation.CheckOutDate) {
			return false
		}
	}
	return true
}

// persistLocked saves after a mutation. A failed save does not roll the
// mutation back, only durability is at risk, so the error is logged and
// surfaced as a persistence failure for the caller to present.
func (s *ReservationServiceImpl) persistLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, s.rooms, s.reservations); err != nil {
		s.logger.WithFields(logrus.Fields{"path": "services/reservation"}).Error("Error saving data: ", err)
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure(), err)
	}
	return nil
}
