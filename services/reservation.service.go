package services

import (
	"context"
	"time"

	"hotel-service/domain"
)

type ReservationService interface {
	ListRooms(ctx context.Context) domain.Rooms
	FindAvailableRooms(roomType domain.RoomType, checkIn time.Time, checkOut time.Time, ctx context.Context) (domain.Rooms, error)
	MakeReservation(roomNumber int, guestName string, guestEmail string, checkIn time.Time, checkOut time.Time, ctx context.Context) (*domain.Reservation, error)
	CancelReservation(reservationId string, ctx context.Context) error
	ProcessPayment(reservationId string, ctx context.Context) error
	FindReservation(reservationId string, ctx context.Context) (*domain.Reservation, bool)
	FindRoom(roomNumber int) (*domain.Room, bool)
}
