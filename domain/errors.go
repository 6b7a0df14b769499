package domain

import "errors"

var (
	errReservationNotFound  error = errors.New("Reservation not found")
	errRoomNotFound         error = errors.New("Room not found")
	errRoomUnavailable      error = errors.New("Room is not available for the selected dates")
	errAlreadyCancelled     error = errors.New("Reservation is already cancelled")
	errAlreadyPaid          error = errors.New("Payment has already been processed")
	errReservationCancelled error = errors.New("Cannot process payment for a cancelled reservation")
	errInvalidDateRange     error = errors.New("Check-out date must be after check-in date")
	errPersistenceFailure   error = errors.New("Failed to persist reservation state")
)

// specific errors that may occur during the program
type ReservationError struct {
	Message string
}

func (e ReservationError) Error() string {
	return e.Message
}

func ErrReservationNotFound() error {
	return errReservationNotFound
}

func ErrRoomNotFound() error {
	return errRoomNotFound
}

func ErrRoomUnavailable() error {
	return errRoomUnavailable
}

func ErrAlreadyCancelled() error {
	return errAlreadyCancelled
}

func ErrAlreadyPaid() error {
	return errAlreadyPaid
}

func ErrReservationCancelled() error {
	return errReservationCancelled
}

func ErrInvalidDateRange() error {
	return errInvalidDateRange
}

func ErrPersistenceFailure() error {
	return errPersistenceFailure
}
