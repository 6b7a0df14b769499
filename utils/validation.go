package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"hotel-service/domain"
)

var validate = validator.New()

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateGuestInput checks the guest fields before they reach the engine.
func ValidateGuestInput(guestName string, guestEmail string) error {
	if err := validate.Var(guestName, "required,min=1"); err != nil {
		return domain.ReservationError{Message: "Guest name must not be empty"}
	}
	if err := validate.Var(guestEmail, "required"); err != nil {
		return domain.ReservationError{Message: "Guest email must not be empty"}
	}
	if !ValidateEmail(guestEmail) {
		return domain.ReservationError{Message: "Invalid email format"}
	}
	return nil
}
