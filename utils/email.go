package utils

import (
	"bytes"
	"fmt"

	"gopkg.in/gomail.v2"

	"hotel-service/config"
	"hotel-service/domain"
)

// SendReservationConfirmation mails a booking summary to the guest.
// Best effort only, callers must not fail the booking on error.
func SendReservationConfirmation(reservation *domain.Reservation, room *domain.Room, config *config.Config) error {
	var from = config.EmailFrom
	if from == "" {
		from = "reservations@hotel-service.com"
	}
	var to = reservation.GuestEmail

	var body bytes.Buffer
	body.WriteString(fmt.Sprintf("Hi %s,\n", reservation.GuestName))
	body.WriteString("your reservation is confirmed: \n")
	body.WriteString(fmt.Sprintf("Reservation ID: %s\n", reservation.ReservationId))
	body.WriteString(fmt.Sprintf("Room %d - %s (Max: %d people)\n", room.RoomNumber, room.Type, room.MaxOccupancy))
	body.WriteString(fmt.Sprintf("Check-in: %s\n", reservation.CheckInDate.Format("2006-01-02")))
	body.WriteString(fmt.Sprintf("Check-out: %s\n", reservation.CheckOutDate.Format("2006-01-02")))
	body.WriteString(fmt.Sprintf("Total Price: $%.2f\n", reservation.TotalPrice))

	m := gomail.NewMessage()

	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your reservation confirmation")
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)

	if err := d.DialAndSend(m); err != nil {
		return err
	}
	return nil
}
