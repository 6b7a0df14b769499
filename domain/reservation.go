package domain

import (
	"encoding/json"
	"io"
	"time"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "Pending"
	StatusPaid      ReservationStatus = "Paid"
	StatusCancelled ReservationStatus = "Cancelled"
)

type Reservation struct {
	ReservationId string    `bson:"_id" json:"reservation_id"`
	RoomNumber    int       `bson:"room_number" json:"room_number"`
	GuestName     string    `bson:"guest_name" json:"guest_name"`
	GuestEmail    string    `bson:"guest_email" json:"guest_email"`
	CheckInDate   time.Time `bson:"check_in_date" json:"check_in_date"`
	CheckOutDate  time.Time `bson:"check_out_date" json:"check_out_date"`
	TotalPrice    float64   `bson:"total_price" json:"total_price"`
	IsPaid        bool      `bson:"is_paid" json:"is_paid"`
	IsCancelled   bool      `bson:"is_cancelled" json:"is_cancelled"`
}

type Reservations []*Reservation

// Status is derived from the two flags, cancelled wins over paid.
func (r *Reservation) Status() ReservationStatus {
	if r.IsCancelled {
		return StatusCancelled
	}
	if r.IsPaid {
		return StatusPaid
	}
	return StatusPending
}

// Nights counts whole nights in the half-open stay [check-in, check-out).
func (r *Reservation) Nights() int {
	return Nights(r.CheckInDate, r.CheckOutDate)
}

func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// DateRangesOverlap reports whether [start1,end1) and [start2,end2) overlap.
// The checkout day is not included in the stay. This is the single overlap
// predicate used by both the availability search and the booking re-check.
func DateRangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

func (o *Reservations) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Reservation) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}
