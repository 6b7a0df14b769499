package utils

import (
	"hotel-service/domain"

	"github.com/google/uuid"
)

// GenerateReservationID returns a short 8 character reservation token.
// Retries on collision against the existing reservation set instead of
// assuming uniqueness by construction.
func GenerateReservationID(existing map[string]*domain.Reservation) string {
	for {
		id := uuid.NewString()[:8]
		if _, taken := existing[id]; !taken {
			return id
		}
	}
}
