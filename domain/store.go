package domain

import "context"

// Store persists the full catalog and reservation set as one snapshot.
// Load must fail soft: unreadable or missing state yields an empty result,
// not an error that aborts startup.
type Store interface {
	Load(ctx context.Context) (Rooms, map[string]*Reservation, error)
	Save(ctx context.Context, rooms Rooms, reservations map[string]*Reservation) error
}
