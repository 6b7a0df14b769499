package domain

import (
	"encoding/json"
	"io"
)

type RoomType string

const (
	Standard RoomType = "Standard"
	Deluxe   RoomType = "Deluxe"
	Suite    RoomType = "Suite"
)

// Room is static catalog data. Availability is never stored on the room,
// it is derived from the active reservation set.
type Room struct {
	RoomNumber    int      `bson:"room_number" json:"room_number"`
	Type          RoomType `bson:"type" json:"type"`
	PricePerNight float64  `bson:"price_per_night" json:"price_per_night"`
	MaxOccupancy  int      `bson:"max_occupancy" json:"max_occupancy"`
}

type Rooms []*Room

func (o *Rooms) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(o)
}

func (o *Room) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(o)
}

func IsValidRoomType(t RoomType) bool {
	return t == Standard || t == Deluxe || t == Suite
}
