package domain

import "time"

// Room is a bookable unit as stored in the `rooms` table. Photos keep their
// order (gallery position 0..N-1); amenities are display labels with set
// membership semantics.
type Room struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Number        string    `json:"number"`
	PricePerNight int       `json:"price_per_night"`
	Beds          int       `json:"beds"`
	Description   string    `json:"description"`
	Amenities     []string  `json:"amenities"`
	Photos        []string  `json:"photos"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomPatch is a partial room update; nil fields are left untouched.
// UpdatedAt is always stamped by the caller on mutation.
type RoomPatch struct {
	Name          *string   `json:"name,omitempty"`
	Number        *string   `json:"number,omitempty"`
	PricePerNight *int      `json:"price_per_night,omitempty"`
	Beds          *int      `json:"beds,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Amenities     []string  `json:"amenities,omitempty"`
	Photos        []string  `json:"photos,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}
