package domain

import "time"

// Review is a guest review of a single room. Reviews are append/delete only;
// the stored email doubles as a soft deletion credential and is never treated
// as a verified identity.
type Review struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"` // 1..5
	CreatedAt time.Time `json:"created_at"`
}
