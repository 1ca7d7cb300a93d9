package domain

import "time"

// Message is an inbound contact message. Replies live on the message as an
// embedded ordered list, newest first; they have no lifecycle of their own.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Body      string    `json:"message"`
	Replies   []Reply   `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
}

type Reply struct {
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
