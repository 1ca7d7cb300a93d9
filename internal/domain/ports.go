package domain

import (
	"context"
	"time"
)

// Gateway is the hosted table service the site runs against. Every method is
// a single table round trip; inserts and updates return the authoritative
// stored record (generated id, server timestamps included).
type Gateway interface {
	// rooms, newest first
	ListRooms(ctx context.Context) ([]Room, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	InsertRoom(ctx context.Context, r Room) (Room, error)
	UpdateRoom(ctx context.Context, id string, p RoomPatch) (Room, error)
	DeleteRoom(ctx context.Context, id string) error

	// reviews, scoped to one room, newest first
	ListReviews(ctx context.Context, roomID string) ([]Review, error)
	InsertReview(ctx context.Context, rv Review) (Review, error)
	DeleteReview(ctx context.Context, id string) error

	// messages with embedded replies, newest first. SetReplies replaces the
	// whole reply list in one field update — replies are an embedded array on
	// the message row, not a related table.
	ListMessages(ctx context.Context) ([]Message, error)
	InsertMessage(ctx context.Context, m Message) (Message, error)
	SetReplies(ctx context.Context, id string, replies []Reply) (Message, error)

	// AdminRole returns the role recorded for a principal in admin_roles,
	// or ErrNotFound when there is none.
	AdminRole(ctx context.Context, userID string) (string, error)
}

// Authenticator is the gateway's auth surface.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*Session, error)
}

type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Cache is a shared read cache in front of the gateway.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
