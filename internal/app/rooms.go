package app

import (
	"context"
	"sync"
	"time"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
	"github.com/Binarybee001/Shabana-Palace/internal/forms"
)

// RoomRepository mirrors the rooms table, newest first.
type RoomRepository struct {
	gw    domain.Gateway
	cache domain.Cache // optional
	now   func() time.Time

	mu      sync.Mutex
	rooms   []domain.Room
	loading bool
}

func NewRoomRepository(gw domain.Gateway, cache domain.Cache) *RoomRepository {
	return &RoomRepository{gw: gw, cache: cache, now: time.Now}
}

// Rooms returns a snapshot of the mirror.
func (r *RoomRepository) Rooms() []domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Room, len(r.rooms))
	copy(out, r.rooms)
	return out
}

func (r *RoomRepository) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Load fetches the full collection and replaces the mirror. On failure the
// previous mirror is preserved and a gateway error is returned for display.
func (r *RoomRepository) Load(ctx context.Context) error {
	r.mu.Lock()
	if r.loading {
		// a load is already replacing the mirror; let it win
		r.mu.Unlock()
		return nil
	}
	r.loading = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.loading = false
		r.mu.Unlock()
	}()

	if r.cache != nil {
		var cached []domain.Room
		if ok, _ := r.cache.Get(ctx, roomsCacheKey, &cached); ok {
			r.mu.Lock()
			r.rooms = cached
			r.mu.Unlock()
			return nil
		}
	}

	rooms, err := r.gw.ListRooms(ctx)
	if err != nil {
		return gatewayErr("rooms.load", err)
	}
	r.mu.Lock()
	r.rooms = rooms
	r.mu.Unlock()
	if r.cache != nil {
		_ = r.cache.Set(ctx, roomsCacheKey, rooms, cacheTTLSec)
	}
	return nil
}

// Get resolves one room, serving from the mirror when possible.
func (r *RoomRepository) Get(ctx context.Context, id string) (domain.Room, error) {
	r.mu.Lock()
	for _, room := range r.rooms {
		if room.ID == id {
			r.mu.Unlock()
			return room, nil
		}
	}
	r.mu.Unlock()

	room, err := r.gw.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, gatewayErr("rooms.get", err)
	}
	return room, nil
}

// Create validates the form, inserts one record, and prepends the gateway's
// authoritative copy to the mirror. There is no pre-emptive local insert, so
// there is nothing to roll back on failure.
func (r *RoomRepository) Create(ctx context.Context, form forms.RoomForm) (domain.Room, error) {
	if err := forms.Check(form); err != nil {
		return domain.Room{}, err
	}
	created, err := r.gw.InsertRoom(ctx, domain.Room{
		Name:          form.Name,
		Number:        form.Number,
		PricePerNight: form.PricePerNight,
		Beds:          form.Beds,
		Description:   form.Description,
		Amenities:     form.Amenities,
		Photos:        form.Photos,
	})
	if err != nil {
		return domain.Room{}, gatewayErr("rooms.create", err)
	}
	r.mu.Lock()
	r.rooms = append([]domain.Room{created}, r.rooms...)
	r.mu.Unlock()
	r.invalidate(ctx)
	return created, nil
}

// Update sends a partial update with a fresh update timestamp and replaces the
// matching mirror record wholesale with the gateway's response. A shallow
// patch merge would let local and remote state drift.
func (r *RoomRepository) Update(ctx context.Context, id string, form forms.RoomForm) (domain.Room, error) {
	if err := forms.Check(form); err != nil {
		return domain.Room{}, err
	}
	patch := domain.RoomPatch{
		Name:          &form.Name,
		Number:        &form.Number,
		PricePerNight: &form.PricePerNight,
		Beds:          &form.Beds,
		Description:   &form.Description,
		Amenities:     form.Amenities,
		Photos:        form.Photos,
		UpdatedAt:     r.now().UTC(),
	}
	updated, err := r.gw.UpdateRoom(ctx, id, patch)
	if err != nil {
		return domain.Room{}, gatewayErr("rooms.update", err)
	}
	r.mu.Lock()
	for i := range r.rooms {
		if r.rooms[i].ID == id {
			r.rooms[i] = updated
			break
		}
	}
	r.mu.Unlock()
	r.invalidate(ctx)
	return updated, nil
}

// Delete removes the record at the gateway, then from the mirror.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	if err := r.gw.DeleteRoom(ctx, id); err != nil {
		return gatewayErr("rooms.delete", err)
	}
	r.mu.Lock()
	kept := r.rooms[:0]
	for _, room := range r.rooms {
		if room.ID != id {
			kept = append(kept, room)
		}
	}
	r.rooms = kept
	r.mu.Unlock()
	r.invalidate(ctx)
	return nil
}

func (r *RoomRepository) invalidate(ctx context.Context) {
	if r.cache != nil {
		_ = r.cache.Del(ctx, roomsCacheKey)
	}
}
