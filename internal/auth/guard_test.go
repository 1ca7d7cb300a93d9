package auth_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Binarybee001/Shabana-Palace/internal/auth"
	"github.com/Binarybee001/Shabana-Palace/internal/domain"
)

// roleGateway stubs just the role lookup; the rest of the gateway is unused
// by the guard.
type roleGateway struct {
	nullGateway
	role  string
	err   error
	delay time.Duration
	calls int32
}

func (g *roleGateway) AdminRole(ctx context.Context, userID string) (string, error) {
	atomic.AddInt32(&g.calls, 1)
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if g.err != nil {
		return "", g.err
	}
	if g.role == "" {
		return "", domain.ErrNotFound
	}
	return g.role, nil
}

// nullGateway fills the unused Gateway surface.
type nullGateway struct{}

func (nullGateway) ListRooms(context.Context) ([]domain.Room, error) { return nil, nil }
func (nullGateway) GetRoom(context.Context, string) (domain.Room, error) {
	return domain.Room{}, domain.ErrNotFound
}
func (nullGateway) InsertRoom(_ context.Context, r domain.Room) (domain.Room, error) { return r, nil }
func (nullGateway) UpdateRoom(context.Context, string, domain.RoomPatch) (domain.Room, error) {
	return domain.Room{}, domain.ErrNotFound
}
func (nullGateway) DeleteRoom(context.Context, string) error               { return nil }
func (nullGateway) ListReviews(context.Context, string) ([]domain.Review, error) { return nil, nil }
func (nullGateway) InsertReview(_ context.Context, rv domain.Review) (domain.Review, error) {
	return rv, nil
}
func (nullGateway) DeleteReview(context.Context, string) error            { return nil }
func (nullGateway) ListMessages(context.Context) ([]domain.Message, error) { return nil, nil }
func (nullGateway) InsertMessage(_ context.Context, m domain.Message) (domain.Message, error) {
	return m, nil
}
func (nullGateway) SetReplies(context.Context, string, []domain.Reply) (domain.Message, error) {
	return domain.Message{}, domain.ErrNotFound
}
func (nullGateway) AdminRole(context.Context, string) (string, error) {
	return "", domain.ErrNotFound
}

func session(id string) *domain.Session {
	return &domain.Session{User: domain.User{ID: id}}
}

func TestGuard_AdminRecordGrantsAdmin(t *testing.T) {
	gw := &roleGateway{role: "admin"}
	g := auth.NewGuard(gw, time.Second)
	defer g.Close()

	if got := g.Check(context.Background(), session("u1")); got != auth.Admin {
		t.Fatalf("state: %v", got)
	}
}

func TestGuard_MissingRecordFailsClosed(t *testing.T) {
	gw := &roleGateway{} // AdminRole returns ErrNotFound
	g := auth.NewGuard(gw, time.Second)
	defer g.Close()

	if got := g.Check(context.Background(), session("u1")); got != auth.NotAdmin {
		t.Fatalf("state: %v", got)
	}
}

func TestGuard_LookupErrorFailsClosed(t *testing.T) {
	gw := &roleGateway{err: errors.New("boom")}
	g := auth.NewGuard(gw, time.Second)
	defer g.Close()

	if got := g.Check(context.Background(), session("u1")); got != auth.NotAdmin {
		t.Fatalf("state: %v", got)
	}
}

func TestGuard_NilSessionSkipsLookup(t *testing.T) {
	gw := &roleGateway{role: "admin"}
	g := auth.NewGuard(gw, time.Second)
	defer g.Close()

	if got := g.Check(context.Background(), nil); got != auth.NotAdmin {
		t.Fatalf("state: %v", got)
	}
	if atomic.LoadInt32(&gw.calls) != 0 {
		t.Fatalf("no lookup expected without a session, got %d", gw.calls)
	}
}

func TestGuard_NeverResolvingLookupSettlesWithinBound(t *testing.T) {
	gw := &roleGateway{role: "admin", delay: time.Hour}
	g := auth.NewGuard(gw, 50*time.Millisecond)
	defer g.Close()

	start := time.Now()
	got := g.Check(context.Background(), session("u1"))
	elapsed := time.Since(start)

	if got != auth.NotAdmin {
		t.Fatalf("timeout must fail closed, got %v", got)
	}
	if elapsed > time.Second {
		t.Fatalf("guard settled too late: %v", elapsed)
	}
	// a late-resolving lookup has no observable effect
	time.Sleep(20 * time.Millisecond)
	if g.State() != auth.NotAdmin {
		t.Fatalf("late settlement flipped the verdict: %v", g.State())
	}
}

func TestGuard_CachedVerdictSkipsSecondLookup(t *testing.T) {
	gw := &roleGateway{role: "admin"}
	g := auth.NewGuard(gw, time.Second)
	defer g.Close()

	g.Check(context.Background(), session("u1"))
	g.Check(context.Background(), session("u1"))
	if n := atomic.LoadInt32(&gw.calls); n != 1 {
		t.Fatalf("second check should hit the verdict cache, lookups: %d", n)
	}
}

func TestGuard_AuthChangeInvalidatesVerdict(t *testing.T) {
	gw := &roleGateway{role: "admin"}
	g := auth.NewGuard(gw, time.Second)
	defer g.Close()

	g.Check(context.Background(), session("u1"))
	g.OnAuthChange(context.Background(), session("u1"))
	if n := atomic.LoadInt32(&gw.calls); n != 2 {
		t.Fatalf("auth change must re-run the lookup, lookups: %d", n)
	}

	// signing out lands on NotAdmin directly
	if got := g.OnAuthChange(context.Background(), nil); got != auth.NotAdmin {
		t.Fatalf("state after sign-out: %v", got)
	}
}
