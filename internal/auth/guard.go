// Package auth holds the admin role guard: a small state machine deciding
// whether the current principal may see the back-office UI. The verdict is
// advisory gating only — authorization is enforced by the gateway's access
// rules, never by this client-side check.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"

	"github.com/Binarybee001/Shabana-Palace/internal/adapters/observability"
	"github.com/Binarybee001/Shabana-Palace/internal/domain"
)

type State int

const (
	Unknown State = iota
	Checking
	Admin
	NotAdmin
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Admin:
		return "admin"
	case NotAdmin:
		return "not_admin"
	default:
		return "unknown"
	}
}

// DefaultTimeout bounds the role lookup; a slower answer counts as "not
// admin" (fail closed).
const DefaultTimeout = 5 * time.Second

// Guard resolves the admin role for the current principal, racing the lookup
// against a fixed timeout. Resolved verdicts are cached briefly per user so
// repeated page mounts within the TTL skip the lookup.
type Guard struct {
	gw       domain.Gateway
	timeout  time.Duration
	verdicts *ttlcache.Cache[string, bool]

	mu    sync.Mutex
	state State
}

func NewGuard(gw domain.Gateway, timeout time.Duration) *Guard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	verdicts := ttlcache.New[string, bool](
		ttlcache.WithTTL[string, bool](time.Minute),
		ttlcache.WithDisableTouchOnHit[string, bool](),
	)
	go verdicts.Start()
	return &Guard{gw: gw, timeout: timeout, verdicts: verdicts, state: Unknown}
}

func (g *Guard) Close() { g.verdicts.Stop() }

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Guard) set(s State) State {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
	return s
}

// OnAuthChange re-runs the whole check for an auth-state-change event. The
// cached verdict for the changing principal is dropped first so a fresh
// sign-in never rides a stale answer.
func (g *Guard) OnAuthChange(ctx context.Context, sess *domain.Session) State {
	if sess != nil {
		g.verdicts.Delete(sess.User.ID)
	}
	return g.Check(ctx, sess)
}

// Check transitions to Checking, then races the role lookup against the
// timeout. Only the first settlement wins: the channel is buffered so a late
// lookup result is abandoned with no observable effect. Missing record,
// lookup error, and timeout all land on NotAdmin.
func (g *Guard) Check(ctx context.Context, sess *domain.Session) State {
	if sess == nil {
		return g.set(NotAdmin)
	}
	g.set(Checking)

	if item := g.verdicts.Get(sess.User.ID); item != nil {
		if item.Value() {
			return g.set(Admin)
		}
		return g.set(NotAdmin)
	}

	type result struct {
		admin bool
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		role, err := g.gw.AdminRole(ctx, sess.User.ID)
		ch <- result{admin: err == nil && role == "admin", err: err}
	}()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		if r.err != nil && !isNotFound(r.err) {
			log.Warn().Str("user", sess.User.ID).Err(r.err).Msg("admin role lookup failed")
			observability.ObserveRoleCheck("not_admin")
			return g.set(NotAdmin)
		}
		g.verdicts.Set(sess.User.ID, r.admin, ttlcache.DefaultTTL)
		if r.admin {
			observability.ObserveRoleCheck("admin")
			return g.set(Admin)
		}
		observability.ObserveRoleCheck("not_admin")
		return g.set(NotAdmin)
	case <-timer.C:
		// the loser is abandoned, not cancelled; its buffered send cannot block
		log.Warn().Str("user", sess.User.ID).Dur("timeout", g.timeout).
			Err(domain.ErrTimeout).Msg("admin role check timed out")
		observability.ObserveRoleCheck("timeout")
		return g.set(NotAdmin)
	case <-ctx.Done():
		return g.set(NotAdmin)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
