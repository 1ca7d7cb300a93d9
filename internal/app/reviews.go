package app

import (
	"context"
	"errors"
	"sync"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
	"github.com/Binarybee001/Shabana-Palace/internal/forms"
)

// ErrEmailMismatch aborts a review deletion before any gateway call. The
// comparison runs against the email already held in the mirror; it is a UX
// deterrent against casual misclicks, not a security control — real
// enforcement belongs to the gateway's access rules.
var ErrEmailMismatch = errors.New("email does not match; cannot delete review")

// ReviewRepository mirrors the reviews of a single room, newest first. The
// detail page is always single-room scoped, so a load simply replaces the
// current view.
type ReviewRepository struct {
	gw    domain.Gateway
	cache domain.Cache // optional

	mu      sync.Mutex
	roomID  string
	reviews []domain.Review
	loading bool
}

func NewReviewRepository(gw domain.Gateway, cache domain.Cache) *ReviewRepository {
	return &ReviewRepository{gw: gw, cache: cache}
}

func (r *ReviewRepository) Reviews() []domain.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Review, len(r.reviews))
	copy(out, r.reviews)
	return out
}

func (r *ReviewRepository) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// LoadForRoom fetches all reviews for one room and replaces the view.
func (r *ReviewRepository) LoadForRoom(ctx context.Context, roomID string) error {
	r.mu.Lock()
	if r.loading {
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
		var cached []domain.Review
		if ok, _ := r.cache.Get(ctx, reviewsCacheKey(roomID), &cached); ok {
			r.mu.Lock()
			r.roomID, r.reviews = roomID, cached
			r.mu.Unlock()
			return nil
		}
	}

	reviews, err := r.gw.ListReviews(ctx, roomID)
	if err != nil {
		return gatewayErr("reviews.load", err)
	}
	r.mu.Lock()
	r.roomID, r.reviews = roomID, reviews
	r.mu.Unlock()
	if r.cache != nil {
		_ = r.cache.Set(ctx, reviewsCacheKey(roomID), reviews, cacheTTLSec)
	}
	return nil
}

// Create validates and inserts a review, then reloads the whole list. Volumes
// are small enough that a full reload beats incremental bookkeeping.
func (r *ReviewRepository) Create(ctx context.Context, roomID string, form forms.ReviewForm) error {
	form.Normalize()
	if err := forms.Check(form); err != nil {
		return err
	}
	_, err := r.gw.InsertReview(ctx, domain.Review{
		RoomID:  roomID,
		Name:    form.Name,
		Email:   form.Email,
		Comment: form.Comment,
		Rating:  form.Rating,
	})
	if err != nil {
		return gatewayErr("reviews.create", err)
	}
	r.invalidate(ctx, roomID)
	return r.LoadForRoom(ctx, roomID)
}

// Delete removes a review after the caller-supplied email claim matches the
// stored owner email character for character. A mismatch returns
// ErrEmailMismatch without contacting the gateway.
func (r *ReviewRepository) Delete(ctx context.Context, id, emailClaim string) error {
	r.mu.Lock()
	var target *domain.Review
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			target = &r.reviews[i]
			break
		}
	}
	if target == nil {
		r.mu.Unlock()
		return domain.ErrNotFound
	}
	owner := target.Email
	roomID := r.roomID
	r.mu.Unlock()

	if emailClaim != owner {
		return ErrEmailMismatch
	}
	if err := r.gw.DeleteReview(ctx, id); err != nil {
		return gatewayErr("reviews.delete", err)
	}
	r.invalidate(ctx, roomID)
	return r.LoadForRoom(ctx, roomID)
}

func (r *ReviewRepository) invalidate(ctx context.Context, roomID string) {
	if r.cache != nil {
		_ = r.cache.Del(ctx, reviewsCacheKey(roomID))
	}
}
