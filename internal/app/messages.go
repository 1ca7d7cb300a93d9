package app

import (
	"context"
	"sync"
	"time"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
	"github.com/Binarybee001/Shabana-Palace/internal/forms"
)

// MessageRepository mirrors the inbox: inbound contact messages with their
// embedded reply lists, newest first.
type MessageRepository struct {
	gw    domain.Gateway
	cache domain.Cache // optional
	now   func() time.Time

	mu       sync.Mutex
	messages []domain.Message
	loading  bool
}

func NewMessageRepository(gw domain.Gateway, cache domain.Cache) *MessageRepository {
	return &MessageRepository{gw: gw, cache: cache, now: time.Now}
}

func (r *MessageRepository) Messages() []domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *MessageRepository) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Load fetches all messages and replaces the mirror.
func (r *MessageRepository) Load(ctx context.Context) error {
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
		var cached []domain.Message
		if ok, _ := r.cache.Get(ctx, messagesCacheKey, &cached); ok {
			r.mu.Lock()
			r.messages = cached
			r.mu.Unlock()
			return nil
		}
	}

	msgs, err := r.gw.ListMessages(ctx)
	if err != nil {
		return gatewayErr("messages.load", err)
	}
	r.mu.Lock()
	r.messages = msgs
	r.mu.Unlock()
	if r.cache != nil {
		_ = r.cache.Set(ctx, messagesCacheKey, msgs, cacheTTLSec)
	}
	return nil
}

// Submit validates and records an inbound message from the public contact
// form.
func (r *MessageRepository) Submit(ctx context.Context, form forms.ContactForm) (domain.Message, error) {
	if err := forms.Check(form); err != nil {
		return domain.Message{}, err
	}
	created, err := r.gw.InsertMessage(ctx, domain.Message{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Body:    form.Message,
		Replies: []domain.Reply{},
	})
	if err != nil {
		return domain.Message{}, gatewayErr("messages.submit", err)
	}
	r.invalidate(ctx)
	return created, nil
}

// AppendReply prepends a new reply (index 0 is always the most recent) and
// persists the entire updated list as one field update — replies are an
// embedded array on the message row, so whole-list replace is the contract,
// not row-level append. On success the message list is reloaded.
func (r *MessageRepository) AppendReply(ctx context.Context, id, body string) (domain.Message, error) {
	r.mu.Lock()
	var prior []domain.Reply
	found := false
	for i := range r.messages {
		if r.messages[i].ID == id {
			prior = r.messages[i].Replies
			found = true
			break
		}
	}
	r.mu.Unlock()
	if !found {
		return domain.Message{}, domain.ErrNotFound
	}

	replies := make([]domain.Reply, 0, len(prior)+1)
	replies = append(replies, domain.Reply{Body: body, CreatedAt: r.now().UTC()})
	replies = append(replies, prior...)

	updated, err := r.gw.SetReplies(ctx, id, replies)
	if err != nil {
		return domain.Message{}, gatewayErr("messages.reply", err)
	}
	r.invalidate(ctx)
	if err := r.Load(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

func (r *MessageRepository) invalidate(ctx context.Context) {
	if r.cache != nil {
		_ = r.cache.Del(ctx, messagesCacheKey)
	}
}
