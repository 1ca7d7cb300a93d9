package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Binarybee001/Shabana-Palace/internal/app"
	"github.com/Binarybee001/Shabana-Palace/internal/domain"
	"github.com/Binarybee001/Shabana-Palace/internal/forms"
)

func TestAppendReply_PrependsAndPersistsWholeList(t *testing.T) {
	gw := newFakeGateway()
	gw.messages = []domain.Message{{ID: "M", Replies: []domain.Reply{}}}
	repo := app.NewMessageRepository(gw, nil)
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := repo.AppendReply(context.Background(), "M", "Thanks"); err != nil {
		t.Fatalf("first reply: %v", err)
	}
	if len(gw.messages[0].Replies) != 1 || gw.messages[0].Replies[0].Body != "Thanks" {
		t.Fatalf("persisted replies: %+v", gw.messages[0].Replies)
	}

	if _, err := repo.AppendReply(context.Background(), "M", "Follow up"); err != nil {
		t.Fatalf("second reply: %v", err)
	}
	got := gw.messages[0].Replies
	if len(got) != 2 || got[0].Body != "Follow up" || got[1].Body != "Thanks" {
		t.Fatalf("newest reply must sit at index 0: %+v", got)
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("reply timestamp must be set")
	}
	// whole-list replace, one field update per reply
	if gw.calls["SetReplies"] != 2 {
		t.Fatalf("SetReplies calls: %d", gw.calls["SetReplies"])
	}
}

func TestAppendReply_ReloadsAfterPersist(t *testing.T) {
	gw := newFakeGateway()
	gw.messages = []domain.Message{{ID: "M"}}
	repo := app.NewMessageRepository(gw, nil)
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := repo.AppendReply(context.Background(), "M", "Thanks"); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if gw.calls["ListMessages"] != 2 {
		t.Fatalf("expected reload after reply, ListMessages calls: %d", gw.calls["ListMessages"])
	}
	got := repo.Messages()
	if len(got) != 1 || len(got[0].Replies) != 1 {
		t.Fatalf("mirror after reload: %+v", got)
	}
}

func TestAppendReply_UnknownMessage(t *testing.T) {
	gw := newFakeGateway()
	repo := app.NewMessageRepository(gw, nil)
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := repo.AppendReply(context.Background(), "missing", "hi"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if gw.calls["SetReplies"] != 0 {
		t.Fatal("no gateway call expected for an unknown message")
	}
}

func TestAppendReply_FailureLeavesMirror(t *testing.T) {
	gw := newFakeGateway()
	gw.messages = []domain.Message{{ID: "M"}}
	repo := app.NewMessageRepository(gw, nil)
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	gw.fail["SetReplies"] = errors.New("boom")
	if _, err := repo.AppendReply(context.Background(), "M", "hi"); !errors.Is(err, domain.ErrGateway) {
		t.Fatalf("want gateway error, got %v", err)
	}
	if got := repo.Messages(); len(got[0].Replies) != 0 {
		t.Fatalf("mirror changed on failure: %+v", got)
	}
}

func TestSubmit_ContactMessage(t *testing.T) {
	gw := newFakeGateway()
	repo := app.NewMessageRepository(gw, nil)

	_, err := repo.Submit(context.Background(), forms.ContactForm{
		Name: "Grace Wanjiku", Email: "grace.wanjiku@example.com",
		Message: "Hello, do you have availability for 2 nights next weekend?",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gw.calls["InsertMessage"] != 1 {
		t.Fatalf("inserts: %d", gw.calls["InsertMessage"])
	}

	_, err = repo.Submit(context.Background(), forms.ContactForm{Name: "NoEmail"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if gw.calls["InsertMessage"] != 1 {
		t.Fatal("invalid form must not reach the gateway")
	}
}
