package outbound_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Binarybee001/Shabana-Palace/internal/outbound"
)

func profile() outbound.Profile {
	return outbound.Profile{
		Name:           "Shabana Palace",
		Email:          "shabana26@gmail.com",
		Phone:          "0742864164",
		WhatsAppNumber: "254742864164",
		Location:       "Kenyatta Avenue, Nakuru, Kenya",
	}
}

func TestWhatsAppURL_EncodesBookingMessage(t *testing.T) {
	msg := outbound.BookingMessage("Deluxe Room", "2026-09-10", "2026-09-12")
	u := outbound.WhatsAppURL("254742864164", msg)

	if !strings.HasPrefix(u, "https://wa.me/254742864164?text=") {
		t.Fatalf("url: %s", u)
	}
	if strings.ContainsAny(strings.TrimPrefix(u, "https://wa.me/254742864164?text="), " \n") {
		t.Fatalf("text not escaped: %s", u)
	}
	if !strings.Contains(u, "Deluxe+Room") {
		t.Fatalf("room name missing: %s", u)
	}
}

func TestReplyEmail_DraftChannels(t *testing.T) {
	d := outbound.ReplyEmail(profile(), "Grace", "grace@example.com", "We have availability.")

	if d.Subject != "Reply from Shabana Palace" {
		t.Fatalf("subject: %q", d.Subject)
	}
	if !strings.Contains(d.Body, "Hi Grace,") || !strings.Contains(d.Body, "We have availability.") {
		t.Fatalf("body: %q", d.Body)
	}
	if !strings.HasPrefix(d.GmailURL, "https://mail.google.com/mail/?view=cm&fs=1&to=grace%40example.com") {
		t.Fatalf("gmail url: %s", d.GmailURL)
	}
	if !strings.HasPrefix(d.MailtoURL, "mailto:grace%40example.com?subject=") {
		t.Fatalf("mailto url: %s", d.MailtoURL)
	}
}

// recordingOpener captures opened URLs.
type recordingOpener struct {
	mu   sync.Mutex
	urls []string
	fail map[string]error
}

func (o *recordingOpener) Open(url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.fail[url]; err != nil {
		return err
	}
	o.urls = append(o.urls, url)
	return nil
}

func (o *recordingOpener) opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.urls...)
}

func TestOpenWithFallback_PrimaryWins(t *testing.T) {
	o := &recordingOpener{}
	outbound.OpenWithFallback(o, "primary://x", "fallback://y", time.Millisecond, func() bool { return true })
	if got := o.opened(); len(got) != 1 || got[0] != "primary://x" {
		t.Fatalf("opened: %v", got)
	}
}

func TestOpenWithFallback_ProbeFailureTriggersFallback(t *testing.T) {
	o := &recordingOpener{}
	outbound.OpenWithFallback(o, "primary://x", "fallback://y", time.Millisecond, func() bool { return false })
	if got := o.opened(); len(got) != 2 || got[1] != "fallback://y" {
		t.Fatalf("opened: %v", got)
	}
}

func TestOpenWithFallback_PrimaryErrorTriggersFallbackImmediately(t *testing.T) {
	o := &recordingOpener{fail: map[string]error{"primary://x": errors.New("blocked")}}
	start := time.Now()
	outbound.OpenWithFallback(o, "primary://x", "fallback://y", time.Second, nil)
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("fallback after a failed primary must not wait out the delay")
	}
	if got := o.opened(); len(got) != 1 || got[0] != "fallback://y" {
		t.Fatalf("opened: %v", got)
	}
}
