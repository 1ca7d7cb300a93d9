// Package outbound builds the messaging side-channel URLs: pre-filled
// WhatsApp drafts for the booking funnel and email drafts for inbox replies.
// Everything here is fire and forget — a URL is opened in a new context and
// no response is ever awaited or parsed.
package outbound

import (
	"fmt"
	"net/url"
)

// Profile is the hotel's outward-facing identity, stamped into drafts.
type Profile struct {
	Name           string
	Email          string
	Phone          string
	WhatsAppNumber string // international digits, no plus sign
	Location       string
}

// BookingMessage is the pre-filled text a guest sends to reserve a room.
func BookingMessage(roomName, checkIn, checkOut string) string {
	return fmt.Sprintf(
		"Hello, I would like to book the %s from %s to %s. Will the room be available?",
		roomName, checkIn, checkOut)
}

// WhatsAppURL builds the wa.me deep link carrying text.
func WhatsAppURL(number, text string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(text)
}

// ContactMessage is the pre-filled text for the general contact funnel.
func ContactMessage(name, body string) string {
	return fmt.Sprintf("Hello, my name is %s. %s", name, body)
}

// ReplyDraft is an outbound email draft with a primary channel (Gmail
// composer) and a fallback (mailto) for other mail clients.
type ReplyDraft struct {
	To        string
	Subject   string
	Body      string
	GmailURL  string
	MailtoURL string
}

// ReplyEmail composes the inbox reply draft addressed to a guest.
func ReplyEmail(p Profile, toName, toEmail, reply string) ReplyDraft {
	subject := "Reply from " + p.Name
	body := fmt.Sprintf(`Hi %s,

%s

Best regards,
%s
Email: %s
Phone: %s
WhatsApp: %s
Location: %s`,
		toName, reply, p.Name, p.Email, p.Phone, p.WhatsAppNumber, p.Location)

	gmail := "https://mail.google.com/mail/?view=cm&fs=1&to=" + url.QueryEscape(toEmail) +
		"&su=" + url.QueryEscape(subject) +
		"&body=" + url.QueryEscape(body)
	mailto := "mailto:" + url.QueryEscape(toEmail) +
		"?subject=" + url.QueryEscape(subject) +
		"&body=" + url.QueryEscape(body)

	return ReplyDraft{
		To:        toEmail,
		Subject:   subject,
		Body:      body,
		GmailURL:  gmail,
		MailtoURL: mailto,
	}
}
