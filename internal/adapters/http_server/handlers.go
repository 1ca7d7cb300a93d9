package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Binarybee001/Shabana-Palace/internal/app"
	"github.com/Binarybee001/Shabana-Palace/internal/auth"
	"github.com/Binarybee001/Shabana-Palace/internal/domain"
	"github.com/Binarybee001/Shabana-Palace/internal/forms"
	"github.com/Binarybee001/Shabana-Palace/internal/outbound"
)

type Handlers struct {
	Rooms    *app.RoomRepository
	Reviews  *app.ReviewRepository
	Messages *app.MessageRepository
	Auth     domain.Authenticator
	Guard    *auth.Guard
	Profile  outbound.Profile
}

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/rooms", h.listRooms)
		r.Get("/rooms/{id}", h.getRoom)
		r.Get("/rooms/{id}/reviews", h.listReviews)
		r.Post("/rooms/{id}/reviews", h.createReview)
		r.Delete("/reviews/{id}", h.deleteReview)
		r.Post("/contact", h.contact)
		r.Post("/booking", h.bookingLink)

		r.Post("/auth/login", h.login)
		r.Post("/auth/logout", h.logout)

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Post("/rooms", h.createRoom)
			r.Patch("/rooms/{id}", h.updateRoom)
			r.Delete("/rooms/{id}", h.deleteRoom)
			r.Get("/messages", h.listMessages)
			r.Post("/messages/{id}/replies", h.reply)
		})
	})
}

// requireAdmin resolves the caller's session and races the role lookup
// against the guard's timeout. Anything short of a positive admin verdict is
// rejected; a missing or expired token never reaches the repositories.
func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			return
		}
		sess, err := h.Auth.Session(r.Context(), token)
		if err != nil {
			renderError(w, err)
			return
		}
		if sess == nil {
			writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid or expired session")
			return
		}
		if state := h.Guard.Check(r.Context(), sess); state != auth.Admin {
			writeProblem(w, http.StatusForbidden, "Forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---- public: rooms ----

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	err := h.Rooms.Load(r.Context())
	rooms := h.Rooms.Rooms()
	if err != nil {
		if len(rooms) == 0 {
			renderError(w, err)
			return
		}
		// serve the last known good listing rather than an empty page
		log.Warn().Err(err).Msg("room refresh failed; serving cached listing")
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Rooms.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// ---- public: reviews ----

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if err := h.Reviews.LoadForRoom(r.Context(), roomID); err != nil {
		renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Reviews.Reviews())
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var form forms.ReviewForm
	if !decodeJSON(w, r, &form) {
		return
	}
	roomID := chi.URLParam(r, "id")
	if err := h.Reviews.Create(r.Context(), roomID, form); err != nil {
		renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.Reviews.Reviews())
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	var claim struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &claim) {
		return
	}
	if err := h.Reviews.Delete(r.Context(), chi.URLParam(r, "id"), claim.Email); err != nil {
		renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- public: contact and booking funnels ----

func (h *Handlers) contact(w http.ResponseWriter, r *http.Request) {
	var form forms.ContactForm
	if !decodeJSON(w, r, &form) {
		return
	}
	msg, err := h.Messages.Submit(r.Context(), form)
	if err != nil {
		renderError(w, err)
		return
	}
	text := outbound.ContactMessage(form.Name, form.Message)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":      msg,
		"whatsapp_url": outbound.WhatsAppURL(h.Profile.WhatsAppNumber, text),
	})
}

// bookingLink turns a validated booking request into a WhatsApp draft. No
// row is written; the reservation itself happens in the chat.
func (h *Handlers) bookingLink(w http.ResponseWriter, r *http.Request) {
	var form forms.BookingForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if err := forms.Check(form); err != nil {
		renderError(w, err)
		return
	}
	text := outbound.BookingMessage(form.RoomName, form.CheckIn, form.CheckOut)
	writeJSON(w, http.StatusOK, map[string]any{
		"text":         text,
		"whatsapp_url": outbound.WhatsAppURL(h.Profile.WhatsAppNumber, text),
	})
}

// ---- auth ----

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var form forms.LoginForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if err := forms.Check(form); err != nil {
		renderError(w, err)
		return
	}
	sess, err := h.Auth.SignIn(r.Context(), form.Email, form.Password)
	if err != nil {
		renderError(w, err)
		return
	}
	state := h.Guard.OnAuthChange(r.Context(), &sess)
	writeJSON(w, http.StatusOK, map[string]any{
		"session": sess,
		"role":    state.String(),
	})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		if err := h.Auth.SignOut(r.Context(), token); err != nil {
			log.Warn().Err(err).Msg("sign-out failed")
		}
	}
	h.Guard.OnAuthChange(r.Context(), nil)
	w.WriteHeader(http.StatusNoContent)
}

// ---- admin: rooms ----

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var form forms.RoomForm
	if !decodeJSON(w, r, &form) {
		return
	}
	room, err := h.Rooms.Create(r.Context(), form)
	if err != nil {
		renderError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	var form forms.RoomForm
	if !decodeJSON(w, r, &form) {
		return
	}
	room, err := h.Rooms.Update(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Rooms.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		renderError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- admin: inbox ----

func (h *Handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	err := h.Messages.Load(r.Context())
	msgs := h.Messages.Messages()
	if err != nil && len(msgs) == 0 {
		renderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (h *Handlers) reply(w http.ResponseWriter, r *http.Request) {
	var form forms.ReplyForm
	if !decodeJSON(w, r, &form) {
		return
	}
	if err := forms.Check(form); err != nil {
		renderError(w, err)
		return
	}
	msg, err := h.Messages.AppendReply(r.Context(), chi.URLParam(r, "id"), form.Body)
	if err != nil {
		renderError(w, err)
		return
	}
	draft := outbound.ReplyEmail(h.Profile, msg.Name, msg.Email, form.Body)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": msg,
		"draft":   draft,
	})
}

// ---- plumbing ----

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// renderError maps the error taxonomy onto problem responses. Field-level
// validation failures carry their per-field messages so the form can show
// them inline.
func renderError(w http.ResponseWriter, err error) {
	var fe *forms.FieldErrors
	switch {
	case errors.As(err, &fe):
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(problem{
			Type:   "about:blank",
			Title:  "Validation Failed",
			Status: http.StatusUnprocessableEntity,
			Fields: fe.Fields,
		})
	case errors.Is(err, app.ErrEmailMismatch):
		writeProblem(w, http.StatusForbidden, "Forbidden", "you can only delete your own review")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "no such record")
	case errors.Is(err, domain.ErrAuth):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.Is(err, domain.ErrTimeout):
		writeProblem(w, http.StatusGatewayTimeout, "Gateway Timeout", "the table service did not answer in time")
	case errors.Is(err, domain.ErrGateway):
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "the table service is unavailable")
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
