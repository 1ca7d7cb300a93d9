// Package forms is the schema-checked input layer. Every public or admin form
// is validated here before any repository call; a failed check never reaches
// the gateway.
package forms

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RoomForm is the admin create/edit payload. A new listing needs at least one
// photo and one amenity.
type RoomForm struct {
	Name          string   `json:"name" validate:"required,min=2,max=80"`
	Number        string   `json:"number" validate:"required,min=1,max=20"`
	PricePerNight int      `json:"price_per_night" validate:"required,min=1,max=1000000"`
	Beds          int      `json:"beds" validate:"required,min=1,max=20"`
	Description   string   `json:"description" validate:"required,min=10,max=600"`
	Amenities     []string `json:"amenities" validate:"required,min=1,dive,required"`
	Photos        []string `json:"photos" validate:"required,min=1,dive,required"`
}

type ReviewForm struct {
	Name    string `json:"name" validate:"required,max=80"`
	Email   string `json:"email" validate:"required,email"`
	Comment string `json:"comment" validate:"required,max=1000"`
	Rating  int    `json:"rating" validate:"min=1,max=5"`
}

// Normalize applies the star-widget default: an unspecified rating means 5.
func (f *ReviewForm) Normalize() {
	if f.Rating == 0 {
		f.Rating = 5
	}
}

type ContactForm struct {
	Name    string `json:"name" validate:"required,max=80"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Message string `json:"message" validate:"required,min=2,max=1000"`
}

// BookingForm feeds the outbound WhatsApp draft; it never reaches a table.
type BookingForm struct {
	Name     string `json:"name" validate:"required,max=80"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	RoomName string `json:"room_name" validate:"required"`
	CheckIn  string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

func (f BookingForm) extraChecks() map[string]string {
	in, err1 := time.Parse("2006-01-02", f.CheckIn)
	out, err2 := time.Parse("2006-01-02", f.CheckOut)
	if err1 != nil || err2 != nil {
		return nil // the datetime tags already flagged these
	}
	if !out.After(in) {
		return map[string]string{"check_out": "must be after check-in"}
	}
	return nil
}

// ReplyForm is the admin inbox reply; the body lands both in the stored
// reply list and in the outbound email draft.
type ReplyForm struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// FieldErrors carries one inline message per offending field. It unwraps to
// domain.ErrValidation so callers can branch on the taxonomy.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e *FieldErrors) Unwrap() error { return domain.ErrValidation }

// extraChecks lets a form add cross-field rules the tag language cannot
// express. Messages are merged into the same per-field map.
type extraChecker interface {
	extraChecks() map[string]string
}

// Check validates a form and converts validator output into per-field
// messages.
func Check(form any) error {
	fields := make(map[string]string)
	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		for _, fe := range verrs {
			fields[fieldName(fe)] = message(fe)
		}
	}
	if ec, ok := form.(extraChecker); ok && len(fields) == 0 {
		for f, msg := range ec.extraChecks() {
			fields[f] = msg
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &FieldErrors{Fields: fields}
}

func fieldName(fe validator.FieldError) string {
	// strip the struct prefix: "RoomForm.Name" -> "name"
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns[:1]) + ns[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind().String() == "slice" {
			return "needs at least " + fe.Param() + " entry"
		}
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	case "gtfield":
		return "must be after check-in"
	default:
		return "is invalid"
	}
}
