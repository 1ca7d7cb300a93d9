package forms_test

import (
	"errors"
	"testing"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
	"github.com/Binarybee001/Shabana-Palace/internal/forms"
)

func validRoom() forms.RoomForm {
	return forms.RoomForm{
		Name:          "Deluxe Room",
		Number:        "201",
		PricePerNight: 5000,
		Beds:          2,
		Description:   "Spacious room with extra amenities for a premium experience.",
		Amenities:     []string{"WiFi", "Hot Shower"},
		Photos:        []string{"photos/201-1.jpg"},
	}
}

func TestRoomForm_Valid(t *testing.T) {
	if err := forms.Check(validRoom()); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
}

func TestRoomForm_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*forms.RoomForm)
		field  string
	}{
		{"short name", func(f *forms.RoomForm) { f.Name = "X" }, "name"},
		{"missing number", func(f *forms.RoomForm) { f.Number = "" }, "number"},
		{"zero price", func(f *forms.RoomForm) { f.PricePerNight = 0 }, "pricePerNight"},
		{"price too high", func(f *forms.RoomForm) { f.PricePerNight = 2_000_000 }, "pricePerNight"},
		{"zero beds", func(f *forms.RoomForm) { f.Beds = 0 }, "beds"},
		{"too many beds", func(f *forms.RoomForm) { f.Beds = 21 }, "beds"},
		{"short description", func(f *forms.RoomForm) { f.Description = "tiny" }, "description"},
		{"no amenities", func(f *forms.RoomForm) { f.Amenities = nil }, "amenities"},
		{"no photos", func(f *forms.RoomForm) { f.Photos = []string{} }, "photos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validRoom()
			tt.mutate(&f)
			err := forms.Check(f)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("not a validation error: %v", err)
			}
			var fe *forms.FieldErrors
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldErrors, got %T", err)
			}
			if _, ok := fe.Fields[tt.field]; !ok {
				t.Fatalf("expected message for %q, got %v", tt.field, fe.Fields)
			}
		})
	}
}

func TestReviewForm_DefaultRating(t *testing.T) {
	f := forms.ReviewForm{Name: "Ana", Email: "ana@example.com", Comment: "Great stay"}
	f.Normalize()
	if f.Rating != 5 {
		t.Fatalf("rating default: got %d, want 5", f.Rating)
	}
	if err := forms.Check(f); err != nil {
		t.Fatalf("normalized form rejected: %v", err)
	}

	f.Rating = 6
	if err := forms.Check(f); err == nil {
		t.Fatal("rating 6 should be rejected")
	}
}

func TestBookingForm_CheckOutMustFollowCheckIn(t *testing.T) {
	f := forms.BookingForm{
		Name: "Grace", RoomName: "Standard Room",
		CheckIn: "2026-09-12", CheckOut: "2026-09-10",
	}
	err := forms.Check(f)
	if err == nil {
		t.Fatal("expected error for reversed dates")
	}
	var fe *forms.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T", err)
	}
	if fe.Fields["check_out"] == "" {
		t.Fatalf("expected check_out message, got %v", fe.Fields)
	}

	f.CheckOut = "2026-09-14"
	if err := forms.Check(f); err != nil {
		t.Fatalf("valid booking rejected: %v", err)
	}
}

func TestLoginForm(t *testing.T) {
	if err := forms.Check(forms.LoginForm{Email: "x@y.com", Password: "secret1"}); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}
	if err := forms.Check(forms.LoginForm{Email: "not-an-email", Password: "secret1"}); err == nil {
		t.Fatal("bad email accepted")
	}
	if err := forms.Check(forms.LoginForm{Email: "x@y.com", Password: "short"}); err == nil {
		t.Fatal("short password accepted")
	}
}
