package model

import "time"

const (
	BookingConfirmed = "CONFIRMED"
	BookingFailed    = "FAILED"
	BookingCancelled = "CANCELLED"
)

type Booking struct {
	ID           string    `json:"id" bson:"_id"`
	ExperienceID string    `json:"experience_id" bson:"experience_id"`
	SlotID       string    `json:"slot_id" bson:"slot_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	Adults       int       `json:"adults" bson:"adults"`
	Children     int       `json:"children" bson:"children"`
	Infants      int       `json:"infants" bson:"infants"`
	PromoCode    string    `json:"promo_code,omitempty" bson:"promo_code,omitempty"`
	Subtotal     float64   `json:"subtotal" bson:"subtotal"`
	Discount     float64   `json:"discount" bson:"discount"`
	Total        float64   `json:"total" bson:"total"`
	Status       string    `json:"status" bson:"status"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// NumGuests is the seat count the booking holds against its slot.
func (b *Booking) NumGuests() int {
	return b.Adults + b.Children + b.Infants
}

// CheckoutInput is the user-facing checkout payload. BookingID is set only
// when editing an existing booking, in which case capacity math credits
// back the seats that booking already holds.
type CheckoutInput struct {
	BookingID    string `json:"booking_id,omitempty" validate:"omitempty,uuid4"`
	ExperienceID string `json:"experience_id" validate:"required"`
	SlotID       string `json:"slot_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=10,max=16"`
	Adults       int    `json:"adults" validate:"min=0,max=10"`
	Children     int    `json:"children" validate:"min=0,max=10"`
	Infants      int    `json:"infants" validate:"min=0,max=10"`
	PromoCode    string `json:"promo_code,omitempty" validate:"omitempty,max=32"`
}

func (in *CheckoutInput) NumGuests() int {
	return in.Adults + in.Children + in.Infants
}

// CheckoutResult is returned to the caller on a successful checkout.
type CheckoutResult struct {
	Booking          *Booking `json:"booking"`
	ConfirmationCode string   `json:"confirmation_code"`
	Total            float64  `json:"total"`
	Edited           bool     `json:"edited,omitempty"`
}
