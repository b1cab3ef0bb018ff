package model

import "time"

// Inquiry statuses mutable through the admin surface.
const (
	RequestPending   = "PENDING"
	RequestContacted = "CONTACTED"
	RequestSent      = "SENT"
	RequestClosed    = "CLOSED"
)

// CallbackRequest is a trip-planning inquiry tied to an experience.
// Status moves PENDING -> CONTACTED -> CLOSED.
type CallbackRequest struct {
	ID           string    `json:"id" bson:"_id"`
	ExperienceID string    `json:"experience_id" bson:"experience_id" validate:"required"`
	Name         string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	Phone        string    `json:"phone" bson:"phone" validate:"required,min=10,max=16"`
	City         string    `json:"city" bson:"city" validate:"required,min=1,max=100"`
	Adults       int       `json:"adults" bson:"adults" validate:"min=1,max=20"`
	Children     int       `json:"children" bson:"children" validate:"min=0,max=20"`
	Infants      int       `json:"infants" bson:"infants" validate:"min=0,max=20"`
	DateOfTravel time.Time `json:"date_of_travel" bson:"date_of_travel" validate:"required"`
	Query        string    `json:"query" bson:"query" validate:"required,min=10,max=2000"`
	Status       string    `json:"status" bson:"status" validate:"omitempty,oneof=PENDING CONTACTED CLOSED"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// MessageRequest is a lighter "message me about this experience" inquiry.
// Status moves PENDING -> SENT -> CLOSED.
type MessageRequest struct {
	ID           string    `json:"id" bson:"_id"`
	ExperienceID string    `json:"experience_id" bson:"experience_id" validate:"required"`
	Name         string    `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	Phone        string    `json:"phone" bson:"phone" validate:"required,min=10,max=16"`
	Status       string    `json:"status" bson:"status" validate:"omitempty,oneof=PENDING SENT CLOSED"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
