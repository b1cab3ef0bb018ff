package model

import "time"

// Experience is immutable catalog data, seeded once at process start.
type Experience struct {
	ID           string   `json:"id" bson:"_id"`
	Title        string   `json:"title" bson:"title"`
	Slug         string   `json:"slug" bson:"slug"`
	Location     string   `json:"location" bson:"location"`
	Description  string   `json:"description" bson:"description"`
	PricePerHead float64  `json:"price_per_head" bson:"price_per_head"`
	Currency     string   `json:"currency" bson:"currency"`
	DurationMins int      `json:"duration_mins" bson:"duration_mins"`
	Rating       float64  `json:"rating,omitempty" bson:"rating,omitempty"`
	Tags         []string `json:"tags,omitempty" bson:"tags,omitempty"`
	ImageURL     string   `json:"image_url,omitempty" bson:"image_url,omitempty"`
}

// ExperienceSummary is the listing shape: the detail fields are dropped
// and the earliest future bookable slot start is attached.
type ExperienceSummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Location      string     `json:"location"`
	PricePerHead  float64    `json:"price_per_head"`
	Currency      string     `json:"currency"`
	DurationMins  int        `json:"duration_mins"`
	Rating        float64    `json:"rating,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	NextAvailable *time.Time `json:"next_available,omitempty"`
}

// Slot is a dated instance of an experience with finite capacity.
// Invariant: 0 <= Remaining <= Capacity; IsSoldOut == (Remaining == 0).
// Only the reservation path mutates Remaining.
type Slot struct {
	ID           string    `json:"id" bson:"_id"`
	ExperienceID string    `json:"experience_id" bson:"experience_id"`
	StartsAt     time.Time `json:"starts_at" bson:"starts_at"`
	Capacity     int       `json:"capacity" bson:"capacity"`
	Remaining    int       `json:"remaining" bson:"remaining"`
	IsSoldOut    bool      `json:"is_sold_out" bson:"is_sold_out"`
}
