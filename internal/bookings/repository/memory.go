package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingserrors "bookit/internal/bookings/errors"
	"bookit/pkg/model"
)

// memoryBookingRepository keeps bookings in a map guarded by one RWMutex.
// Copies go in and out; callers never share memory with the store.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*model.Booking
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[string]*model.Booking),
	}
}

func (r *memoryBookingRepository) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bookings[booking.ID]; exists {
		return bookingserrors.ErrDuplicateID
	}

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *memoryBookingRepository) FindByID(_ context.Context, id string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}

	out := *booking
	return &out, nil
}

func (r *memoryBookingRepository) FindByEmail(_ context.Context, email string) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.Booking
	for _, booking := range r.bookings {
		if booking.Email == email {
			b := *booking
			out = append(out, &b)
		}
	}

	// Most recent first.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryBookingRepository) Update(_ context.Context, id string, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.bookings[id]
	if !ok {
		return bookingserrors.ErrNotFound
	}

	updated := *booking
	updated.ID = id
	updated.CreatedAt = existing.CreatedAt
	r.bookings[id] = &updated
	return nil
}

func (r *memoryBookingRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}
