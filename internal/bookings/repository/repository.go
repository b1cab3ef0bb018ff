package repository

import (
	"context"

	"bookit/pkg/model"
)

// BookingRepository is the persistence boundary for booking records. Two
// implementations exist: the in-memory store (default) and a MongoDB
// adapter for durable deployments.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]*model.Booking, error)
	Update(ctx context.Context, id string, booking *model.Booking) error
	Count(ctx context.Context) (int64, error)
}
