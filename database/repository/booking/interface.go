package bookingRepo

import (
	"context"
	"errors"

	"dinevoice/models"
)

// ErrNotFound is returned when no booking has the requested id.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines data access for persisted bookings.
type BookingRepository interface {
	// Create inserts a booking. The caller assigns ID and CreatedAt.
	Create(ctx context.Context, booking *models.Booking) error
	// List returns every booking, newest created first.
	List(ctx context.Context) ([]models.Booking, error)
	// GetByID returns ErrNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// DeleteByID returns ErrNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, id string) error
}
