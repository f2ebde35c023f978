package booking

import (
	"context"

	bookingRepo "dinevoice/database/repository/booking"
	"dinevoice/models"
	"dinevoice/utils"

	"go.uber.org/zap"
)

// BookingService is the backend contract shared by the REST handlers and
// server-hosted voice sessions.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// DefaultBookingService implements BookingService on a BookingRepository.
type DefaultBookingService struct {
	Repo   bookingRepo.BookingRepository
	Clock  utils.Clock
	Logger *zap.Logger
	NewID  func() string
}
