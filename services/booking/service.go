package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "dinevoice/database/repository/booking"
	"dinevoice/models"
	"dinevoice/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewBookingService wires the default service with a UUID generator.
func NewBookingService(repo bookingRepo.BookingRepository, clock utils.Clock, logger *zap.Logger) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:   repo,
		Clock:  clock,
		Logger: logger,
		NewID:  func() string { return uuid.New().String() },
	}
}

func validate(req models.CreateBookingRequest) error {
	switch {
	case strings.TrimSpace(req.CustomerName) == "":
		return ValidationError{Field: "customerName", Reason: "is required"}
	case req.NumberOfGuests < 1:
		return ValidationError{Field: "numberOfGuests", Reason: "must be at least 1"}
	case req.BookingDateISO.IsZero():
		return ValidationError{Field: "bookingDateISO", Reason: "is required"}
	case strings.TrimSpace(req.BookingDateHuman) == "":
		return ValidationError{Field: "bookingDateHuman", Reason: "is required"}
	case strings.TrimSpace(req.BookingTime) == "":
		return ValidationError{Field: "bookingTime", Reason: "is required"}
	}
	return nil
}

// CreateBooking persists a booking in one insert. Seating is always indoor.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:                s.NewID(),
		CustomerName:      req.CustomerName,
		NumberOfGuests:    req.NumberOfGuests,
		BookingDateISO:    req.BookingDateISO.UTC(),
		BookingDateHuman:  req.BookingDateHuman,
		BookingTime:       req.BookingTime,
		CuisinePreference: req.CuisinePreference,
		SpecialRequests:   req.SpecialRequests,
		LocationCity:      req.LocationCity,
		SeatingPreference: models.SeatingIndoor,
		CreatedAt:         s.Clock.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		s.Logger.Error("Failed to create booking", zap.String("customer", b.CustomerName), zap.Error(err))
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.Logger.Info("Booking created",
		zap.String("id", b.ID),
		zap.Int("guests", b.NumberOfGuests),
		zap.String("date", b.BookingDateHuman),
	)
	return b, nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (s *DefaultBookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	s.Logger.Info("Booking deleted", zap.String("id", id))
	return nil
}
