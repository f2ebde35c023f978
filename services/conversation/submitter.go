package conversation

import (
	"context"

	"dinevoice/models"
	"dinevoice/services/booking"
)

// LocalSubmitter creates bookings in-process for server-hosted sessions.
type LocalSubmitter struct {
	Service booking.BookingService
}

func (s LocalSubmitter) Submit(ctx context.Context, draft models.BookingDraft) (*models.Booking, error) {
	return s.Service.CreateBooking(ctx, models.RequestFromDraft(draft))
}
