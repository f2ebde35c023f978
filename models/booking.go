package models

import "time"

// Seating preferences accepted by the store. New bookings are always indoor.
const (
	SeatingIndoor  = "indoor"
	SeatingOutdoor = "outdoor"
)

// Booking is a persisted table reservation. It is immutable once created;
// the only write after creation is deletion.
type Booking struct {
	ID                string    `bson:"id" json:"id"`
	CustomerName      string    `bson:"customerName" json:"customerName"`
	NumberOfGuests    int       `bson:"numberOfGuests" json:"numberOfGuests"`
	BookingDateISO    time.Time `bson:"bookingDateISO" json:"bookingDateISO"`
	BookingDateHuman  string    `bson:"bookingDateHuman" json:"bookingDateHuman"`
	BookingTime       string    `bson:"bookingTime" json:"bookingTime"`
	CuisinePreference string    `bson:"cuisinePreference,omitempty" json:"cuisinePreference,omitempty"`
	SpecialRequests   string    `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	LocationCity      string    `bson:"locationCity,omitempty" json:"locationCity,omitempty"`
	SeatingPreference string    `bson:"seatingPreference" json:"seatingPreference"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingDraft is the record a conversation fills in one stage at a time.
// BookingDateHuman is frozen when the date is resolved and is never derived
// from BookingDateISO later.
type BookingDraft struct {
	CustomerName      string    `json:"customerName,omitempty"`
	NumberOfGuests    int       `json:"numberOfGuests,omitempty"`
	BookingDateISO    time.Time `json:"bookingDateISO,omitempty"`
	BookingDateHuman  string    `json:"bookingDateHuman,omitempty"`
	BookingTime       string    `json:"bookingTime,omitempty"`
	CuisinePreference string    `json:"cuisinePreference,omitempty"`
	SpecialRequests   string    `json:"specialRequests,omitempty"`
	LocationCity      string    `json:"locationCity,omitempty"`
}

// IsZero reports whether nothing has been collected yet.
func (d BookingDraft) IsZero() bool {
	return d == BookingDraft{}
}

// CreateBookingRequest is the body of POST /api/bookings. Seating is not
// accepted from clients.
type CreateBookingRequest struct {
	CustomerName      string    `json:"customerName" binding:"required"`
	NumberOfGuests    int       `json:"numberOfGuests" binding:"required,min=1"`
	BookingDateISO    time.Time `json:"bookingDateISO" binding:"required"`
	BookingDateHuman  string    `json:"bookingDateHuman" binding:"required"`
	BookingTime       string    `json:"bookingTime" binding:"required"`
	CuisinePreference string    `json:"cuisinePreference"`
	SpecialRequests   string    `json:"specialRequests"`
	LocationCity      string    `json:"locationCity"`
}

// RequestFromDraft converts a finished conversation draft into a create request.
func RequestFromDraft(d BookingDraft) CreateBookingRequest {
	return CreateBookingRequest{
		CustomerName:      d.CustomerName,
		NumberOfGuests:    d.NumberOfGuests,
		BookingDateISO:    d.BookingDateISO,
		BookingDateHuman:  d.BookingDateHuman,
		BookingTime:       d.BookingTime,
		CuisinePreference: d.CuisinePreference,
		SpecialRequests:   d.SpecialRequests,
		LocationCity:      d.LocationCity,
	}
}

// CreateBookingResponse is returned by POST /api/bookings.
type CreateBookingResponse struct {
	Success bool     `json:"success"`
	Booking *Booking `json:"booking,omitempty"`
	Message string   `json:"message,omitempty"`
}
