package bookinglist

import (
	"context"
	"fmt"
	"sync"

	"dinevoice/models"

	"go.uber.org/zap"
)

const (
	EmptyPlaceholder    = "No bookings yet. Create one using the voice assistant."
	DeleteConfirmPrompt = "Are you sure you want to delete this booking?"
	DeleteFailedAlert   = "Error deleting booking. Please try again."
	LoadFailedAlert     = "Error loading bookings. Please try again."
)

// Backend is the part of the bookings API the list needs.
type Backend interface {
	ListBookings(ctx context.Context) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Row is one rendered booking.
type Row struct {
	ID       string
	Title    string
	Subtitle string
}

// ViewModel mirrors the server's booking list. It never touches conversation
// state and is safe to refresh while a submission is in flight.
type ViewModel struct {
	backend Backend
	confirm Confirmer
	logger  *zap.Logger

	mu       sync.Mutex
	bookings []models.Booking
	alert    string
}

func NewViewModel(backend Backend, confirm Confirmer, logger *zap.Logger) *ViewModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewModel{backend: backend, confirm: confirm, logger: logger}
}

// Refresh replaces the list with the server's. On failure the previous list
// stays and Alert is set.
func (vm *ViewModel) Refresh(ctx context.Context) ([]models.Booking, error) {
	bookings, err := vm.backend.ListBookings(ctx)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err != nil {
		vm.logger.Error("Failed to load bookings", zap.Error(err))
		vm.alert = LoadFailedAlert
		return vm.copyLocked(), err
	}
	vm.bookings = bookings
	vm.alert = ""
	return vm.copyLocked(), nil
}

// Remove deletes a booking after the user confirms. It reports false with a
// nil error when the user declines.
func (vm *ViewModel) Remove(ctx context.Context, id string) (bool, error) {
	if vm.confirm != nil && !vm.confirm.Confirm(DeleteConfirmPrompt) {
		return false, nil
	}

	if err := vm.backend.DeleteBooking(ctx, id); err != nil {
		vm.logger.Error("Failed to delete booking", zap.String("bookingID", id), zap.Error(err))
		vm.mu.Lock()
		vm.alert = DeleteFailedAlert
		vm.mu.Unlock()
		return false, err
	}

	if _, err := vm.Refresh(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (vm *ViewModel) Bookings() []models.Booking {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.copyLocked()
}

// Alert returns the last failure message, or "" after a successful refresh.
func (vm *ViewModel) Alert() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.alert
}

func (vm *ViewModel) Rows() []Row {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	rows := make([]Row, 0, len(vm.bookings))
	for _, b := range vm.bookings {
		rows = append(rows, rowFor(b))
	}
	return rows
}

// Render returns printable lines, or the placeholder for an empty list.
func (vm *ViewModel) Render() []string {
	rows := vm.Rows()
	if len(rows) == 0 {
		return []string{EmptyPlaceholder}
	}
	lines := make([]string, 0, len(rows)*2)
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("[%s] %s", r.ID, r.Title), "    "+r.Subtitle)
	}
	return lines
}

func rowFor(b models.Booking) Row {
	cuisine := b.CuisinePreference
	if cuisine == "" {
		cuisine = "Any"
	}
	return Row{
		ID:    b.ID,
		Title: fmt.Sprintf("%s - %d guests", b.CustomerName, b.NumberOfGuests),
		Subtitle: fmt.Sprintf("%s | Time: %s | Seating: %s | Cuisine: %s",
			b.BookingDateHuman, b.BookingTime, b.SeatingPreference, cuisine),
	}
}

func (vm *ViewModel) copyLocked() []models.Booking {
	return append([]models.Booking(nil), vm.bookings...)
}
