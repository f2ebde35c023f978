package bookinglist

import (
	"context"
	"errors"
	"testing"

	"dinevoice/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	bookings  []models.Booking
	listErr   error
	deleteErr error
	deleted   []string
	lists     int
}

func (f *fakeBackend) ListBookings(ctx context.Context) ([]models.Booking, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Booking(nil), f.bookings...), nil
}

func (f *fakeBackend) DeleteBooking(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.bookings[:0]
	for _, b := range f.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	f.bookings = kept
	return nil
}

func sampleBookings() []models.Booking {
	return []models.Booking{
		{ID: "b-2", CustomerName: "Maria", NumberOfGuests: 4, BookingDateHuman: "Mon Oct 19 2026",
			BookingTime: "7pm", SeatingPreference: models.SeatingIndoor, CuisinePreference: "italian"},
		{ID: "b-1", CustomerName: "John Smith", NumberOfGuests: 2, BookingDateHuman: "Sun Oct 18 2026",
			BookingTime: "8pm", SeatingPreference: models.SeatingIndoor},
	}
}

func yes() Confirmer { return ConfirmFunc(func(string) bool { return true }) }

func TestRefreshIsIdempotent(t *testing.T) {
	backend := &fakeBackend{bookings: sampleBookings()}
	vm := NewViewModel(backend, yes(), nil)
	ctx := context.Background()

	first, err := vm.Refresh(ctx)
	require.NoError(t, err)
	second, err := vm.Refresh(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, vm.Render(), vm.Render())
	assert.Equal(t, 2, backend.lists)
}

func TestRender(t *testing.T) {
	vm := NewViewModel(&fakeBackend{bookings: sampleBookings()}, yes(), nil)
	_, err := vm.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"[b-2] Maria - 4 guests",
		"    Mon Oct 19 2026 | Time: 7pm | Seating: indoor | Cuisine: italian",
		"[b-1] John Smith - 2 guests",
		"    Sun Oct 18 2026 | Time: 8pm | Seating: indoor | Cuisine: Any",
	}, vm.Render())
}

func TestRenderEmpty(t *testing.T) {
	vm := NewViewModel(&fakeBackend{}, yes(), nil)
	_, err := vm.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{EmptyPlaceholder}, vm.Render())
}

func TestRemoveConfirmed(t *testing.T) {
	backend := &fakeBackend{bookings: sampleBookings()}
	var asked string
	vm := NewViewModel(backend, ConfirmFunc(func(p string) bool { asked = p; return true }), nil)

	removed, err := vm.Remove(context.Background(), "b-1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, DeleteConfirmPrompt, asked)
	assert.Equal(t, []string{"b-1"}, backend.deleted)
	require.Len(t, vm.Bookings(), 1)
	assert.Equal(t, "b-2", vm.Bookings()[0].ID)
}

func TestRemoveDeclined(t *testing.T) {
	backend := &fakeBackend{bookings: sampleBookings()}
	vm := NewViewModel(backend, ConfirmFunc(func(string) bool { return false }), nil)

	removed, err := vm.Remove(context.Background(), "b-1")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, backend.deleted)
	assert.Zero(t, backend.lists)
}

func TestRemoveFailureSetsAlert(t *testing.T) {
	backend := &fakeBackend{bookings: sampleBookings(), deleteErr: errors.New("500")}
	vm := NewViewModel(backend, yes(), nil)
	_, err := vm.Refresh(context.Background())
	require.NoError(t, err)

	removed, err := vm.Remove(context.Background(), "b-1")
	assert.Error(t, err)
	assert.False(t, removed)
	assert.Equal(t, DeleteFailedAlert, vm.Alert())
	assert.Len(t, vm.Bookings(), 2)
}

func TestRefreshFailureKeepsList(t *testing.T) {
	backend := &fakeBackend{bookings: sampleBookings()}
	vm := NewViewModel(backend, yes(), nil)
	_, err := vm.Refresh(context.Background())
	require.NoError(t, err)

	backend.listErr = errors.New("offline")
	got, err := vm.Refresh(context.Background())
	assert.Error(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, LoadFailedAlert, vm.Alert())

	backend.listErr = nil
	_, err = vm.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, vm.Alert())
}
