package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"dinevoice/models"
	"dinevoice/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type fakeSubmitter struct {
	err   error
	calls []models.BookingDraft
}

func (f *fakeSubmitter) Submit(ctx context.Context, draft models.BookingDraft) (*models.Booking, error) {
	f.calls = append(f.calls, draft)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{
		ID:                "b-1",
		CustomerName:      draft.CustomerName,
		NumberOfGuests:    draft.NumberOfGuests,
		BookingDateISO:    draft.BookingDateISO,
		BookingDateHuman:  draft.BookingDateHuman,
		BookingTime:       draft.BookingTime,
		CuisinePreference: draft.CuisinePreference,
		SpecialRequests:   draft.SpecialRequests,
		LocationCity:      draft.LocationCity,
		SeatingPreference: models.SeatingIndoor,
		CreatedAt:         fixedNow,
	}, nil
}

func newTestMachine(sub Submitter) *Machine {
	return NewMachine(utils.FixedClock{T: fixedNow}, sub, nil)
}

var mariaScript = []string{"maria", "four", "tomorrow", "7pm", "italian", "no", "boston"}

const mariaConfirmation = "Your table is confirmed, Maria, for 4 guests on Mon Oct 19 2026 at 7pm, with indoor seating. See you soon!"

func TestMachineWalksEveryStage(t *testing.T) {
	m := newTestMachine(&fakeSubmitter{})
	ctx := context.Background()

	tr := m.Advance(ctx, StageIdle, models.BookingDraft{}, "")
	assert.Equal(t, StageAskName, tr.Next)
	assert.Equal(t, promptWelcome, tr.Prompt)
	assert.True(t, tr.Listen)
	assert.True(t, tr.Draft.IsZero())

	want := []Stage{StageAskGuests, StageAskDate, StageAskTime, StageAskCuisine, StageAskSpecial, StageAskCity, StageConfirming}
	stage, draft := tr.Next, tr.Draft
	for i, utterance := range mariaScript {
		tr = m.Advance(ctx, stage, draft, utterance)
		require.Equal(t, want[i], tr.Next, "after %q", utterance)
		assert.Equal(t, tr.Next != StageConfirming, tr.Listen)
		stage, draft = tr.Next, tr.Draft
	}

	assert.Equal(t, models.BookingDraft{
		CustomerName:      "Maria",
		NumberOfGuests:    4,
		BookingDateISO:    fixedNow.AddDate(0, 0, 1),
		BookingDateHuman:  "Mon Oct 19 2026",
		BookingTime:       "7pm",
		CuisinePreference: "italian",
		SpecialRequests:   "None",
		LocationCity:      "Boston",
	}, draft)

	tr = m.Advance(ctx, stage, draft, "")
	assert.Equal(t, StageComplete, tr.Next)
	assert.Equal(t, mariaConfirmation, tr.Prompt)
	assert.False(t, tr.Listen)
	require.NotNil(t, tr.Booking)
	assert.Equal(t, "b-1", tr.Booking.ID)
	assert.Equal(t, draft, tr.Draft)
}

func TestMachinePromptsEchoCapturedValues(t *testing.T) {
	m := newTestMachine(&fakeSubmitter{})
	ctx := context.Background()

	tr := m.Advance(ctx, StageAskName, models.BookingDraft{}, "john smith")
	assert.Contains(t, tr.Prompt, "John Smith")

	tr = m.Advance(ctx, StageAskGuests, tr.Draft, "3 guests")
	assert.Contains(t, tr.Prompt, "3 guests")

	tr = m.Advance(ctx, StageAskDate, tr.Draft, "day after tomorrow")
	assert.Contains(t, tr.Prompt, "Tue Oct 20 2026")
}

func TestMachineSubmissionFailure(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("connection refused")}
	m := newTestMachine(sub)
	draft := models.BookingDraft{CustomerName: "Maria", NumberOfGuests: 4, BookingTime: "7pm"}

	tr := m.Advance(context.Background(), StageConfirming, draft, "")
	assert.Equal(t, StageIdle, tr.Next)
	assert.Equal(t, promptSubmissionFailed, tr.Prompt)
	assert.True(t, tr.Draft.IsZero())
	assert.Nil(t, tr.Booking)
	assert.Error(t, tr.Err)
	assert.False(t, tr.Listen)
	assert.Len(t, sub.calls, 1)
}

func TestMachineCompleteIsTerminal(t *testing.T) {
	m := newTestMachine(&fakeSubmitter{})
	draft := models.BookingDraft{CustomerName: "Maria"}

	tr := m.Advance(context.Background(), StageComplete, draft, "another one")
	assert.Equal(t, StageComplete, tr.Next)
	assert.Equal(t, promptRestart, tr.Prompt)
	assert.Equal(t, draft, tr.Draft)
	assert.False(t, tr.Listen)
}

func TestMachineUnknownStageFallsBack(t *testing.T) {
	sub := &fakeSubmitter{}
	m := newTestMachine(sub)
	draft := models.BookingDraft{CustomerName: "Maria", NumberOfGuests: 4}

	tr := m.Advance(context.Background(), Stage("ask_dessert"), draft, "cake")
	assert.Equal(t, StageAskName, tr.Next)
	assert.Equal(t, promptFallback, tr.Prompt)
	assert.Equal(t, draft, tr.Draft)
	assert.True(t, tr.Listen)
	assert.Empty(t, sub.calls)
}

func TestStageHelpers(t *testing.T) {
	assert.True(t, StageAskCity.Valid())
	assert.False(t, Stage("ask_dessert").Valid())
	assert.True(t, StageAskTime.Asking())
	assert.False(t, StageConfirming.Asking())
	assert.False(t, StageIdle.Asking())
}
