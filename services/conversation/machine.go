package conversation

import (
	"context"

	"dinevoice/models"
	"dinevoice/utils"

	"go.uber.org/zap"
)

// Submitter persists a finished draft exactly once.
type Submitter interface {
	Submit(ctx context.Context, draft models.BookingDraft) (*models.Booking, error)
}

// Transition is the outcome of one step.
type Transition struct {
	Next   Stage
	Draft  models.BookingDraft
	Prompt string
	// Listen is true when the caller should capture an utterance after speaking.
	Listen bool
	// Booking is set only when a submission succeeded.
	Booking *models.Booking
	// Err carries a submission failure; the prompt already accounts for it.
	Err error
}

// Machine holds no conversation state; callers pass stage and draft in and
// keep what comes out.
type Machine struct {
	Clock     utils.Clock
	Submitter Submitter
	Logger    *zap.Logger
}

func NewMachine(clock utils.Clock, submitter Submitter, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{Clock: clock, Submitter: submitter, Logger: logger}
}

// Advance applies one utterance to the current stage. The utterance is
// expected to be normalized already.
func (m *Machine) Advance(ctx context.Context, stage Stage, draft models.BookingDraft, utterance string) Transition {
	switch stage {
	case StageIdle:
		return Transition{Next: StageAskName, Prompt: promptWelcome, Listen: true}

	case StageAskName:
		draft.CustomerName = Capitalize(utterance)
		return Transition{Next: StageAskGuests, Draft: draft, Prompt: promptAskGuests(draft.CustomerName), Listen: true}

	case StageAskGuests:
		draft.NumberOfGuests = ExtractGuestCount(utterance)
		return Transition{Next: StageAskDate, Draft: draft, Prompt: promptAskDate(draft.NumberOfGuests), Listen: true}

	case StageAskDate:
		date := ResolveDate(m.Clock.Now(), utterance)
		draft.BookingDateISO = date.ISO
		draft.BookingDateHuman = date.Human
		return Transition{Next: StageAskTime, Draft: draft, Prompt: promptAskTime(date.Human), Listen: true}

	case StageAskTime:
		draft.BookingTime = utterance
		return Transition{Next: StageAskCuisine, Draft: draft, Prompt: promptAskCuisine, Listen: true}

	case StageAskCuisine:
		draft.CuisinePreference = utterance
		return Transition{Next: StageAskSpecial, Draft: draft, Prompt: promptAskSpecial, Listen: true}

	case StageAskSpecial:
		draft.SpecialRequests = NormalizeSpecialRequests(utterance)
		return Transition{Next: StageAskCity, Draft: draft, Prompt: promptAskCity, Listen: true}

	case StageAskCity:
		draft.LocationCity = Capitalize(utterance)
		return Transition{Next: StageConfirming, Draft: draft, Prompt: promptConfirming(draft.LocationCity)}

	case StageConfirming:
		return m.submit(ctx, draft)

	case StageComplete:
		return Transition{Next: StageComplete, Draft: draft, Prompt: promptRestart}

	default:
		m.Logger.Warn("Unknown conversation stage, restarting", zap.String("stage", string(stage)))
		return Transition{Next: StageAskName, Draft: draft, Prompt: promptFallback, Listen: true}
	}
}

func (m *Machine) submit(ctx context.Context, draft models.BookingDraft) Transition {
	booking, err := m.Submitter.Submit(ctx, draft)
	if err != nil {
		m.Logger.Error("Booking submission failed", zap.String("customer", draft.CustomerName), zap.Error(err))
		return Transition{Next: StageIdle, Prompt: promptSubmissionFailed, Err: err}
	}

	seating := booking.SeatingPreference
	if seating == "" {
		seating = models.SeatingIndoor
	}
	m.Logger.Info("Booking confirmed", zap.String("bookingID", booking.ID))
	return Transition{
		Next:    StageComplete,
		Draft:   draft,
		Prompt:  promptConfirmed(booking.CustomerName, booking.NumberOfGuests, draft.BookingDateHuman, booking.BookingTime, seating),
		Booking: booking,
	}
}
