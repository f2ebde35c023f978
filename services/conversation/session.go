package conversation

import (
	"context"
	"errors"
	"sync"

	"dinevoice/models"
	"dinevoice/services/speech"

	"go.uber.org/zap"
)

// ErrNotListening is returned by Resume when the conversation is not waiting
// for an answer.
var ErrNotListening = errors.New("conversation is not waiting for an answer")

// Observer receives session events. Any hook may be nil. Hooks run on the
// session goroutine and must not call back into the session.
type Observer struct {
	OnPrompt    func(text string)
	OnUtterance func(text string)
	OnStage     func(stage Stage, draft models.BookingDraft)
	OnError     func(err error)
	OnBooked    func(booking *models.Booking)
}

// Snapshot is a consistent copy of session state.
type Snapshot struct {
	Stage   Stage
	Draft   models.BookingDraft
	Booking *models.Booking
	Running bool
	LastErr error
}

// Session drives one spoken conversation over a speech adapter. Stage and
// draft are only written by the run goroutine.
type Session struct {
	machine  *Machine
	speech   speech.Adapter
	observer Observer
	logger   *zap.Logger

	mu      sync.Mutex
	stage   Stage
	draft   models.BookingDraft
	booking *models.Booking
	lastErr error
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewSession(machine *Machine, adapter speech.Adapter, observer Observer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		machine:  machine,
		speech:   adapter,
		observer: observer,
		logger:   logger,
		stage:    StageIdle,
	}
}

// Start begins a fresh conversation, halting any run in progress first.
func (s *Session) Start(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	s.stage = StageIdle
	s.draft = models.BookingDraft{}
	s.booking = nil
	s.lastErr = nil
	s.mu.Unlock()

	s.launch(ctx, false)
}

// Resume listens again at the current stage after a recognition failure.
func (s *Session) Resume(ctx context.Context) error {
	s.Stop()

	s.mu.Lock()
	asking := s.stage.Asking()
	s.lastErr = nil
	s.mu.Unlock()
	if !asking {
		return ErrNotListening
	}

	s.launch(ctx, true)
	return nil
}

// Stop halts the current run and waits for it to exit. A prompt already being
// spoken is finished first.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the current run exits and returns its error, if any.
func (s *Session) Wait() error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	running := false
	if s.done != nil {
		select {
		case <-s.done:
		default:
			running = true
		}
	}
	return Snapshot{Stage: s.stage, Draft: s.draft, Booking: s.booking, Running: running, LastErr: s.lastErr}
}

func (s *Session) launch(parent context.Context, listenFirst bool) {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel, s.done = cancel, done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		err := s.run(ctx, listenFirst)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}()
}

// run alternates speaking and listening until the machine stops asking.
func (s *Session) run(ctx context.Context, listenFirst bool) error {
	listen := listenFirst
	utterance := ""
	for {
		if listen {
			heard, err := s.speech.Listen(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Warn("Recognition failed", zap.Error(err))
				s.emitError(err)
				return err
			}
			utterance = NormalizeUtterance(heard)
			if s.observer.OnUtterance != nil {
				s.observer.OnUtterance(utterance)
			}
		}

		stage, draft := s.current()
		t := s.machine.Advance(ctx, stage, draft, utterance)
		s.apply(t)

		if s.observer.OnPrompt != nil {
			s.observer.OnPrompt(t.Prompt)
		}
		if err := s.speech.Speak(context.WithoutCancel(ctx), t.Prompt); err != nil {
			s.logger.Warn("Speech output failed", zap.Error(err))
			s.emitError(err)
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		switch {
		case t.Next == StageConfirming:
			listen, utterance = false, ""
		case t.Listen:
			listen = true
		default:
			return nil
		}
	}
}

func (s *Session) current() (Stage, models.BookingDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage, s.draft
}

func (s *Session) apply(t Transition) {
	s.mu.Lock()
	s.stage = t.Next
	s.draft = t.Draft
	if t.Booking != nil {
		s.booking = t.Booking
	}
	s.mu.Unlock()

	if s.observer.OnStage != nil {
		s.observer.OnStage(t.Next, t.Draft)
	}
	if t.Booking != nil && s.observer.OnBooked != nil {
		s.observer.OnBooked(t.Booking)
	}
	if t.Err != nil {
		s.emitError(t.Err)
	}
}

func (s *Session) emitError(err error) {
	if s.observer.OnError != nil {
		s.observer.OnError(err)
	}
}
