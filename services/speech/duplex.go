package speech

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Adapter is what a conversation needs from the platform.
type Adapter interface {
	// Speak returns once the text has been fully spoken.
	Speak(ctx context.Context, text string) error
	// Listen blocks until a finalized transcript or a recognition error.
	Listen(ctx context.Context) (string, error)
}

// Synthesizer turns text into speech.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Recognizer produces one finalized transcript per call.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
	// Stop aborts any recognition in progress.
	Stop()
}

// Activity is what the Duplex is doing right now.
type Activity int

const (
	Idle Activity = iota
	Speaking
	Listening
)

func (a Activity) String() string {
	switch a {
	case Speaking:
		return "speaking"
	case Listening:
		return "listening"
	default:
		return "idle"
	}
}

// Duplex pairs a synthesizer with a recognizer and never lets them run at the
// same time. Speak suspends an in-flight Listen before it takes the turn, and
// also one that is still waiting for the turn.
type Duplex struct {
	synth Synthesizer
	recog Recognizer

	turn sync.Mutex

	mu       sync.Mutex
	activity Activity
	pending  *pendingListen
}

// pendingListen is registered before Listen contends for the turn.
type pendingListen struct {
	cancel context.CancelFunc
}

// NewDuplex fails with ErrUnsupportedPlatform when either capability is missing,
// so callers can disable voice controls before the first turn.
func NewDuplex(synth Synthesizer, recog Recognizer) (*Duplex, error) {
	if synth == nil || recog == nil {
		return nil, ErrUnsupportedPlatform
	}
	return &Duplex{synth: synth, recog: recog}, nil
}

// Activity reports the current turn holder.
func (d *Duplex) Activity() Activity {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activity
}

func (d *Duplex) setActivity(a Activity) {
	d.mu.Lock()
	d.activity = a
	d.mu.Unlock()
}

func (d *Duplex) register(cancel context.CancelFunc) *pendingListen {
	p := &pendingListen{cancel: cancel}
	d.mu.Lock()
	d.pending = p
	d.mu.Unlock()
	return p
}

func (d *Duplex) unregister(p *pendingListen) {
	d.mu.Lock()
	if d.pending == p {
		d.pending = nil
	}
	d.mu.Unlock()
}

func (d *Duplex) suspendListening() {
	d.mu.Lock()
	p := d.pending
	d.pending = nil
	d.mu.Unlock()
	if p != nil {
		p.cancel()
		d.recog.Stop()
	}
}

func (d *Duplex) Speak(ctx context.Context, text string) error {
	d.suspendListening()

	d.turn.Lock()
	defer d.turn.Unlock()

	d.setActivity(Speaking)
	defer d.setActivity(Idle)

	if err := d.synth.Speak(ctx, text); err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}

func (d *Duplex) Listen(ctx context.Context) (string, error) {
	lctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := d.register(cancel)
	defer d.unregister(p)

	d.turn.Lock()
	defer d.turn.Unlock()

	if err := lctx.Err(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", ErrListeningSuspended
	}

	d.setActivity(Listening)
	defer d.setActivity(Idle)

	text, err := d.recog.Recognize(lctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(lctx.Err(), context.Canceled) {
			return "", ErrListeningSuspended
		}
		return "", err
	}
	return text, nil
}
