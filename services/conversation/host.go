package conversation

import (
	"context"
	"fmt"

	"dinevoice/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Reply is what one HTTP turn returns to a browser doing its own speech.
type Reply struct {
	Session *VoiceSession
	// Prompts holds every prompt produced this turn, in speaking order.
	Prompts []string
	Listen  bool
}

// Host runs conversations whose speech happens on the client. Each call
// handles exactly one utterance; calls for the same session id run one at a
// time so a finished draft is submitted once.
type Host struct {
	Machine *Machine
	Store   SessionStore
	Clock   utils.Clock
	Logger  *zap.Logger
	NewID   func() string

	locks sessionLocks
}

func NewHost(machine *Machine, store SessionStore, clock utils.Clock, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		Machine: machine,
		Store:   store,
		Clock:   clock,
		Logger:  logger,
		NewID:   func() string { return uuid.New().String() },
	}
}

// StartSession creates a session already past idle, waiting for a name.
func (h *Host) StartSession(ctx context.Context) (*Reply, error) {
	now := h.Clock.Now()
	session := &VoiceSession{ID: h.NewID(), Stage: StageIdle, CreatedAt: now}
	prompts := h.step(ctx, session, "")
	session.UpdatedAt = now

	if err := h.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	h.Logger.Info("Voice session started", zap.String("sessionID", session.ID))
	return &Reply{Session: session, Prompts: prompts, Listen: session.Listen}, nil
}

// HandleUtterance advances a stored session by one utterance. Reaching the
// confirming stage submits in the same call.
func (h *Host) HandleUtterance(ctx context.Context, id, text string) (*Reply, error) {
	unlock := h.locks.lock(id)
	defer unlock()

	session, err := h.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Stage.Valid() {
		h.Logger.Warn("Stored voice session has an unknown stage",
			zap.String("sessionID", id), zap.String("stage", string(session.Stage)))
	}

	prompts := h.step(ctx, session, NormalizeUtterance(text))
	session.UpdatedAt = h.Clock.Now()

	if err := h.Store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session %s: %w", id, err)
	}
	return &Reply{Session: session, Prompts: prompts, Listen: session.Listen}, nil
}

func (h *Host) GetSession(ctx context.Context, id string) (*VoiceSession, error) {
	return h.Store.Get(ctx, id)
}

func (h *Host) EndSession(ctx context.Context, id string) error {
	return h.Store.Delete(ctx, id)
}

func (h *Host) step(ctx context.Context, session *VoiceSession, utterance string) []string {
	var prompts []string
	for {
		t := h.Machine.Advance(ctx, session.Stage, session.Draft, utterance)
		session.Stage = t.Next
		session.Draft = t.Draft
		session.LastPrompt = t.Prompt
		session.Listen = t.Listen
		if t.Booking != nil {
			session.Booking = t.Booking
		}
		if t.Next == StageIdle {
			session.Booking = nil
		}
		prompts = append(prompts, t.Prompt)

		if t.Next != StageConfirming {
			return prompts
		}
		utterance = ""
	}
}
