package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dinevoice/models"
	"dinevoice/services/speech"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type heard struct {
	text string
	err  error
}

// scriptedSpeech replays utterances and blocks once the script runs out.
type scriptedSpeech struct {
	mu      sync.Mutex
	script  []heard
	spoken  []string
	waiting chan struct{}
}

func newScriptedSpeech(lines ...string) *scriptedSpeech {
	s := &scriptedSpeech{waiting: make(chan struct{}, 16)}
	s.add(lines...)
	return s
}

func (s *scriptedSpeech) add(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range lines {
		s.script = append(s.script, heard{text: l})
	}
}

func (s *scriptedSpeech) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.script = append(s.script, heard{err: err})
}

func (s *scriptedSpeech) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	return nil
}

func (s *scriptedSpeech) Listen(ctx context.Context) (string, error) {
	s.mu.Lock()
	if len(s.script) == 0 {
		s.mu.Unlock()
		s.waiting <- struct{}{}
		<-ctx.Done()
		return "", ctx.Err()
	}
	next := s.script[0]
	s.script = s.script[1:]
	s.mu.Unlock()
	return next.text, next.err
}

func (s *scriptedSpeech) prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

func TestSessionMariaEndToEnd(t *testing.T) {
	adapter := newScriptedSpeech("Maria", "Four", "tomorrow", "7pm", "Italian", "no", "Boston")
	var booked *models.Booking
	var stages []Stage
	s := NewSession(newTestMachine(&fakeSubmitter{}), adapter, Observer{
		OnBooked: func(b *models.Booking) { booked = b },
		OnStage:  func(st Stage, _ models.BookingDraft) { stages = append(stages, st) },
	}, nil)

	s.Start(context.Background())
	require.NoError(t, s.Wait())

	snap := s.Snapshot()
	assert.Equal(t, StageComplete, snap.Stage)
	assert.False(t, snap.Running)
	assert.Equal(t, "Maria", snap.Draft.CustomerName)
	assert.Equal(t, 4, snap.Draft.NumberOfGuests)
	assert.Equal(t, "Mon Oct 19 2026", snap.Draft.BookingDateHuman)
	assert.Equal(t, "7pm", snap.Draft.BookingTime)
	assert.Equal(t, "italian", snap.Draft.CuisinePreference)
	assert.Equal(t, "None", snap.Draft.SpecialRequests)
	assert.Equal(t, "Boston", snap.Draft.LocationCity)

	require.NotNil(t, booked)
	assert.Equal(t, models.SeatingIndoor, booked.SeatingPreference)

	prompts := adapter.prompts()
	require.Len(t, prompts, 9)
	assert.Equal(t, promptWelcome, prompts[0])
	assert.Equal(t, mariaConfirmation, prompts[8])
	assert.Equal(t, append([]Stage{StageAskName}, StageAskGuests, StageAskDate, StageAskTime,
		StageAskCuisine, StageAskSpecial, StageAskCity, StageConfirming, StageComplete), stages)
}

func TestSessionSubmissionFailure(t *testing.T) {
	adapter := newScriptedSpeech(mariaScript...)
	var reported error
	s := NewSession(newTestMachine(&fakeSubmitter{err: errors.New("503")}), adapter, Observer{
		OnError: func(err error) { reported = err },
	}, nil)

	s.Start(context.Background())
	require.NoError(t, s.Wait())

	snap := s.Snapshot()
	assert.Equal(t, StageIdle, snap.Stage)
	assert.True(t, snap.Draft.IsZero())
	assert.Nil(t, snap.Booking)
	assert.Error(t, reported)

	prompts := adapter.prompts()
	assert.Equal(t, promptSubmissionFailed, prompts[len(prompts)-1])
}

func TestSessionRecognitionFailureKeepsStage(t *testing.T) {
	adapter := newScriptedSpeech("maria")
	adapter.fail(speech.ErrNoSpeechDetected)
	s := NewSession(newTestMachine(&fakeSubmitter{}), adapter, Observer{}, nil)

	s.Start(context.Background())
	err := s.Wait()
	assert.ErrorIs(t, err, speech.ErrNoSpeechDetected)

	snap := s.Snapshot()
	assert.Equal(t, StageAskGuests, snap.Stage)
	assert.Equal(t, "Maria", snap.Draft.CustomerName)
	assert.ErrorIs(t, snap.LastErr, speech.ErrNoSpeechDetected)

	adapter.add("three", "today", "8pm", "any", "no", "paris")
	require.NoError(t, s.Resume(context.Background()))
	require.NoError(t, s.Wait())

	snap = s.Snapshot()
	assert.Equal(t, StageComplete, snap.Stage)
	assert.Equal(t, 3, snap.Draft.NumberOfGuests)
	assert.Equal(t, "Paris", snap.Draft.LocationCity)
}

func TestSessionResumeRequiresAskingStage(t *testing.T) {
	s := NewSession(newTestMachine(&fakeSubmitter{}), newScriptedSpeech(), Observer{}, nil)
	assert.ErrorIs(t, s.Resume(context.Background()), ErrNotListening)
}

func TestSessionStartHaltsActiveRun(t *testing.T) {
	adapter := newScriptedSpeech("maria")
	s := NewSession(newTestMachine(&fakeSubmitter{}), adapter, Observer{}, nil)

	s.Start(context.Background())
	select {
	case <-adapter.waiting:
	case <-time.After(time.Second):
		t.Fatal("session never started listening")
	}
	assert.Equal(t, StageAskGuests, s.Snapshot().Stage)

	s.Start(context.Background())
	select {
	case <-adapter.waiting:
	case <-time.After(time.Second):
		t.Fatal("restarted session never listened")
	}

	snap := s.Snapshot()
	assert.Equal(t, StageAskName, snap.Stage)
	assert.True(t, snap.Draft.IsZero())
	assert.True(t, snap.Running)

	s.Stop()
	assert.False(t, s.Snapshot().Running)
	assert.NoError(t, s.Wait())
	assert.Equal(t, promptWelcome, adapter.prompts()[2])
}
