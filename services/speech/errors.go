package speech

import "errors"

var (
	// ErrNoSpeechDetected means a listening turn ended without an utterance.
	ErrNoSpeechDetected = errors.New("no speech detected")
	// ErrPermissionDenied means the recognizer may not use the microphone or service.
	ErrPermissionDenied = errors.New("speech permission denied")
	// ErrDeviceError covers audio device, transport, and closed-input failures.
	ErrDeviceError = errors.New("speech device error")
	// ErrUnsupportedPlatform is returned at construction when a capability is missing.
	ErrUnsupportedPlatform = errors.New("speech is not supported on this platform")
	// ErrListeningSuspended is returned by Listen when Speak took the turn.
	ErrListeningSuspended = errors.New("listening suspended for speech output")
)
