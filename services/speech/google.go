package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gspeech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MaxAudioBytes caps uploads sent for synchronous recognition.
const MaxAudioBytes = 5 * 1024 * 1024

// Transcriber turns a recorded utterance into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// GoogleTranscriber sends LINEAR16 WAV audio to Google Cloud Speech.
type GoogleTranscriber struct {
	recognize recognizeFunc
	closeFn   func() error
	language  string
}

// NewGoogleTranscriber needs a service account file; without one the platform
// has no recognizer and ErrUnsupportedPlatform is returned.
func NewGoogleTranscriber(ctx context.Context, credentialsFile, language string) (*GoogleTranscriber, error) {
	if credentialsFile == "" {
		return nil, ErrUnsupportedPlatform
	}
	client, err := gspeech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &GoogleTranscriber{
		recognize: func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return client.Recognize(ctx, req)
		},
		closeFn:  client.Close,
		language: language,
	}, nil
}

func (g *GoogleTranscriber) Close() error {
	if g.closeFn == nil {
		return nil
	}
	return g.closeFn()
}

// Transcribe returns the joined transcript of every result alternative.
// An empty language uses the transcriber default.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if len(audio) > MaxAudioBytes {
		return "", fmt.Errorf("%w: audio exceeds %d bytes", ErrUnsupportedAudio, MaxAudioBytes)
	}
	info, err := ParseWAVHeader(audio)
	if err != nil {
		return "", err
	}
	if language == "" {
		language = g.language
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(info.SampleRate),
			LanguageCode:      language,
			AudioChannelCount: int32(info.NumChannels),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := g.recognize(ctx, req)
	if err != nil {
		return "", classify(err)
	}

	var transcript strings.Builder
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		transcript.WriteString(alts[0].GetTranscript())
		transcript.WriteString(" ")
	}
	text := strings.TrimSpace(transcript.String())
	if text == "" {
		return "", ErrNoSpeechDetected
	}
	return text, nil
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case codes.Canceled, codes.DeadlineExceeded:
		return err
	default:
		return fmt.Errorf("%w: speech recognition failed: %v", ErrDeviceError, err)
	}
}
