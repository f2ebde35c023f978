package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ConsoleSynthesizer prints prompts instead of speaking them.
type ConsoleSynthesizer struct {
	Out    io.Writer
	Prefix string

	mu sync.Mutex
}

func NewConsoleSynthesizer(out io.Writer) *ConsoleSynthesizer {
	return &ConsoleSynthesizer{Out: out, Prefix: "Assistant: "}
}

func (s *ConsoleSynthesizer) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.Out, "%s%s\n", s.Prefix, text); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceError, err)
	}
	return nil
}

// ConsoleRecognizer treats each typed line as one finalized transcript.
// An empty line means nothing was heard; a closed input is a device error.
type ConsoleRecognizer struct {
	lines chan string
	err   error
}

// NewConsoleRecognizer starts pumping lines from r. The same recognizer can
// serve command input through NextLine so only one reader owns r.
func NewConsoleRecognizer(r io.Reader) *ConsoleRecognizer {
	c := &ConsoleRecognizer{lines: make(chan string)}
	go c.pump(r)
	return c
}

func (c *ConsoleRecognizer) pump(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
	c.err = scanner.Err()
	close(c.lines)
}

// NextLine returns the next raw line, or io.EOF once input is closed.
func (c *ConsoleRecognizer) NextLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			if c.err != nil {
				return "", c.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

func (c *ConsoleRecognizer) Recognize(ctx context.Context) (string, error) {
	line, err := c.NextLine(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrDeviceError, err)
	}
	text := strings.TrimSpace(line)
	if text == "" {
		return "", ErrNoSpeechDetected
	}
	return text, nil
}

// Stop is a no-op; Recognize already returns when its context is cancelled.
func (c *ConsoleRecognizer) Stop() {}
