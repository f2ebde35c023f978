// Command voiceconsole runs the booking conversation in a terminal. Prompts are
// printed instead of spoken and each typed line is one utterance.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"dinevoice/config"
	"dinevoice/models"
	"dinevoice/services/bookingclient"
	"dinevoice/services/bookinglist"
	"dinevoice/services/conversation"
	"dinevoice/services/speech"
	"dinevoice/utils"

	"go.uber.org/zap"
)

const help = `Commands:
  start        begin a new booking conversation
  retry        listen again after a missed answer
  list         show existing bookings
  delete <id>  delete a booking
  quit         exit`

type console struct {
	out     io.Writer
	recog   *speech.ConsoleRecognizer
	session *conversation.Session
	list    *bookinglist.ViewModel
}

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recog := speech.NewConsoleRecognizer(os.Stdin)
	client := bookingclient.New(cfg.BackendBaseURL, nil)

	c := &console{out: os.Stdout, recog: recog}
	c.list = bookinglist.NewViewModel(client, bookinglist.ConfirmFunc(func(prompt string) bool {
		return c.confirm(ctx, prompt)
	}), logger)

	duplex, err := speech.NewDuplex(speech.NewConsoleSynthesizer(os.Stdout), recog)
	if err != nil {
		logger.Warn("Voice is unavailable, only list commands work", zap.Error(err))
	} else {
		machine := conversation.NewMachine(utils.NewRealClock(cfg.Location()), client, logger)
		c.session = conversation.NewSession(machine, duplex, conversation.Observer{
			OnError:  c.status,
			OnBooked: func(*models.Booking) { c.showList(ctx) },
		}, logger)
	}

	fmt.Fprintln(c.out, help)
	c.showList(ctx)
	c.loop(ctx)
}

func (c *console) loop(ctx context.Context) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.recog.NextLine(ctx)
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "start":
			if c.voiceReady() {
				c.session.Start(ctx)
				c.session.Wait()
			}
		case "retry":
			if c.voiceReady() {
				if err := c.session.Resume(ctx); err != nil {
					fmt.Fprintln(c.out, "Nothing to retry. Type start to begin.")
					continue
				}
				c.session.Wait()
			}
		case "list":
			c.showList(ctx)
		case "delete":
			if len(fields) < 2 {
				fmt.Fprintln(c.out, "usage: delete <id>")
				continue
			}
			if _, err := c.list.Remove(ctx, fields[1]); err != nil {
				fmt.Fprintln(c.out, c.list.Alert())
				continue
			}
			c.render()
		case "quit", "exit":
			return
		default:
			fmt.Fprintln(c.out, help)
		}
	}
}

func (c *console) voiceReady() bool {
	if c.session == nil {
		fmt.Fprintln(c.out, "Voice is not supported here.")
		return false
	}
	return true
}

func (c *console) status(err error) {
	switch {
	case errors.Is(err, speech.ErrNoSpeechDetected):
		fmt.Fprintln(c.out, "Status: I didn't catch that. Type retry to answer again.")
	case errors.Is(err, speech.ErrDeviceError), errors.Is(err, speech.ErrPermissionDenied):
		fmt.Fprintf(c.out, "Status: speech error: %v\n", err)
	case errors.Is(err, bookingclient.ErrSubmission):
		fmt.Fprintln(c.out, "Status: booking was not saved.")
	default:
		fmt.Fprintf(c.out, "Status: %v\n", err)
	}
}

func (c *console) confirm(ctx context.Context, prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	line, err := c.recog.NextLine(ctx)
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (c *console) showList(ctx context.Context) {
	if _, err := c.list.Refresh(ctx); err != nil {
		fmt.Fprintln(c.out, c.list.Alert())
		return
	}
	c.render()
}

func (c *console) render() {
	fmt.Fprintln(c.out, "Bookings:")
	for _, line := range c.list.Render() {
		fmt.Fprintln(c.out, "  "+line)
	}
}
