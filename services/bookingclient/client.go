package bookingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dinevoice/models"
)

var (
	// ErrSubmission matches every *SubmissionError.
	ErrSubmission = errors.New("booking submission failed")
	ErrNotFound   = errors.New("booking not found")
)

// SubmissionError describes why a create call did not yield a booking.
type SubmissionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("booking submission failed: %v", e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("booking submission failed: status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("booking submission failed: %s", e.Message)
	}
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Is(target error) bool { return target == ErrSubmission }

// APIError is a non-2xx answer from the bookings API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bookings api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the bookings REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for baseURL. A nil httpClient gets a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Submit implements the conversation submitter over HTTP. Every failure is a
// *SubmissionError.
func (c *Client) Submit(ctx context.Context, draft models.BookingDraft) (*models.Booking, error) {
	booking, err := c.CreateBooking(ctx, models.RequestFromDraft(draft))
	if err == nil {
		return booking, nil
	}
	var sub *SubmissionError
	if errors.As(err, &sub) {
		return nil, sub
	}
	return nil, &SubmissionError{Err: err}
}

func (c *Client) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	var out models.CreateBookingResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Message: messageOr(out.Message, resp.Status)}
	}
	if decodeErr != nil {
		return nil, &SubmissionError{Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if !out.Success || out.Booking == nil {
		return nil, &SubmissionError{StatusCode: resp.StatusCode, Message: messageOr(out.Message, "server did not confirm the booking")}
	}
	return out.Booking, nil
}

// ListBookings returns bookings newest first, as the server orders them.
func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/bookings", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	bookings := []models.Booking{}
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var booking models.Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, fmt.Errorf("decode booking: %w", err)
	}
	return &booking, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/bookings/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, messageOr(body.Message, resp.Status))
	}
	return &APIError{StatusCode: resp.StatusCode, Message: messageOr(body.Message, resp.Status)}
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
