// Package backend is the JSON-over-HTTP client for the booking backend,
// the system that owns persistence, conflict authority, payment state and
// notifications. This service never mutates bookings locally; every action
// goes through here and callers refetch their views afterward.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/hmzza/NoballSportsClub/internal/booking"
	"github.com/hmzza/NoballSportsClub/internal/schedule"
)

// ErrConflict marks a failed (or unverifiable) conflict pre-check. The
// check fails closed: any transport or decode problem also yields it.
var ErrConflict = errors.New("selected slots are no longer available")

// ErrUnreachable marks transport-level failures talking to the backend.
var ErrUnreachable = errors.New("booking service unreachable")

// APIError is a backend reply with success=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "booking service rejected the request"
	}
	return e.Message
}

// Client talks to the booking backend. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	statsGroup singleflight.Group
}

// New builds a client for the backend at baseURL. There are no automatic
// retries; the timeout bounds each call end to end.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateBooking submits a draft and returns the backend-assigned booking id.
func (c *Client) CreateBooking(ctx context.Context, draft booking.Draft) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", err
	}
	var resp createResponse
	if err := c.post(ctx, "/api/create-booking", draft, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{Message: resp.Message}
	}
	return resp.BookingID, nil
}

// AdminCreateBooking submits an admin quick-book draft. The backend skips
// the customer payment hold for these.
func (c *Client) AdminCreateBooking(ctx context.Context, draft booking.Draft) (string, error) {
	if err := draft.Validate(); err != nil {
		return "", err
	}
	var resp createResponse
	if err := c.post(ctx, "/admin/api/admin-create-booking", draft, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{Message: resp.Message}
	}
	return resp.BookingID, nil
}

// BookedSlots returns the occupied slot times for a court on a date,
// multi-purpose conflicts already folded in by the backend.
func (c *Client) BookedSlots(ctx context.Context, court, date string) ([]string, error) {
	if court == "" || date == "" {
		return nil, errors.New("court and date are required")
	}
	var slots []string
	if err := c.post(ctx, "/api/booked-slots", bookedSlotsRequest{Court: court, Date: date}, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// SearchBookings runs one of the admin search methods.
func (c *Client) SearchBookings(ctx context.Context, req SearchRequest) ([]Booking, error) {
	switch req.Method {
	case "id", "phone", "name":
		if strings.TrimSpace(req.Value) == "" {
			return nil, errors.New("please enter a search value")
		}
	case "date":
		if req.StartDate == "" || req.EndDate == "" {
			return nil, errors.New("please select both start and end dates")
		}
	default:
		return nil, fmt.Errorf("unknown search method %q", req.Method)
	}
	var resp bookingsResponse
	if err := c.post(ctx, "/admin/api/search-bookings", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	return resp.Bookings, nil
}

// UpdateBooking applies edits to an existing booking.
func (c *Client) UpdateBooking(ctx context.Context, upd BookingUpdate) error {
	if upd.BookingID == "" {
		return errors.New("booking id is required")
	}
	var resp statusResponse
	if err := c.post(ctx, "/admin/api/update-booking", upd, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Message: resp.Message}
	}
	return nil
}

// Actions accepted by BookingAction and BulkAction.
const (
	ActionConfirm = "confirm"
	ActionDecline = "decline"
	ActionCancel  = "cancel"
	ActionDelete  = "delete"
)

// BookingAction confirms, declines or cancels one booking.
func (c *Client) BookingAction(ctx context.Context, bookingID, action string) error {
	if bookingID == "" {
		return errors.New("booking id is required")
	}
	switch action {
	case ActionConfirm, ActionDecline, ActionCancel:
	default:
		return fmt.Errorf("unknown booking action %q", action)
	}
	var resp statusResponse
	if err := c.post(ctx, "/admin/api/admin-booking-action", actionRequest{BookingID: bookingID, Action: action}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Message: resp.Message}
	}
	return nil
}

// DeleteBooking permanently removes one booking.
func (c *Client) DeleteBooking(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return errors.New("booking id is required")
	}
	var resp statusResponse
	if err := c.post(ctx, "/admin/api/delete-booking", deleteRequest{BookingID: bookingID}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &APIError{Message: resp.Message}
	}
	return nil
}

// BulkBookings lists bookings matching the filter for the bulk table.
func (c *Client) BulkBookings(ctx context.Context, filter BulkFilter) ([]Booking, error) {
	var resp bookingsResponse
	if err := c.post(ctx, "/admin/api/bulk-bookings", filter, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	return resp.Bookings, nil
}

// BulkAction applies one action to every id. Returns the backend's summary
// message. Ids are deduplicated; an empty set is rejected locally.
func (c *Client) BulkAction(ctx context.Context, action string, bookingIDs []string) (string, error) {
	switch action {
	case ActionConfirm, ActionCancel, ActionDelete:
	default:
		return "", fmt.Errorf("unknown bulk action %q", action)
	}
	ids := dedupe(bookingIDs)
	if len(ids) == 0 {
		return "", errors.New("no bookings selected")
	}
	var resp statusResponse
	if err := c.post(ctx, "/admin/api/bulk-action", bulkActionRequest{Action: action, BookingIDs: ids}, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &APIError{Message: resp.Message}
	}
	return resp.Message, nil
}

// ScheduleData fetches the schedule payload for a date range. A successful
// reply with no schedule section yields an empty Data, not an error.
func (c *Client) ScheduleData(ctx context.Context, startDate, endDate, sport string) (schedule.Data, error) {
	var resp scheduleResponse
	req := scheduleRequest{StartDate: startDate, EndDate: endDate, Sport: sport}
	if err := c.post(ctx, "/admin/api/schedule-data", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Message: resp.Message}
	}
	if resp.Schedule == nil {
		return schedule.Data{}, nil
	}
	return resp.Schedule, nil
}

// CheckConflict asks the backend whether the selected slots are still free.
// Nil means clear to submit. The check fails closed: transport errors,
// non-2xx statuses and malformed bodies all report ErrConflict.
func (c *Client) CheckConflict(ctx context.Context, court, date string, slots []booking.TimeSlot) error {
	req := conflictRequest{Court: court, Date: date, SelectedSlots: slots}
	var resp conflictResponse
	if err := c.post(ctx, "/admin/api/check-conflict", req, &resp); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("conflict check unreachable, failing closed")
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if !resp.Success {
		return fmt.Errorf("%w: %s", ErrConflict, resp.Message)
	}
	if resp.HasConflict {
		if resp.Message != "" {
			return fmt.Errorf("%w: %s", ErrConflict, resp.Message)
		}
		return ErrConflict
	}
	return nil
}

// DashboardStats fetches the dashboard counters. Concurrent callers share
// a single in-flight request.
func (c *Client) DashboardStats(ctx context.Context) (Stats, error) {
	v, err, _ := c.statsGroup.Do("dashboard-stats", func() (interface{}, error) {
		var resp statsResponse
		if err := c.get(ctx, "/admin/api/dashboard-stats", &resp); err != nil {
			return Stats{}, err
		}
		if !resp.Success {
			return Stats{}, &APIError{Message: resp.Message}
		}
		return resp.Stats, nil
	})
	if err != nil {
		return Stats{}, err
	}
	return v.(Stats), nil
}

// ExportBookings streams a bookings export. Returns the raw file bytes and
// the content type reported by the backend.
func (c *Client) ExportBookings(ctx context.Context, format, dateRange string) ([]byte, string, error) {
	if format == "" {
		format = "csv"
	}
	if dateRange == "" {
		dateRange = "all"
	}
	body, err := json.Marshal(exportRequest{Format: format, DateRange: dateRange})
	if err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/api/export-bookings", bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("export failed with status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/csv"
	}
	return data, contentType, nil
}

func (c *Client) post(ctx context.Context, path string, payload, dst any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dst)
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	log.Ctx(req.Context()).Debug().
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies still carry the envelope when the backend produced
		// them; fall back to the bare status otherwise.
		var env statusResponse
		if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); decodeErr == nil && env.Message != "" {
			return &APIError{Message: env.Message}
		}
		return fmt.Errorf("booking service returned status %d", resp.StatusCode)
	}
	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.Path, err)
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
