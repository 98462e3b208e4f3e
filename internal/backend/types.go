package backend

import (
	"github.com/hmzza/NoballSportsClub/internal/booking"
	"github.com/hmzza/NoballSportsClub/internal/schedule"
)

// Booking is a stored booking as the backend returns it from search and
// bulk listings.
type Booking struct {
	ID              string  `json:"id"`
	Sport           string  `json:"sport"`
	Court           string  `json:"court"`
	CourtName       string  `json:"courtName"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Duration        float64 `json:"duration"`
	PlayerName      string  `json:"playerName"`
	PlayerPhone     string  `json:"playerPhone"`
	PlayerEmail     string  `json:"playerEmail,omitempty"`
	PlayerCount     int     `json:"playerCount,omitempty"`
	SpecialRequests string  `json:"specialRequests,omitempty"`
	PaymentType     string  `json:"paymentType,omitempty"`
	Status          string  `json:"status"`
	TotalAmount     int     `json:"totalAmount"`
	FormattedTime   string  `json:"formatted_time,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}

// SearchRequest selects one search method: "id", "phone", "name" use Value;
// "date" uses the StartDate/EndDate range.
type SearchRequest struct {
	Method    string `json:"method"`
	Value     string `json:"value,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// BookingUpdate carries edited fields for an existing booking. Zero-valued
// fields are omitted and left unchanged by the backend.
type BookingUpdate struct {
	BookingID   string  `json:"bookingId"`
	Sport       string  `json:"sport,omitempty"`
	Court       string  `json:"court,omitempty"`
	Date        string  `json:"date,omitempty"`
	StartTime   string  `json:"startTime,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
	PlayerName  string  `json:"playerName,omitempty"`
	PlayerPhone string  `json:"playerPhone,omitempty"`
	PlayerEmail string  `json:"playerEmail,omitempty"`
	PlayerCount int     `json:"playerCount,omitempty"`
	Status      string  `json:"status,omitempty"`
	TotalAmount int     `json:"totalAmount,omitempty"`
}

// BulkFilter narrows the bulk listing. Empty fields match everything.
type BulkFilter struct {
	Status   string `json:"status,omitempty"`
	Sport    string `json:"sport,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
}

// Stats is the dashboard counters payload.
type Stats struct {
	TotalBookings  int `json:"total_bookings"`
	PendingPayment int `json:"pending_payment"`
	Confirmed      int `json:"confirmed"`
	Cancelled      int `json:"cancelled"`
	Revenue        int `json:"revenue"`
}

// Response envelopes. Every backend reply is discriminated on Success;
// Message carries the user-facing explanation when Success is false.

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type createResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
}

type bookingsResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Bookings []Booking `json:"bookings"`
}

type scheduleResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Schedule schedule.Data `json:"schedule"`
}

type statsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stats   Stats  `json:"stats"`
}

type conflictResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	HasConflict bool   `json:"hasConflict"`
}

type conflictRequest struct {
	Court         string             `json:"court"`
	Date          string             `json:"date"`
	SelectedSlots []booking.TimeSlot `json:"selectedSlots"`
}

type bookedSlotsRequest struct {
	Court string `json:"court"`
	Date  string `json:"date"`
}

type scheduleRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Sport     string `json:"sport,omitempty"`
}

type actionRequest struct {
	BookingID string `json:"bookingId"`
	Action    string `json:"action"`
}

type deleteRequest struct {
	BookingID string `json:"bookingId"`
}

type bulkActionRequest struct {
	Action     string   `json:"action"`
	BookingIDs []string `json:"bookingIds"`
}

type exportRequest struct {
	Format    string `json:"format"`
	DateRange string `json:"dateRange"`
}
