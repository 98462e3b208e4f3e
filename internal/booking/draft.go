package booking

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse national-format phone
// numbers. The club is in Pakistan.
const DefaultPhoneRegion = "PK"

// Draft is a booking under construction, ready to submit to the backend
// once Validate passes. Field names follow the backend's JSON contract.
type Draft struct {
	Sport           string     `json:"sport"`
	Court           string     `json:"court"`
	CourtName       string     `json:"courtName"`
	Date            string     `json:"date"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	Duration        float64    `json:"duration"`
	SelectedSlots   []TimeSlot `json:"selectedSlots"`
	PlayerName      string     `json:"playerName"`
	PlayerPhone     string     `json:"playerPhone"`
	PlayerEmail     string     `json:"playerEmail,omitempty"`
	PlayerCount     int        `json:"playerCount"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
	PaymentType     string     `json:"paymentType,omitempty"`
	TotalAmount     int        `json:"totalAmount"`
}

// DraftFromSelection assembles a draft from a validated selection and the
// player details collected by the form.
func DraftFromSelection(sel *Selection, playerName, playerPhone, playerEmail string, playerCount int, requests, paymentType string) Draft {
	return Draft{
		Sport:           sel.Sport(),
		Court:           sel.Court(),
		CourtName:       CourtName(sel.Court()),
		Date:            sel.Date(),
		StartTime:       sel.StartTime(),
		EndTime:         sel.EndTime(),
		Duration:        sel.Duration(),
		SelectedSlots:   sel.Slots(),
		PlayerName:      strings.TrimSpace(playerName),
		PlayerPhone:     strings.TrimSpace(playerPhone),
		PlayerEmail:     strings.TrimSpace(playerEmail),
		PlayerCount:     playerCount,
		SpecialRequests: strings.TrimSpace(requests),
		PaymentType:     paymentType,
		TotalAmount:     sel.TotalAmount(),
	}
}

var nonDigits = regexp.MustCompile(`\D`)

// Validate fast-fails a draft before any network call. The backend repeats
// these checks authoritatively; this only saves the user a round trip.
func (d *Draft) Validate() error {
	if d.Court == "" || d.Date == "" || d.StartTime == "" {
		return errors.New("please fill in all required fields")
	}
	if len(strings.TrimSpace(d.PlayerName)) < 2 {
		return errors.New("please enter a valid player name (at least 2 characters)")
	}
	if err := validatePhone(d.PlayerPhone); err != nil {
		return err
	}
	if d.Duration <= 0 {
		return errors.New("duration must be greater than zero")
	}
	if d.Duration > MaxDurationHours {
		return fmt.Errorf("maximum booking duration is %d hours", MaxDurationHours)
	}
	if len(d.SelectedSlots) < MinSelectionSlots {
		return ErrTooShort
	}
	expected := float64(len(d.SelectedSlots)) * 0.5
	if math.Abs(d.Duration-expected) > 1e-9 {
		return errors.New("duration does not match the selected slots")
	}
	// Drafts arrive straight from client JSON; rebuild the selection so a
	// non-contiguous slot set or forged derived fields cannot reach the
	// backend.
	sel, err := RestoreSelection(d.Sport, d.Court, d.Date, d.SelectedSlots)
	if err != nil {
		return err
	}
	if d.StartTime != sel.StartTime() || d.EndTime != sel.EndTime() {
		return errors.New("start and end times do not match the selected slots")
	}
	if d.TotalAmount != sel.TotalAmount() {
		return errors.New("total amount does not match the selected slots")
	}
	return nil
}

func validatePhone(phone string) error {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) < 10 {
		return errors.New("please enter a valid phone number (at least 10 digits)")
	}
	// 10+ digits that still parse as a possible regional number get the
	// stricter check; anything else passes and the backend stores it as-is.
	if num, err := phonenumbers.Parse(phone, DefaultPhoneRegion); err == nil {
		if !phonenumbers.IsPossibleNumber(num) {
			return errors.New("please enter a valid phone number (at least 10 digits)")
		}
	}
	return nil
}

// NormalizePhone returns the E.164 form when the number parses for the
// default region, otherwise the trimmed input.
func NormalizePhone(phone string) string {
	trimmed := strings.TrimSpace(phone)
	num, err := phonenumbers.Parse(trimmed, DefaultPhoneRegion)
	if err != nil {
		return trimmed
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return trimmed
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

var bookingIDPattern = regexp.MustCompile(`^NB\d{8}[0-9A-F]{8}$`)

// ValidBookingID reports whether s matches the backend's booking id shape:
// "NB", the booking's yyyymmdd date, then 8 uppercase hex characters.
func ValidBookingID(s string) bool {
	return bookingIDPattern.MatchString(s)
}
