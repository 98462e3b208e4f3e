// Package request parses schedule view parameters from queries and htmx
// headers.
package request

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hmzza/NoballSportsClub/internal/booking"
)

// ParseSport returns the sport filter from a query value. Empty and "all"
// mean no filter; anything unconfigured falls back to no filter too so a
// stale link still renders the full grid.
func ParseSport(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == "all" {
		return ""
	}
	if !booking.ValidSport(value) {
		return ""
	}
	return value
}

// ParseDate parses a YYYY-MM-DD query value, defaulting to today.
func ParseDate(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return now
	}
	return parsed
}

// ParseView returns "week" or "day", defaulting to day.
func ParseView(value string) string {
	if strings.TrimSpace(strings.ToLower(value)) == "week" {
		return "week"
	}
	return "day"
}

// ScheduleParamsFromRequest reads view parameters from the query, falling
// back to the HX-Current-URL header for htmx fragment swaps.
func ScheduleParamsFromRequest(r *http.Request, now time.Time) (view string, date time.Time, sport string) {
	query := r.URL.Query()
	if len(query) == 0 {
		if currentURL := strings.TrimSpace(r.Header.Get("HX-Current-URL")); currentURL != "" {
			parsed, err := url.Parse(currentURL)
			if err != nil {
				log.Ctx(r.Context()).
					Debug().
					Err(err).
					Str("hx_current_url", currentURL).
					Msg("Failed to parse HX-Current-URL")
			} else {
				query = parsed.Query()
			}
		}
	}
	return ParseView(query.Get("view")), ParseDate(query.Get("date"), now), ParseSport(query.Get("sport"))
}
