package booking

// Court is one bookable unit of the facility.
type Court struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Sport      string `json:"sport"`
	HourlyRate int    `json:"hourlyRate"` // PKR per hour
}

// Sport identifiers. Display order is part of the product contract and is
// fixed by SportOrder.
const (
	SportPadel      = "padel"
	SportCricket    = "cricket"
	SportFutsal     = "futsal"
	SportPickleball = "pickleball"
)

// AllCourtsID is the pseudo court used by the admin week view to collapse
// every court into a single column.
const AllCourtsID = "all-courts"

var sportOrder = []string{SportPadel, SportCricket, SportFutsal, SportPickleball}

var courtsBySport = map[string][]Court{
	SportPadel: {
		{ID: "padel-1", Name: "Court 1: Teracotta Court", Sport: SportPadel, HourlyRate: 5500},
		{ID: "padel-2", Name: "Court 2: Purple Mondo", Sport: SportPadel, HourlyRate: 5500},
	},
	SportCricket: {
		{ID: "cricket-1", Name: "Court 1: 110x50ft", Sport: SportCricket, HourlyRate: 3000},
		{ID: "cricket-2", Name: "Court 2: 130x60ft Multi", Sport: SportCricket, HourlyRate: 3000},
	},
	SportFutsal: {
		{ID: "futsal-1", Name: "Court 1: 130x60ft Multi", Sport: SportFutsal, HourlyRate: 2500},
	},
	SportPickleball: {
		{ID: "pickleball-1", Name: "Court 1: Professional Setup", Sport: SportPickleball, HourlyRate: 2500},
	},
}

// cricket-2 and futsal-1 are the same physical 130x60 field.
var multiPurposeGroups = map[string]string{
	"cricket-2": "multi-130x60",
	"futsal-1":  "multi-130x60",
}

// SportOrder returns the fixed sport display order.
func SportOrder() []string {
	out := make([]string, len(sportOrder))
	copy(out, sportOrder)
	return out
}

// ValidSport reports whether s names a configured sport.
func ValidSport(s string) bool {
	_, ok := courtsBySport[s]
	return ok
}

// AllCourts returns the catalog in display order. With an empty filter or
// "all" every court is returned; otherwise only the named sport's courts.
func AllCourts(sportFilter string) []Court {
	var out []Court
	for _, sport := range sportOrder {
		if sportFilter != "" && sportFilter != "all" && sportFilter != sport {
			continue
		}
		out = append(out, courtsBySport[sport]...)
	}
	return out
}

// CourtByID looks a court up by its identifier.
func CourtByID(id string) (Court, bool) {
	for _, sport := range sportOrder {
		for _, c := range courtsBySport[sport] {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Court{}, false
}

// CourtName returns the display name for a court id. Unknown ids are echoed
// back so stale data still renders something.
func CourtName(id string) string {
	if id == AllCourtsID {
		return "All Courts"
	}
	if c, ok := CourtByID(id); ok {
		return c.Name
	}
	return id
}

// CourtSport returns the sport a court belongs to, or "unknown".
func CourtSport(id string) string {
	if c, ok := CourtByID(id); ok {
		return c.Sport
	}
	return "unknown"
}

// HourlyRate returns the per-hour rate for a sport in PKR. Unconfigured
// sports fall back to the base rate.
func HourlyRate(sport string) int {
	if courts, ok := courtsBySport[sport]; ok && len(courts) > 0 {
		return courts[0].HourlyRate
	}
	return 2500
}

// ConflictingCourts returns the other members of the court's multi-purpose
// group. Courts outside any group return nil.
func ConflictingCourts(id string) []string {
	group, ok := multiPurposeGroups[id]
	if !ok {
		return nil
	}
	var out []string
	for courtID, g := range multiPurposeGroups {
		if g == group && courtID != id {
			out = append(out, courtID)
		}
	}
	return out
}

// QuickBookDefaults returns the admin quick-book prefill for a sport:
// booking duration in hours and expected player count.
func QuickBookDefaults(sport string) (duration float64, players int) {
	switch sport {
	case SportPadel:
		return 1.5, 4
	case SportCricket:
		return 2, 6
	case SportFutsal:
		return 1, 5
	case SportPickleball:
		return 1, 2
	default:
		return 1, 2
	}
}
