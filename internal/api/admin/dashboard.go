package admin

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hmzza/NoballSportsClub/internal/api/apiutil"
	"github.com/hmzza/NoballSportsClub/internal/templates/layouts"
)

// HandleDashboardPage renders the admin dashboard with the latest cached
// counters filled in.
func HandleDashboardPage(w http.ResponseWriter, r *http.Request) {
	snapshot, updatedAt, populated := poller.Snapshot()

	var buf bytes.Buffer
	buf.WriteString(`<div class="dashboard"><h1>Dashboard</h1><div class="stat-cards">`)
	cards := []struct {
		id    string
		label string
		value int
	}{
		{"stat-total", "Total Bookings", snapshot.TotalBookings},
		{"stat-pending", "Pending Payment", snapshot.PendingPayment},
		{"stat-confirmed", "Confirmed", snapshot.Confirmed},
		{"stat-cancelled", "Cancelled", snapshot.Cancelled},
	}
	for _, c := range cards {
		fmt.Fprintf(&buf,
			`<div class="stat-card"><div class="stat-value" id="%s">%d</div><div class="stat-label">%s</div></div>`,
			c.id, c.value, c.label)
	}
	fmt.Fprintf(&buf,
		`<div class="stat-card"><div class="stat-value" id="stat-revenue">%s</div><div class="stat-label">Revenue</div></div>`,
		apiutil.FormatPKR(snapshot.Revenue))
	buf.WriteString(`</div>`)
	if populated {
		fmt.Fprintf(&buf, `<div class="stat-updated">Updated %s</div>`, updatedAt.Format("3:04:05 PM"))
	}
	buf.WriteString(`<div class="dashboard-actions">
<button hx-post="/admin/api/export-bookings" hx-vals='{"format":"csv","dateRange":"all"}'>Export CSV</button>
</div></div>`)

	page := layouts.Admin("Dashboard", layouts.Raw(buf.String()))
	page.Render(r.Context(), w)
}

// HandleDashboardStats serves the counters as JSON. The cache is served
// when populated; a cold cache falls through to the backend directly.
func HandleDashboardStats(w http.ResponseWriter, r *http.Request) {
	if snapshot, updatedAt, populated := poller.Snapshot(); populated {
		apiutil.WriteSuccess(w, map[string]any{
			"stats":     snapshot,
			"updatedAt": updatedAt.Format(time.RFC3339),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	statsNow, err := loadClient().DashboardStats(ctx)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to load dashboard stats")
		apiutil.WriteFailure(w, http.StatusBadGateway, "Could not load dashboard stats")
		return
	}
	apiutil.WriteSuccess(w, map[string]any{
		"stats":     statsNow,
		"updatedAt": time.Now().Format(time.RFC3339),
	})
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

// HandleVisibility records whether the dashboard tab is visible so the
// poller can pause while nobody is looking.
func HandleVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}
	poller.SetVisible(r.Context(), req.Visible)
	log.Ctx(r.Context()).Debug().Bool("visible", req.Visible).Msg("Dashboard visibility changed")
	apiutil.WriteSuccess(w, nil)
}

type exportApiRequest struct {
	Format    string `json:"format"`
	DateRange string `json:"dateRange"`
}

// HandleExport proxies the backend's export as a file download.
func HandleExport(w http.ResponseWriter, r *http.Request) {
	var req exportApiRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), backendTimeout)
	defer cancel()
	data, contentType, err := loadClient().ExportBookings(ctx, req.Format, req.DateRange)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Export failed")
		apiutil.WriteFailure(w, http.StatusBadGateway, "Export failed, please try again")
		return
	}

	filename := fmt.Sprintf("bookings_export_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(data)
}
