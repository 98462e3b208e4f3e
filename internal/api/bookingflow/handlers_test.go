package bookingflow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hmzza/NoballSportsClub/internal/backend"
)

// fakeBackend lets each test swap in its own backend behavior while the
// package handlers hold a single client.
var fakeBackend http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}

func TestMain(m *testing.M) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fakeBackend(w, r)
	}))
	InitHandlers(backend.New(srv.URL, 2*time.Second))
	code := m.Run()
	srv.Close()
	os.Exit(code)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHandleTimeSlots(t *testing.T) {
	fakeBackend = func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/booked-slots" {
			t.Errorf("backend path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]string{"18:00"})
	}

	rec := postJSON(t, HandleTimeSlots, "/api/time-slots",
		`{"court":"padel-1","date":"2026-01-02"}`)
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("response = %v", body)
	}
	slots := body["slots"].([]any)
	if len(slots) != 48 {
		t.Fatalf("slots = %d, want 48", len(slots))
	}
	first := slots[0].(map[string]any)
	if first["time"] != "06:00" || first["display"] != "6:00 AM" {
		t.Errorf("first slot = %v", first)
	}
	for _, raw := range slots {
		s := raw.(map[string]any)
		if s["time"] == "18:00" && s["booked"] != true {
			t.Error("18:00 not marked booked")
		}
	}
}

func TestHandleTimeSlotsBackendDown(t *testing.T) {
	fakeBackend = func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}
	rec := postJSON(t, HandleTimeSlots, "/api/time-slots",
		`{"court":"padel-1","date":"2026-01-02"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["success"] != false {
		t.Errorf("response = %v", body)
	}
}

func TestHandleSelectionToggleGrows(t *testing.T) {
	rec := postJSON(t, HandleSelectionToggle, "/api/selection/toggle",
		`{"sport":"padel","court":"padel-1","date":"2026-01-02","selected":[{"time":"18:00","index":24}],"toggle":25}`)
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("response = %v", body)
	}
	if body["startTime"] != "18:00" || body["endTime"] != "19:00" {
		t.Errorf("range = %v-%v", body["startTime"], body["endTime"])
	}
	if body["duration"] != 1.0 || body["totalAmount"] != 5500.0 {
		t.Errorf("derived = %v / %v", body["duration"], body["totalAmount"])
	}
	if body["bookable"] != true {
		t.Error("two slots should be bookable")
	}
}

func TestHandleSelectionToggleRejectsGap(t *testing.T) {
	rec := postJSON(t, HandleSelectionToggle, "/api/selection/toggle",
		`{"sport":"padel","court":"padel-1","date":"2026-01-02","selected":[{"time":"18:00","index":24}],"toggle":30}`)
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Fatalf("gap toggle accepted: %v", body)
	}
	if !strings.Contains(body["message"].(string), "consecutive") {
		t.Errorf("message = %v", body["message"])
	}
	// Selection comes back unchanged.
	selected := body["selected"].([]any)
	if len(selected) != 1 {
		t.Errorf("selection mutated: %v", selected)
	}
}

func TestHandleCreateBookingConflictBlocks(t *testing.T) {
	fakeBackend = func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/api/check-conflict":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "hasConflict": true})
		case "/api/create-booking":
			t.Error("create reached despite conflict")
		}
	}

	rec := postJSON(t, HandleCreateBooking, "/api/create-booking", validDraftJSON())
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleCreateBooking(t *testing.T) {
	fakeBackend = func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/api/check-conflict":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "hasConflict": false})
		case "/api/create-booking":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "bookingId": "NB20260102DEADBEEF"})
		}
	}

	rec := postJSON(t, HandleCreateBooking, "/api/create-booking", validDraftJSON())
	body := decodeBody(t, rec)
	if body["success"] != true || body["bookingId"] != "NB20260102DEADBEEF" {
		t.Errorf("response = %v", body)
	}
}

func validDraftJSON() string {
	return `{
  "sport":"padel","court":"padel-1","courtName":"Court 1: Teracotta Court",
  "date":"2026-01-02","startTime":"18:00","endTime":"19:00","duration":1,
  "selectedSlots":[{"time":"18:00","index":24},{"time":"18:30","index":25}],
  "playerName":"Ahmed Khan","playerPhone":"03001234567","playerCount":4,
  "totalAmount":5500
}`
}
