package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"linebell/middleware"
	"linebell/models"
	"linebell/store"
)

func newTestAdminHandler(t *testing.T) (*AdminHandler, *store.Store, *middleware.Authenticator) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	auth := middleware.NewAuthenticator("signing-key")
	h, err := NewAdminHandler(s, auth, "hunter2")
	if err != nil {
		t.Fatalf("failed to create admin handler: %v", err)
	}

	return h, s, auth
}

func TestLogin(t *testing.T) {
	h, _, auth := newTestAdminHandler(t)

	// Wrong password
	req := httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(`{"password":"wrong"}`))
	w := httptest.NewRecorder()
	h.Login(w, req)
	if w.Code != 401 {
		t.Errorf("wrong password: status = %d, want 401", w.Code)
	}

	// Correct password
	req = httptest.NewRequest("POST", "/api/admin/login", strings.NewReader(`{"password":"hunter2"}`))
	w = httptest.NewRecorder()
	h.Login(w, req)
	if w.Code != 200 {
		t.Fatalf("correct password: status = %d, want 200", w.Code)
	}

	var resp loginResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Subject != "admin" {
		t.Errorf("token subject = %q, want admin", claims.Subject)
	}
}

func TestListReminders_AllOwners(t *testing.T) {
	h, s, _ := newTestAdminHandler(t)

	s.CreateReminder("U1", "08:00", "a")
	s.CreatePeriodicReminder("U2", "daily", "09:00", "b")

	w := httptest.NewRecorder()
	h.ListReminders(w, httptest.NewRequest("GET", "/api/admin/reminders", nil))

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var reminders []models.Reminder
	if err := json.NewDecoder(w.Body).Decode(&reminders); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(reminders) != 2 {
		t.Fatalf("got %d reminders, want 2", len(reminders))
	}
}

func TestListReminders_EmptyIsArray(t *testing.T) {
	h, _, _ := newTestAdminHandler(t)

	w := httptest.NewRecorder()
	h.ListReminders(w, httptest.NewRequest("GET", "/api/admin/reminders", nil))

	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("empty listing = %q, want []", got)
	}
}

func TestDispatchTrigger_ReturnsDeliveredPairs(t *testing.T) {
	d, s, _ := newTestDispatcher(t)

	// The trigger scans at the current wall clock, so schedule for now.
	r, err := s.CreateReminder("U1", time.Now().Format("15:04"), "x")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	w := httptest.NewRecorder()
	d.Trigger(w, httptest.NewRequest("POST", "/api/dispatch/run", nil))

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var results []DispatchResult
	if err := json.NewDecoder(w.Body).Decode(&results); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if time.Now().Format("15:04") == r.FireAt {
		// The minute did not roll over underneath the test.
		if len(results) != 1 || results[0].ReminderID != r.ID || results[0].UserID != "U1" {
			t.Errorf("results = %+v, want reminder %d delivered to U1", results, r.ID)
		}
	}
}

func TestDispatchTrigger_EmptyScanIsArray(t *testing.T) {
	d, _, _ := newTestDispatcher(t)

	w := httptest.NewRecorder()
	d.Trigger(w, httptest.NewRequest("POST", "/api/dispatch/run", nil))

	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("empty scan result = %q, want []", got)
	}
}
