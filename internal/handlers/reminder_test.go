package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeReminderJob struct {
	runs []string
}

func (f *fakeReminderJob) Run(reminderTime string) {
	f.runs = append(f.runs, reminderTime)
}

func newReminderTestRouter(job ReminderJobRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	SetReminderJob(job)
	router := gin.New()
	router.GET("/internal/reminders/run", RunReminders)
	return router
}

func TestRunReminders_RejectsBadHours(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"missing hour", "/internal/reminders/run"},
		{"empty hour", "/internal/reminders/run?hour="},
		{"non-numeric hour", "/internal/reminders/run?hour=abc"},
		{"hour too large", "/internal/reminders/run?hour=24"},
		{"negative hour", "/internal/reminders/run?hour=-1"},
		{"signed hour", "/internal/reminders/run?hour=+5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeReminderJob{}
			router := newReminderTestRouter(job)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}

			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON response: %v", err)
			}
			if body["error"] != "Invalid or missing hour parameter" {
				t.Errorf("error = %q, want %q", body["error"], "Invalid or missing hour parameter")
			}

			if len(job.runs) != 0 {
				t.Errorf("job ran %d times for a rejected hour, want 0", len(job.runs))
			}
		})
	}
}

func TestRunReminders_ZeroPadsTheHour(t *testing.T) {
	job := &fakeReminderJob{}
	router := newReminderTestRouter(job)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/internal/reminders/run?hour=5", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	if len(job.runs) != 1 || job.runs[0] != "05:00:00" {
		t.Fatalf("job runs = %v, want exactly one run for 05:00:00", job.runs)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	want := "Reminder job executed for UTC hour 05:00:00"
	if body["message"] != want {
		t.Errorf("message = %q, want %q", body["message"], want)
	}
}

func TestRunReminders_AcceptsHourBoundaries(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"/internal/reminders/run?hour=0", "00:00:00"},
		{"/internal/reminders/run?hour=23", "23:00:00"},
		{"/internal/reminders/run?hour=05", "05:00:00"},
	}

	for _, tt := range tests {
		job := &fakeReminderJob{}
		router := newReminderTestRouter(job)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tt.url, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", tt.url, w.Code, http.StatusOK)
			continue
		}
		if len(job.runs) != 1 || job.runs[0] != tt.want {
			t.Errorf("%s: job runs = %v, want one run for %s", tt.url, job.runs, tt.want)
		}
	}
}
