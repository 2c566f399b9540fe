package session

import (
	"errors"
	"testing"

	"github.com/evently-hq/event-management-backend/internal/event"
)

func TestBuildSessionScheduleValidation(t *testing.T) {
	s := &Service{}
	ev := &event.Event{ID: 1, Mode: event.ModeOnline}

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"valid window", "2026-09-05T09:00:00Z", "2026-09-05T10:00:00Z", nil},
		{"end equals start", "2026-09-05T09:00:00Z", "2026-09-05T09:00:00Z", ErrInvalidScheduleTime},
		{"end before start", "2026-09-05T10:00:00Z", "2026-09-05T09:00:00Z", ErrInvalidScheduleTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &SessionRequest{Title: "Keynote", StartTime: tt.start, EndTime: tt.end}
			_, err := s.buildSession(ev, req, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("buildSession() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildSessionVenueRequirementFollowsEventMode(t *testing.T) {
	s := &Service{}
	req := &SessionRequest{
		Title:     "Workshop",
		StartTime: "2026-09-05T09:00:00Z",
		EndTime:   "2026-09-05T11:00:00Z",
	}

	t.Run("online event needs no venue", func(t *testing.T) {
		if _, err := s.buildSession(&event.Event{ID: 1, Mode: event.ModeOnline}, req, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("offline event without venue rejected", func(t *testing.T) {
		if _, err := s.buildSession(&event.Event{ID: 1, Mode: event.ModeOffline}, req, nil); err == nil {
			t.Error("expected error for missing venue")
		}
	})
	t.Run("hybrid event with partial venue rejected", func(t *testing.T) {
		r := *req
		r.Venue = &Venue{Name: "Hall A"}
		if _, err := s.buildSession(&event.Event{ID: 1, Mode: event.ModeHybrid}, &r, nil); err == nil {
			t.Error("expected error for incomplete venue")
		}
	})
	t.Run("offline event with full venue accepted", func(t *testing.T) {
		r := *req
		r.Venue = &Venue{Name: "Hall A", Address: "1 Main St", City: "Bengaluru"}
		sess, err := s.buildSession(&event.Event{ID: 1, Mode: event.ModeOffline}, &r, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sess.Venue.City != "Bengaluru" {
			t.Errorf("venue not carried over: %+v", sess.Venue)
		}
	})
}
