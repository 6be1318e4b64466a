package entity

import (
	"testing"
	"time"
)

func TestWebinarWith(t *testing.T) {
	t.Parallel()

	base := Webinar{
		ID:          "webinar-123",
		OrganizerID: "alice",
		Title:       "Sample Webinar",
		StartDate:   time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		Seats:       100,
	}

	t.Run("applies only supplied fields", func(t *testing.T) {
		seats := 250
		updated := base.With(WebinarUpdate{Seats: &seats})

		if updated.Seats != 250 {
			t.Fatalf("expected 250 seats, got %d", updated.Seats)
		}
		if updated.Title != base.Title || !updated.StartDate.Equal(base.StartDate) || !updated.EndDate.Equal(base.EndDate) {
			t.Fatalf("unrelated fields changed: %+v", updated)
		}
		if updated.ID != "webinar-123" || updated.OrganizerID != "alice" {
			t.Fatalf("identity fields changed: %+v", updated)
		}
	})

	t.Run("applies all supplied fields together", func(t *testing.T) {
		title := "Renamed"
		seats := 300
		start := base.StartDate.Add(24 * time.Hour)
		end := base.EndDate.Add(24 * time.Hour)

		updated := base.With(WebinarUpdate{Title: &title, Seats: &seats, StartDate: &start, EndDate: &end})

		if updated.Title != "Renamed" || updated.Seats != 300 {
			t.Fatalf("update not fully applied: %+v", updated)
		}
		if !updated.StartDate.Equal(start) || !updated.EndDate.Equal(end) {
			t.Fatalf("dates not fully applied: %+v", updated)
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		seats := 999
		_ = base.With(WebinarUpdate{Seats: &seats})

		if base.Seats != 100 {
			t.Fatalf("receiver mutated, seats = %d", base.Seats)
		}
	})

	t.Run("empty update is a no-op copy", func(t *testing.T) {
		updated := base.With(WebinarUpdate{})
		if updated != base {
			t.Fatalf("expected identical copy, got %+v", updated)
		}
	})
}
