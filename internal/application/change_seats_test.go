package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/webinarhq/webinar-platform/internal/clock"
	"github.com/webinarhq/webinar-platform/internal/domain/entity"
	"github.com/webinarhq/webinar-platform/internal/idgen"
	"github.com/webinarhq/webinar-platform/internal/infrastructure/memory"
)

func TestWebinarService_ChangeSeats(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	initial := entity.Webinar{
		ID:          "webinar-123",
		OrganizerID: "alice",
		Title:       "Sample Webinar",
		StartDate:   time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		Seats:       100,
	}

	makeSvc := func() (*WebinarService, *memory.WebinarRepository) {
		repo := memory.NewWebinarRepository(initial)
		svc := NewWebinarService(repo, clock.NewFixed(now), idgen.NewSequence("id"), nil)
		return svc, repo
	}

	seatsOf := func(t *testing.T, repo *memory.WebinarRepository) int {
		t.Helper()
		w, err := repo.FindByID(context.Background(), "webinar-123")
		if err != nil || w == nil {
			t.Fatalf("expected webinar to exist, got %v, %v", w, err)
		}
		return w.Seats
	}

	t.Run("organizer can increase seats", func(t *testing.T) {
		svc, repo := makeSvc()

		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "alice"},
			WebinarID: "webinar-123",
			Seats:     150,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := seatsOf(t, repo); got != 150 {
			t.Fatalf("expected 150 seats, got %d", got)
		}
	})

	t.Run("unknown webinar leaves the store untouched", func(t *testing.T) {
		svc, repo := makeSvc()

		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "alice"},
			WebinarID: "not-existing",
			Seats:     200,
		})
		if !errors.Is(err, ErrWebinarNotFound) {
			t.Fatalf("expected ErrWebinarNotFound, got %v", err)
		}
		if repo.Writes() != 0 {
			t.Fatalf("expected zero writes, got %d", repo.Writes())
		}
		if got := seatsOf(t, repo); got != 100 {
			t.Fatalf("expected seats unchanged at 100, got %d", got)
		}
	})

	t.Run("only the organizer may change seats", func(t *testing.T) {
		svc, repo := makeSvc()

		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "bob"},
			WebinarID: "webinar-123",
			Seats:     150,
		})
		if !errors.Is(err, ErrNotOrganizer) {
			t.Fatalf("expected ErrNotOrganizer, got %v", err)
		}
		if got := seatsOf(t, repo); got != 100 {
			t.Fatalf("expected seats unchanged at 100, got %d", got)
		}
	})

	t.Run("seats cannot be reduced", func(t *testing.T) {
		svc, repo := makeSvc()

		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "alice"},
			WebinarID: "webinar-123",
			Seats:     50,
		})
		if !errors.Is(err, ErrReduceSeatsNotAllowed) {
			t.Fatalf("expected ErrReduceSeatsNotAllowed, got %v", err)
		}
		if got := seatsOf(t, repo); got != 100 {
			t.Fatalf("expected seats unchanged at 100, got %d", got)
		}
	})

	t.Run("equal seat count is rejected too", func(t *testing.T) {
		svc, repo := makeSvc()

		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "alice"},
			WebinarID: "webinar-123",
			Seats:     100,
		})
		if !errors.Is(err, ErrReduceSeatsNotAllowed) {
			t.Fatalf("expected ErrReduceSeatsNotAllowed, got %v", err)
		}
		if repo.Writes() != 0 {
			t.Fatalf("expected zero writes, got %d", repo.Writes())
		}
	})

	t.Run("seat ceiling is enforced", func(t *testing.T) {
		svc, repo := makeSvc()

		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "alice"},
			WebinarID: "webinar-123",
			Seats:     2000,
		})
		if !errors.Is(err, ErrTooManySeats) {
			t.Fatalf("expected ErrTooManySeats, got %v", err)
		}
		if got := seatsOf(t, repo); got != 100 {
			t.Fatalf("expected seats unchanged at 100, got %d", got)
		}
	})

	t.Run("ceiling itself is allowed", func(t *testing.T) {
		svc, repo := makeSvc()

		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "alice"},
			WebinarID: "webinar-123",
			Seats:     1000,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := seatsOf(t, repo); got != 1000 {
			t.Fatalf("expected 1000 seats, got %d", got)
		}
	})

	t.Run("ownership is checked before seat rules", func(t *testing.T) {
		svc, _ := makeSvc()

		// bob with a reducing seat count still gets the ownership failure
		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "bob"},
			WebinarID: "webinar-123",
			Seats:     50,
		})
		if !errors.Is(err, ErrNotOrganizer) {
			t.Fatalf("expected ErrNotOrganizer, got %v", err)
		}
	})

	t.Run("custom ceiling option", func(t *testing.T) {
		repo := memory.NewWebinarRepository(initial)
		svc := NewWebinarService(repo, clock.NewFixed(now), idgen.NewSequence("id"), nil, WithSeatCeiling(120))

		err := svc.ChangeSeats(context.Background(), ChangeSeatsCommand{
			User:      entity.User{ID: "alice"},
			WebinarID: "webinar-123",
			Seats:     150,
		})
		if !errors.Is(err, ErrTooManySeats) {
			t.Fatalf("expected ErrTooManySeats with lowered ceiling, got %v", err)
		}
	})
}
