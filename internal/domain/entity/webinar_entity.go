package entity

import (
	"time"
)

// Webinar is the aggregate root for the scheduling domain.
// ID and OrganizerID are immutable after construction; every other field is
// replaced through With, never mutated in place. Business rules (seat ceiling,
// lead time, ownership) live in the application layer — the entity trusts its
// inputs once constructed.
type Webinar struct {
	ID          string
	OrganizerID string
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	Seats       int
	CoverURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WebinarUpdate carries an explicit partial property set. Nil fields are left
// untouched; non-nil fields are applied together.
type WebinarUpdate struct {
	Title     *string
	StartDate *time.Time
	EndDate   *time.Time
	Seats     *int
	CoverURL  *string
}

// With returns a copy of the webinar with the update applied. The receiver is
// a value, so callers holding the original never observe a half-applied
// update; the repository persists the returned copy in one write.
func (w Webinar) With(u WebinarUpdate) Webinar {
	if u.Title != nil {
		w.Title = *u.Title
	}
	if u.StartDate != nil {
		w.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		w.EndDate = *u.EndDate
	}
	if u.Seats != nil {
		w.Seats = *u.Seats
	}
	if u.CoverURL != nil {
		w.CoverURL = *u.CoverURL
	}
	return w
}
