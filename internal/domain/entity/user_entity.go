package entity

import (
	"time"
)

// User is the acting identity resolved upstream of the webinar use cases.
// Passwords are stored as bcrypt hashes in Password field; the webinar use
// cases never inspect it and only compare ID against Webinar.OrganizerID.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
