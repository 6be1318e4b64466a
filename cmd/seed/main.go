package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/webinarhq/webinar-platform/config"
	"github.com/webinarhq/webinar-platform/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	seedUser := func(id, email, name string) {
		_, err := db.Exec(`
			INSERT INTO users (id, email, password_hash, name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		`, id, email, hash, name)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)
	}

	seedUser("alice", "alice@example.com", "Alice")
	seedUser("bob", "bob@example.com", "Bob")

	// Sample webinar owned by alice, far enough out to allow seat changes
	id := uuid.NewString()
	start := time.Now().UTC().Add(14 * 24 * time.Hour).Truncate(time.Hour)
	end := start.Add(2 * time.Hour)
	_, err = db.Exec(`
		INSERT INTO webinars (id, organizer_id, title, start_date, end_date, seats, cover_url, created_at, updated_at)
		VALUES ($1, 'alice', 'Welcome Webinar', $2, $3, 100, '', now(), now())
		ON CONFLICT (id) DO NOTHING
	`, id, start, end)
	if err != nil {
		log.Fatalf("failed to seed webinar: %v", err)
	}
	fmt.Printf("seeded webinar: id=%s organizer=alice seats=100 start=%s\n", id, start.Format(time.RFC3339))
}
