package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/webinarhq/webinar-platform/internal/domain/entity"
	"github.com/webinarhq/webinar-platform/internal/domain/repository"
)

const pgUniqueViolation = "23505"

type WebinarRepository struct {
	pool *pgxpool.Pool
}

func NewWebinarRepository(pool *pgxpool.Pool) *WebinarRepository {
	return &WebinarRepository{pool: pool}
}

// Create inserts a brand-new aggregate. A duplicate id maps to
// repository.ErrWebinarExists.
func (r *WebinarRepository) Create(ctx context.Context, w *entity.Webinar) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO webinars (id, organizer_id, title, start_date, end_date, seats, cover_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, w.ID, w.OrganizerID, w.Title, w.StartDate, w.EndDate, w.Seats, w.CoverURL, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return repository.ErrWebinarExists
		}
		return err
	}
	return nil
}

// FindByID returns (nil, nil) when no row matches.
func (r *WebinarRepository) FindByID(ctx context.Context, id string) (*entity.Webinar, error) {
	w := &entity.Webinar{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, organizer_id, title, start_date, end_date, seats, cover_url, created_at, updated_at
		FROM webinars
		WHERE id = $1
	`, id)

	if err := row.Scan(&w.ID, &w.OrganizerID, &w.Title, &w.StartDate, &w.EndDate,
		&w.Seats, &w.CoverURL, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return w, nil
}

// Update overwrites the stored record with the aggregate's full current
// state. Callers are expected to have loaded the webinar via FindByID first.
func (r *WebinarRepository) Update(ctx context.Context, w *entity.Webinar) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE webinars
		SET title = $1, start_date = $2, end_date = $3, seats = $4, cover_url = $5, updated_at = $6
		WHERE id = $7
	`, w.Title, w.StartDate, w.EndDate, w.Seats, w.CoverURL, w.UpdatedAt, w.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errors.New("webinar missing on update")
	}
	return nil
}

var _ repository.WebinarRepository = (*WebinarRepository)(nil)
