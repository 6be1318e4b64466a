package repository

import (
	"context"
	"errors"

	"github.com/webinarhq/webinar-platform/internal/domain/entity"
)

// ErrWebinarExists is returned by Create when an aggregate with the same ID
// is already stored.
var ErrWebinarExists = errors.New("webinar already exists")

// WebinarRepository is the persistence port for the Webinar aggregate.
// FindByID reports absence as (nil, nil), never as an error, so adapters and
// use cases agree on what "not found" looks like.
type WebinarRepository interface {
	Create(ctx context.Context, w *entity.Webinar) error
	FindByID(ctx context.Context, id string) (*entity.Webinar, error)
	Update(ctx context.Context, w *entity.Webinar) error
}
