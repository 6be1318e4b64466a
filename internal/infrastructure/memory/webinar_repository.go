package memory

import (
	"context"
	"sync"

	"github.com/webinarhq/webinar-platform/internal/domain/entity"
	"github.com/webinarhq/webinar-platform/internal/domain/repository"
)

// WebinarRepository is a map-backed implementation of the webinar port.
// Entities are stored by value so callers never share memory with the store;
// used by tests and available for local wiring.
type WebinarRepository struct {
	mu       sync.RWMutex
	webinars map[string]entity.Webinar
	writes   int
}

func NewWebinarRepository(seed ...entity.Webinar) *WebinarRepository {
	r := &WebinarRepository{webinars: make(map[string]entity.Webinar, len(seed))}
	for _, w := range seed {
		r.webinars[w.ID] = w
	}
	return r
}

func (r *WebinarRepository) Create(_ context.Context, w *entity.Webinar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.webinars[w.ID]; ok {
		return repository.ErrWebinarExists
	}
	r.webinars[w.ID] = *w
	r.writes++
	return nil
}

func (r *WebinarRepository) FindByID(_ context.Context, id string) (*entity.Webinar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.webinars[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WebinarRepository) Update(_ context.Context, w *entity.Webinar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.webinars[w.ID] = *w
	r.writes++
	return nil
}

// Writes reports how many mutations the store has absorbed; tests use it to
// assert that failed use cases leave the store untouched.
func (r *WebinarRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

var _ repository.WebinarRepository = (*WebinarRepository)(nil)
