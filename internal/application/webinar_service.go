package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/webinarhq/webinar-platform/internal/clock"
	"github.com/webinarhq/webinar-platform/internal/domain/entity"
	repo "github.com/webinarhq/webinar-platform/internal/domain/repository"
	"github.com/webinarhq/webinar-platform/internal/idgen"
	"github.com/webinarhq/webinar-platform/pkg/helpers"
)

var (
	ErrWebinarNotFound       = errors.New("webinar not found")
	ErrNotOrganizer          = errors.New("user is not the organizer of this webinar")
	ErrReduceSeatsNotAllowed = errors.New("seats can only be increased")
	ErrTooManySeats          = errors.New("seat count exceeds the allowed maximum")
	ErrTooSoon               = errors.New("webinar must be scheduled further in advance")
	ErrInvalidWebinar        = errors.New("invalid webinar input")
)

const (
	defaultSeatCeiling = 1000
	defaultMinLeadTime = 3 * 24 * time.Hour
)

// IndexQueue publishes search-index jobs for asynchronous processing.
// *helpers.RabbitPublisher satisfies it.
type IndexQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// WebinarService hosts the scheduling use cases. The repository, clock and id
// generator are required; queue, Elasticsearch and GCS are optional and every
// path that touches them is nil-guarded so tests can run without infra.
type WebinarService struct {
	Repo   repo.WebinarRepository
	Clock  clock.Clock
	IDs    idgen.Generator
	Logger *logrus.Logger

	Queue           IndexQueue
	ES              *elasticsearch.Client
	ESWebinarsIndex string
	GCS             *storage.Client
	GCSBucket       string

	seatCeiling int
	minLeadTime time.Duration
}

type WebinarOption func(*WebinarService)

// WithSeatCeiling overrides the maximum seat count accepted by ChangeSeats.
func WithSeatCeiling(n int) WebinarOption {
	return func(s *WebinarService) {
		if n > 0 {
			s.seatCeiling = n
		}
	}
}

// WithMinLeadTime overrides the minimum notice required before a webinar starts.
func WithMinLeadTime(d time.Duration) WebinarOption {
	return func(s *WebinarService) {
		if d > 0 {
			s.minLeadTime = d
		}
	}
}

// WithIndexing wires the search pipeline: jobs go to queue when present,
// otherwise documents are written to es inline.
func WithIndexing(queue IndexQueue, es *elasticsearch.Client, index string) WebinarOption {
	return func(s *WebinarService) {
		s.Queue = queue
		s.ES = es
		s.ESWebinarsIndex = index
	}
}

// WithCoverStorage wires the GCS bucket used for webinar cover images.
func WithCoverStorage(gcs *storage.Client, bucket string) WebinarOption {
	return func(s *WebinarService) {
		s.GCS = gcs
		s.GCSBucket = bucket
	}
}

func NewWebinarService(r repo.WebinarRepository, clk clock.Clock, ids idgen.Generator, logger *logrus.Logger, opts ...WebinarOption) *WebinarService {
	s := &WebinarService{
		Repo:        r,
		Clock:       clk,
		IDs:         ids,
		Logger:      logger,
		seatCeiling: defaultSeatCeiling,
		minLeadTime: defaultMinLeadTime,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type OrganizeWebinarCommand struct {
	UserID    string
	Title     string
	Seats     int
	StartDate time.Time
	EndDate   time.Time
}

type OrganizeWebinarResult struct {
	ID string `json:"id"`
}

// OrganizeWebinar validates the command, allocates an id and persists a new
// webinar owned by the acting user. The id is only allocated once every
// validation has passed.
func (s *WebinarService) OrganizeWebinar(ctx context.Context, cmd OrganizeWebinarCommand) (*OrganizeWebinarResult, error) {
	if strings.TrimSpace(cmd.Title) == "" || cmd.Seats <= 0 || !cmd.StartDate.Before(cmd.EndDate) {
		return nil, ErrInvalidWebinar
	}

	now := s.Clock.Now()
	if cmd.StartDate.Sub(now) < s.minLeadTime {
		return nil, ErrTooSoon
	}

	w := &entity.Webinar{
		ID:          s.IDs.NewID(),
		OrganizerID: cmd.UserID,
		Title:       cmd.Title,
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		Seats:       cmd.Seats,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, w); err != nil {
		return nil, err
	}

	s.enqueueIndex(ctx, "webinar.organized", w)
	return &OrganizeWebinarResult{ID: w.ID}, nil
}

type ChangeSeatsCommand struct {
	User      entity.User
	WebinarID string
	Seats     int
}

// ChangeSeats raises the capacity of an existing webinar. Checks run in a
// fixed order (existence, ownership, monotonic increase, ceiling) and the
// first failure returns without touching the store.
func (s *WebinarService) ChangeSeats(ctx context.Context, cmd ChangeSeatsCommand) error {
	w, err := s.Repo.FindByID(ctx, cmd.WebinarID)
	if err != nil {
		return err
	}
	if w == nil {
		return ErrWebinarNotFound
	}
	if w.OrganizerID != cmd.User.ID {
		return ErrNotOrganizer
	}
	if cmd.Seats <= w.Seats {
		return ErrReduceSeatsNotAllowed
	}
	if cmd.Seats > s.seatCeiling {
		return ErrTooManySeats
	}

	updated := w.With(entity.WebinarUpdate{Seats: &cmd.Seats})
	updated.UpdatedAt = s.Clock.Now()
	if err := s.Repo.Update(ctx, &updated); err != nil {
		return err
	}

	s.enqueueIndex(ctx, "webinar.seats_changed", &updated)
	return nil
}

// GetWebinar loads a single webinar by id.
func (s *WebinarService) GetWebinar(ctx context.Context, id string) (*entity.Webinar, error) {
	w, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWebinarNotFound
	}
	return w, nil
}

// UploadCover stores a cover image in GCS and records its public URL on the
// webinar. Only the organizer may replace the cover.
func (s *WebinarService) UploadCover(ctx context.Context, user entity.User, webinarID string, r io.Reader, filename, contentType string) (string, error) {
	w, err := s.Repo.FindByID(ctx, webinarID)
	if err != nil {
		return "", err
	}
	if w == nil {
		return "", ErrWebinarNotFound
	}
	if w.OrganizerID != user.ID {
		return "", ErrNotOrganizer
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", w.ID, s.IDs.NewID()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	updated := w.With(entity.WebinarUpdate{CoverURL: &url})
	updated.UpdatedAt = s.Clock.Now()
	if err := s.Repo.Update(ctx, &updated); err != nil {
		return "", err
	}

	s.enqueueIndex(ctx, "webinar.cover_changed", &updated)
	return url, nil
}
