package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/webinarhq/webinar-platform/internal/domain/entity"
)

// WebinarDoc is the search-index projection of a webinar.
type WebinarDoc struct {
	ID          string `json:"id"`
	OrganizerID string `json:"organizer_id"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Seats       int    `json:"seats"`
	CoverURL    string `json:"cover_url,omitempty"`
}

// IndexJob is the queue message consumed by the index worker.
type IndexJob struct {
	Action  string     `json:"action"`
	Webinar WebinarDoc `json:"webinar"`
}

func docFrom(w *entity.Webinar) WebinarDoc {
	return WebinarDoc{
		ID:          w.ID,
		OrganizerID: w.OrganizerID,
		Title:       w.Title,
		StartDate:   w.StartDate.UTC().Format(time.RFC3339Nano),
		EndDate:     w.EndDate.UTC().Format(time.RFC3339Nano),
		Seats:       w.Seats,
		CoverURL:    w.CoverURL,
	}
}

// enqueueIndex projects the webinar into the search index, preferring the
// queue when one is wired. Failures are logged and swallowed; indexing never
// affects the outcome of a use case.
func (s *WebinarService) enqueueIndex(ctx context.Context, action string, w *entity.Webinar) {
	job := IndexJob{Action: action, Webinar: docFrom(w)}
	if s.Queue != nil {
		if err := s.Queue.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("webinar_id", w.ID).Warn("publish index job failed")
		}
		return
	}
	if err := IndexWebinarDoc(ctx, s.ES, s.ESWebinarsIndex, job.Webinar); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("webinar_id", w.ID).Warn("es index failed")
	}
}

// IndexWebinarDoc writes one webinar document to Elasticsearch. It is a no-op
// when the client or index is not configured.
func IndexWebinarDoc(ctx context.Context, es *elasticsearch.Client, index string, doc WebinarDoc) error {
	if es == nil || index == "" {
		return nil
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: index, DocumentID: doc.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return nil
}

// SearchWebinars performs a multi_match query on title and organizer id.
func (s *WebinarService) SearchWebinars(ctx context.Context, q string, size int) ([]WebinarDoc, error) {
	if s.ES == nil || s.ESWebinarsIndex == "" {
		return []WebinarDoc{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "organizer_id"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESWebinarsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source WebinarDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]WebinarDoc, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
