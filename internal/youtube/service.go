package youtube

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/apierror"
	"github.com/jimdaga/rep-tracker/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// Searcher resolves a query to the first matching video id
type Searcher interface {
	Configured() bool
	SearchFirstVideo(ctx context.Context, query string) (string, error)
}

// Service answers video searches from the cache, falling back to the
// upstream Searcher on a miss. Only non-empty resolutions are cached, so an
// empty upstream answer is retried on the next call.
type Service struct {
	searcher Searcher
	store    Store
	flights  singleflight.Group
}

func NewService(searcher Searcher, store Store) *Service {
	return &Service{searcher: searcher, store: store}
}

// Search returns the video id for query. The query is used verbatim as the
// cache key.
func (s *Service) Search(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", apierror.Validation("Query parameter is required")
	}
	if !s.searcher.Configured() {
		return "", apierror.Server("YouTube API key is not configured", nil)
	}

	if videoID, ok := s.cached(ctx, query); ok {
		metrics.SearchCacheHits.Inc()
		return videoID, nil
	}
	metrics.SearchCacheMisses.Inc()

	// Concurrent misses for one query share a single upstream call.
	v, err, _ := s.flights.Do(query, func() (any, error) {
		if videoID, ok := s.cached(ctx, query); ok {
			return videoID, nil
		}

		videoID, err := s.searcher.SearchFirstVideo(ctx, query)
		switch {
		case errors.Is(err, ErrNoResults):
			metrics.UpstreamRequests.WithLabelValues(metrics.ResultEmpty).Inc()
			return "", err
		case err != nil:
			metrics.UpstreamRequests.WithLabelValues(metrics.ResultError).Inc()
			return "", err
		}
		metrics.UpstreamRequests.WithLabelValues(metrics.ResultOK).Inc()

		if err := s.store.Add(ctx, query, videoID); err != nil {
			slog.Warn("Failed to cache search result", "query", query, "error", err)
		}
		return videoID, nil
	})

	switch {
	case errors.Is(err, ErrNoResults):
		return "", apierror.NotFound("No videos found")
	case err != nil:
		return "", apierror.Upstream("Failed to fetch YouTube data", err)
	}
	return v.(string), nil
}

// cached treats store failures as misses so a broken cache never fails a
// search on its own.
func (s *Service) cached(ctx context.Context, query string) (string, bool) {
	videoID, ok, err := s.store.Get(ctx, query)
	if err != nil {
		slog.Warn("Search cache lookup failed", "query", query, "error", err)
		return "", false
	}
	return videoID, ok
}

// SearchHandler serves GET /api/youtube/search?query=...
func SearchHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, err := svc.Search(c.Request.Context(), c.Query("query"))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"videoId": videoID})
	}
}
