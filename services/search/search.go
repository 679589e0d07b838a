package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/meghashyamc/ghreport/logger"
	"github.com/meghashyamc/ghreport/searchapi"
)

type Service struct {
	logger      logger.Logger
	client      searchapi.Client
	rateLimiter *RateLimiter
}

func New(logger logger.Logger, client searchapi.Client, rateLimiter *RateLimiter) *Service {
	return &Service{
		logger:      logger,
		client:      client,
		rateLimiter: rateLimiter,
	}
}

// Fetch pages through every result the API will serve for query and
// deduplicates them by sha. A failed or unparseable page ends the run early;
// whatever was collected before it is still returned. The only error returned
// is a cancelled context, again alongside the partial results.
func (s *Service) Fetch(ctx context.Context, query string) (*ResultSet, error) {
	runID := uuid.New().String()
	results := NewResultSet()

	// Unknown until the first page reports total_count.
	numRemaining := -1

	for page := 1; ; page++ {
		if (page-1)*searchapi.PerPage >= searchapi.MaxResults {
			s.logger.Info("reached the search result ceiling", "run_id", runID, "max_results", searchapi.MaxResults)
			break
		}

		response, err := s.client.SearchCode(ctx, searchapi.Request{Query: query, PerPage: searchapi.PerPage, Page: page})
		if err != nil {
			if ctx.Err() != nil {
				return results, fmt.Errorf("search cancelled on page %d: %w", page, ctx.Err())
			}
			s.logger.Error("search request failed, keeping partial results", "run_id", runID, "page", page, "records", results.Len(), "err", err.Error())
			break
		}

		// The quota used by this request is already reflected in its headers.
		if err := s.rateLimiter.Throttle(ctx, response.Header); err != nil {
			return results, err
		}

		result, err := response.Decode()
		if err != nil {
			s.logger.Error("could not decode search page, keeping partial results", "run_id", runID, "page", page, "records", results.Len(), "err", err.Error())
			break
		}

		if numRemaining < 0 {
			numRemaining = min(*result.TotalCount, searchapi.MaxResults)
			s.logger.Info("starting search", "run_id", runID, "total_count", *result.TotalCount, "to_fetch", numRemaining)
		}

		// Every position counts against the total, duplicates and dropped items included.
		for _, item := range result.Items {
			if results.Insert(item) {
				s.logger.Debug("adding record for sha", "run_id", runID, "sha", item.SHA)
			} else {
				s.logger.Debug("found duplicate for sha", "run_id", runID, "sha", item.SHA)
			}
			numRemaining--
		}
		numRemaining -= result.InvalidItems

		s.logger.Debug("fetched search page", "run_id", runID, "page", page, "items", len(result.Items), "remaining", numRemaining)

		if numRemaining <= 0 {
			break
		}

		if len(result.Items)+result.InvalidItems == 0 {
			s.logger.Warn("search results ran out before the reported total", "run_id", runID, "page", page, "remaining", numRemaining)
			break
		}
	}

	s.logger.Info("finished search", "run_id", runID, "records", results.Len())
	return results, nil
}
