package app

import (
	"context"
	"fmt"
	"io"

	"github.com/meghashyamc/ghreport/config"
	"github.com/meghashyamc/ghreport/logger"
	"github.com/meghashyamc/ghreport/searchapi"
	"github.com/meghashyamc/ghreport/services/report"
	"github.com/meghashyamc/ghreport/services/search"
	"github.com/meghashyamc/ghreport/validation"
)

type app struct {
	searchService *search.Service
	validator     *validation.Validator
	logger        logger.Logger
	sleeper       search.Sleeper
}

type queryRequest struct {
	Query string `json:"query" validate:"valid_query"`
}

// Run searches for query and writes the HTML report to out. Search failures
// after the first page still produce a report from the records gathered so far.
func Run(ctx context.Context, cfg *config.Config, query string, out io.Writer) error {
	a := &app{
		logger:  logger.New(cfg.GetLogLevel()),
		sleeper: search.WallClockSleeper{},
	}

	return a.run(ctx, cfg, query, out)
}

func (a *app) run(ctx context.Context, cfg *config.Config, query string, out io.Writer) error {
	if err := a.setupDependencies(cfg); err != nil {
		return err
	}

	if err := a.validator.Validate(queryRequest{Query: query}); err != nil {
		a.logger.Error("invalid search query", "query", query, "err", err.Error())
		return err
	}

	results, fetchErr := a.searchService.Fetch(ctx, query)
	if fetchErr != nil {
		a.logger.Warn("search did not finish, writing partial report", "records", results.Len(), "err", fetchErr.Error())
	}

	if err := report.WriteHTML(out, report.Build(results.Records())); err != nil {
		a.logger.Error("could not write report", "err", err.Error())
		return err
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	return fetchErr
}

func (a *app) setupDependencies(cfg *config.Config) error {
	var err error
	a.validator, err = validation.New(a.logger)
	if err != nil {
		a.logger.Error("error creating validator", "err", err.Error())
		return err
	}

	token, err := cfg.LoadAccessToken()
	if err != nil {
		a.logger.Error("error loading access token", "err", err.Error())
		return err
	}

	client := searchapi.NewGitHubClient(a.logger, cfg, token, a.validator)
	rateLimiter := search.NewRateLimiter(a.logger, a.sleeper)
	a.searchService = search.New(a.logger, client, rateLimiter)

	return nil
}
