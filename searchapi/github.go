package searchapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/meghashyamc/ghreport/config"
	"github.com/meghashyamc/ghreport/logger"
	"github.com/meghashyamc/ghreport/validation"
	"golang.org/x/time/rate"
)

const (
	searchCodePath   = "/search/code"
	userAgent        = "ghreport"
	maxErrorBodySize = 512
)

var errBodyTooLarge = errors.New("response body too large")

type GitHubClient struct {
	baseURL     string
	token       string
	maxBodySize int64
	httpClient  *http.Client
	limiter     *rate.Limiter
	validator   *validation.Validator
	logger      logger.Logger
}

// NewGitHubClient takes the already resolved token; it never looks credentials up itself.
func NewGitHubClient(logger logger.Logger, cfg *config.Config, token string, validator *validation.Validator) *GitHubClient {
	limit := rate.Inf
	if interval := cfg.GetMinRequestInterval(); interval > 0 {
		limit = rate.Every(interval)
	}

	return &GitHubClient{
		baseURL:     cfg.GetAPIBaseURL(),
		token:       token,
		maxBodySize: cfg.GetMaxResponseSize(),
		httpClient:  &http.Client{Timeout: cfg.GetRequestTimeout()},
		limiter:     rate.NewLimiter(limit, 1),
		validator:   validator,
		logger:      logger,
	}
}

func (g *GitHubClient) SearchCode(ctx context.Context, request Request) (*Response, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting to send search request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, g.searchURL(request), nil)
	if err != nil {
		g.logger.Error("could not create search request", "err", err.Error())
		return nil, fmt.Errorf("could not create search request: %w", err)
	}
	httpRequest.Header.Set("Accept", AcceptTextMatch)
	httpRequest.Header.Set("Authorization", "Bearer "+g.token)
	httpRequest.Header.Set("User-Agent", userAgent)

	g.logger.Debug("sending search request", "page", request.Page, "per_page", request.PerPage)
	httpResponse, err := g.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %w", ErrHTTP, request.Page, err)
	}
	defer httpResponse.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResponse.Body, g.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body of page %d: %w", ErrHTTP, request.Page, err)
	}
	if int64(len(body)) > g.maxBodySize {
		g.logger.Error("search response exceeds size limit", "page", request.Page, "max_bytes", g.maxBodySize)
		return nil, fmt.Errorf("%w: page %d: %w", ErrHTTP, request.Page, errBodyTooLarge)
	}

	if httpResponse.StatusCode < 200 || httpResponse.StatusCode > 299 {
		return nil, &HTTPError{
			Page:       request.Page,
			StatusCode: httpResponse.StatusCode,
			Status:     httpResponse.Status,
			Body:       string(bytes.TrimSpace(body[:min(len(body), maxErrorBodySize)])),
		}
	}

	return &Response{
		Page:    request.Page,
		Header:  httpResponse.Header,
		body:    body,
		decoder: g,
	}, nil
}

func (g *GitHubClient) searchURL(request Request) string {
	params := url.Values{}
	params.Set("q", request.Query)
	params.Set("per_page", strconv.Itoa(request.PerPage))
	params.Set("page", strconv.Itoa(request.Page))

	return g.baseURL + searchCodePath + "?" + params.Encode()
}

// decode validates the page envelope as a whole and each item on its own, so
// one malformed item does not cost the rest of the page.
func (g *GitHubClient) decode(page int, body []byte) (*Result, error) {
	result := &Result{}
	if err := json.Unmarshal(body, result); err != nil {
		g.logger.Error("could not unmarshal search response", "page", page, "err", err.Error())
		return nil, &ParseError{Page: page, Err: err}
	}

	if err := g.validator.Validate(result); err != nil {
		g.logger.Error("search response failed validation", "page", page, "err", err.Error())
		return nil, &ParseError{Page: page, Err: err}
	}

	validItems := make([]Item, 0, len(result.Items))
	for i, item := range result.Items {
		if err := g.validator.Validate(item); err != nil {
			g.logger.Warn("skipping invalid search result item", "page", page, "position", i, "err", err.Error())
			result.InvalidItems++
			continue
		}
		validItems = append(validItems, item)
	}
	result.Items = validItems

	return result, nil
}
