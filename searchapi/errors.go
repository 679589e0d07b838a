package searchapi

import (
	"errors"
	"fmt"
)

var (
	ErrHTTP  = errors.New("search request failed")
	ErrParse = errors.New("could not parse search response")
)

type HTTPError struct {
	Page       int
	StatusCode int
	Status     string
	Body       string
}

type ParseError struct {
	Page int
	Err  error
}

func (e *HTTPError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("search request for page %d failed: %s", e.Page, e.Status)
	}
	return fmt.Sprintf("search request for page %d failed: %s: %s", e.Page, e.Status, e.Body)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse search response for page %d: %s", e.Page, e.Err)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
