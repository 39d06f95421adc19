package types

import (
	"errors"
	"fmt"
)

// ErrCode identifies the failure class of a scrape pipeline error.
type ErrCode string

const (
	ErrInvalidURL     ErrCode = "INVALID_URL"
	ErrNetwork        ErrCode = "NETWORK_ERROR"
	ErrScrapeFailed   ErrCode = "SCRAPE_FAILED"
	ErrRecipeNotFound ErrCode = "RECIPE_NOT_FOUND"
	ErrBlockedBySite  ErrCode = "BLOCKED_BY_SITE"
)

// ScrapeError is the typed error surfaced by the fetcher and the scraper.
type ScrapeError struct {
	Code    ErrCode
	Message string
	Err     error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error { return e.Err }

// NewScrapeError builds a ScrapeError with an optional wrapped cause.
func NewScrapeError(code ErrCode, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the ErrCode from err, defaulting to SCRAPE_FAILED for
// untyped errors.
func CodeOf(err error) ErrCode {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrScrapeFailed
}
