package client

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	ErrServiceUnavailable = errors.New("external service unavailable")
	ErrBadRequest         = errors.New("external service rejected request")
)

type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

func NewRateLimitError(headers http.Header) *RateLimitError {
	return &RateLimitError{
		RetryAfter: ParseRetryAfter(headers),
	}
}

// postJSON - общий POST с JSON телом, разбор ответа в out (если out != nil)
func postJSON(ctx context.Context, client HTTPClient, url string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return HandleErrorResponse(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func HandleErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return NewRateLimitError(resp.Header)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrBadRequest
	default:
		return ErrServiceUnavailable
	}
}
