// Package remote tags text through an HTTP part-of-speech tagging service.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/nounquiz/internal/pos"
)

const (
	DefaultMaxRetryAttempts = 3
	DefaultTimeout          = 10 * time.Second
)

// Client calls `POST /tag` on the tagging service.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
}

func NewClient(baseURL string, timeout time.Duration, retryAttempts uint) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(timeout)

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type TagRequest struct {
	Text string `json:"text"`
}

type TagResponse struct {
	Tokens []pos.Token `json:"tokens"`
}

// statusError keeps the status code so retries can tell server faults from client faults.
type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.statusCode >= 500 || statusErr.statusCode == 429
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "unexpected end of JSON input")
}

// Tag implements pos.Tagger.
func (client *Client) Tag(ctx context.Context, text string) ([]pos.Token, error) {
	var result []pos.Token
	if err := retry.Do(
		func() error {
			tokens, err := client.tag(ctx, text)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Debug("retrying tagger request", "error", err)
				return err
			}
			result = tokens
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) tag(ctx context.Context, text string) ([]pos.Token, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(TagRequest{Text: text}).
		SetResult(&TagResponse{}).
		Post("/tag")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, &statusError{statusCode: response.StatusCode(), body: response.String()}
	}

	responseBody, ok := response.Result().(*TagResponse)
	if !ok || responseBody == nil {
		return nil, fmt.Errorf("empty response body: %s", response.String())
	}
	if responseBody.Tokens == nil {
		return []pos.Token{}, nil
	}
	return responseBody.Tokens, nil
}
