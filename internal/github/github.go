// Package github is a thin client for the GitHub search API, the source of
// candidate issues and repositories. It only covers the search surface the
// engine needs; retry and backoff policy is deliberately left to callers.
package github

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL       = "https://api.github.com"
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
	userAgent    = "gitscout (github.com/gitscout/gitscout)"

	// Max value for search per page.
	maxPerPage = 100
	// Search results past this many pages are noise for matching purposes.
	maxSearchPages = 10
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates a search client. The token is optional: unauthenticated
// requests work with lower rate limits.
func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
