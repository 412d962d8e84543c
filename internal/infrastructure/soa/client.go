// Package soa integrates the external statement-of-account and document
// locker providers: an authenticated HTTP client, a response transform
// that strips volatile per-request metadata, and a statement parser.
package soa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

const (
	defaultFetchTimeout = 15 * time.Second
	maxResponseBytes    = 4 << 20
)

// Config captures the provider endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the aggregator. It implements both ports.HoldingsSource
// and ports.KYCSource. All transport and parse failures surface as
// domain.ErrFetchFailed, the only retryable error class.
type Client struct {
	cfg    Config
	http   *http.Client
	logger zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FetchHoldings fetches and parses the owner's statement of account.
func (c *Client) FetchHoldings(ctx context.Context, kyc ports.KYCRef) (*ports.HoldingsStatement, error) {
	canonical, err := c.get(ctx, "/v1/soa/holdings", kyc)
	if err != nil {
		return nil, err
	}

	holdings, err := ParseStatement(canonical.Body)
	if err != nil {
		return nil, err
	}

	return &ports.HoldingsStatement{
		Fingerprint: canonical.Fingerprint(),
		Holdings:    holdings,
	}, nil
}

// FetchAadhaarDetails returns the locker's detail string for an Aadhaar
// number.
func (c *Client) FetchAadhaarDetails(ctx context.Context, aadhaar string) (string, error) {
	return c.fetchDetails(ctx, "/v1/locker/aadhaar", ports.KYCRef{Aadhaar: aadhaar})
}

// FetchPANDetails returns the locker's detail string for a PAN number.
func (c *Client) FetchPANDetails(ctx context.Context, pan string) (string, error) {
	return c.fetchDetails(ctx, "/v1/locker/pan", ports.KYCRef{PAN: pan})
}

func (c *Client) fetchDetails(ctx context.Context, path string, kyc ports.KYCRef) (string, error) {
	canonical, err := c.get(ctx, path, kyc)
	if err != nil {
		return "", err
	}

	var body struct {
		Details string `json:"details"`
	}
	if err := json.Unmarshal(canonical.Body, &body); err != nil {
		return "", fmt.Errorf("%w: decode details: %v", domain.ErrFetchFailed, err)
	}
	return body.Details, nil
}

// get issues the authenticated request and applies the response
// transform, so callers only ever see canonical responses.
func (c *Client) get(ctx context.Context, path string, kyc ports.KYCRef) (*CanonicalResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	if kyc.Aadhaar != "" {
		req.Header.Set("X-KYC-Aadhaar", kyc.Aadhaar)
	}
	if kyc.PAN != "" {
		req.Header.Set("X-KYC-PAN", kyc.PAN)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("provider returned non-200")
		return nil, fmt.Errorf("%w: provider status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	canonical := Transform(RawResponse{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    body,
	})
	return &canonical, nil
}
