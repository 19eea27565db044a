package hackerrank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	kDefaultBaseURL = "https://www.hackerrank.com"
	kChallengesPath = "/rest/contests/master/tracks/sql/challenges"

	// HackerRank answers the default Go user agent differently from curl.
	kDefaultUserAgent = "curl/7.81.0"

	kHeaderAccept      = "Accept"
	kHeaderContentType = "Content-Type"
	kHeaderUserAgent   = "User-Agent"

	kContentTypeApplicationJSON = "application/json"
	kContentTypeTextHTML        = "text/html"

	kMaxErrorBodyBytes = 8 << 10
	kMaxResponseBytes  = 16 << 20
)

// Client is the retrieval contract used by the rest of hrsql.
type Client interface {
	Fetch(ctx context.Context, settings QuerySettings) ([]Challenge, error)
	FetchAll(ctx context.Context) ([]Challenge, error)
	FetchNoFilters(ctx context.Context) ([]Challenge, error)
	FetchEasy(ctx context.Context) ([]Challenge, error)
}

// HTTPClient fetches the SQL track challenge list over net/http.
//
// It keeps no state between calls; each Fetch renders, sends and parses one
// request. It does not retry and sets no timeout of its own: configure HTTP
// for that.
type HTTPClient struct {
	BaseURL   string
	UserAgent string

	HTTP   *http.Client
	Logger *zap.Logger
}

type HTTPClientOptions struct {
	// BaseURL defaults to https://www.hackerrank.com.
	BaseURL   string
	// UserAgent defaults to curl/7.81.0.
	UserAgent string
	HTTP      *http.Client
	Logger    *zap.Logger
}

func NewHttpClient(opts HTTPClientOptions) *HTTPClient {
	c := &HTTPClient{
		BaseURL:   opts.BaseURL,
		UserAgent: opts.UserAgent,
		HTTP:      opts.HTTP,
		Logger:    opts.Logger,
	}
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

func (c *HTTPClient) FetchAll(ctx context.Context) ([]Challenge, error) {
	return c.Fetch(ctx, AllChallenges())
}

func (c *HTTPClient) FetchNoFilters(ctx context.Context) ([]Challenge, error) {
	return c.Fetch(ctx, NoFilters())
}

func (c *HTTPClient) FetchEasy(ctx context.Context) ([]Challenge, error) {
	return c.Fetch(ctx, EasyOnly())
}

// Fetch returns the challenges on the page selected by settings, in response
// order. Failures are *FetchError values of kind KindTransport or KindParse;
// a malformed element fails the whole call.
//
// Settings that break offset >= 0 or limit > 0 are rejected with
// ErrInvalidSettings before any request is sent. That error is a precondition
// failure, not a *FetchError; values from the presets and NewQuerySettings
// never produce it.
func (c *HTTPClient) Fetch(ctx context.Context, settings QuerySettings) ([]Challenge, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	endpoint := c.ChallengesURL(settings)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, transportError("create hackerrank request", endpoint, err)
	}
	req.Header.Set(kHeaderAccept, kContentTypeApplicationJSON)
	req.Header.Set(kHeaderUserAgent, c.userAgent())

	log := c.Logger.With(zap.String("url", endpoint))
	log.Debug("fetching challenges")
	start := time.Now()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Debug("hackerrank request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, transportError("send hackerrank request", endpoint, err)
	}
	defer resp.Body.Close()

	challenges, err := decodeChallenges(resp)
	if err != nil {
		log.Debug("hackerrank response rejected",
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, parseError(endpoint, err)
	}

	log.Debug("fetched challenges",
		zap.Int("status", resp.StatusCode),
		zap.Int("count", len(challenges)),
		zap.Duration("duration", time.Since(start)),
	)
	return challenges, nil
}

// ChallengesURL is the full request URL Fetch would use for settings.
func (c *HTTPClient) ChallengesURL(settings QuerySettings) string {
	return normalizedBaseURL(c.BaseURL) + kChallengesPath + "?" + settings.RenderQuery()
}

func (c *HTTPClient) userAgent() string {
	if ua := strings.TrimSpace(c.UserAgent); ua != "" {
		return ua
	}
	return kDefaultUserAgent
}

// challengesResponse uses pointers so a missing "models" key or "slug" field
// can be told apart from an empty one.
type challengesResponse struct {
	Models *[]challengeModel `json:"models"`
}

type challengeModel struct {
	Slug *string `json:"slug"`
}

func decodeChallenges(resp *http.Response) ([]Challenge, error) {
	contentType := resp.Header.Get(kHeaderContentType)
	if strings.Contains(strings.ToLower(contentType), kContentTypeTextHTML) {
		// Usually a bot check page rather than the API.
		return nil, fmt.Errorf("unexpected html response (status %d); hackerrank may be blocking requests", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, kMaxErrorBodyBytes))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}

	var body challengesResponse
	dec := json.NewDecoder(io.LimitReader(resp.Body, kMaxResponseBytes))
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: unexpected data after top-level value")
	}
	if body.Models == nil {
		return nil, fmt.Errorf("missing %q array", "models")
	}

	out := make([]Challenge, 0, len(*body.Models))
	for i, m := range *body.Models {
		if m.Slug == nil || strings.TrimSpace(*m.Slug) == "" {
			return nil, fmt.Errorf("models[%d]: missing slug", i)
		}
		out = append(out, Challenge{Slug: *m.Slug})
	}
	return out, nil
}

func normalizedBaseURL(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return kDefaultBaseURL
	}
	return base
}
