package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shopsync/backend/internal/domain/sync"
)

const (
	// TimeLayout is the offset format the Admin API expects for date filters.
	TimeLayout = "2006-01-02T15:04:05-00:00"

	// DefaultPageSize is the maximum page size the orders endpoint allows.
	DefaultPageSize = 250

	// maxResponseSize limits the response body size to prevent memory exhaustion.
	maxResponseSize = 20 * 1024 * 1024

	// requestsPerSecond is the fixed REST rate ceiling per store.
	requestsPerSecond = 2
)

// Client fetches orders from the REST Admin API for one store. It follows
// Link-header cursor pagination and spaces requests to stay under the
// platform rate limit. A Client is built per invocation from credentials.
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
	pageSize   int
}

// ClientOption is a functional option for Client configuration.
type ClientOption func(*Client)

// WithPageSize overrides the page size requested from the platform.
func WithPageSize(size int) ClientOption {
	return func(c *Client) {
		if size > 0 && size <= DefaultPageSize {
			c.pageSize = size
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit overrides the requests-per-second ceiling.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// NewClient creates a Client for the given store credentials.
func NewClient(config *Config, log *zap.Logger, opts ...ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		log:      log.Named("shopify"),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchInterval retrieves every order processed inside the interval,
// oldest page first. The interval bounds are sent only on the first request;
// follow-up requests carry the continuation token alone, matching the API's
// cursor semantics. Any non-2xx response or transport failure aborts with a
// FetchError; retrying is the caller's responsibility.
func (c *Client) FetchInterval(ctx context.Context, interval sync.Interval) ([]Order, error) {
	params := url.Values{}
	params.Set("processed_at_min", interval.Start.Format(TimeLayout))
	params.Set("processed_at_max", interval.End.Format(TimeLayout))
	params.Set("limit", strconv.Itoa(c.pageSize))
	params.Set("status", "any")

	var orders []Order
	for {
		page, link, err := c.fetchPage(ctx, params)
		if err != nil {
			return nil, &sync.FetchError{Interval: interval, Err: err}
		}
		if len(page) == 0 {
			break
		}
		orders = append(orders, page...)
		c.log.Info("fetched orders page",
			zap.String("interval", interval.String()),
			zap.Int("page_count", len(page)),
			zap.Int("total", len(orders)),
		)

		pageInfo := nextPageInfo(link)
		if pageInfo == "" {
			break
		}
		params = url.Values{}
		params.Set("limit", strconv.Itoa(c.pageSize))
		params.Set("page_info", pageInfo)
	}
	return orders, nil
}

// ProbeDateRange derives the overall order date bounds with two single-record
// requests: the newest order (default descending order) and the oldest.
// Returns ErrNoOrders when the store has no orders at all.
func (c *Client) ProbeDateRange(ctx context.Context) (oldest, newest time.Time, err error) {
	newestParams := url.Values{}
	newestParams.Set("limit", "1")
	newestParams.Set("status", "any")

	latest, _, err := c.fetchPage(ctx, newestParams)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(latest) == 0 {
		return time.Time{}, time.Time{}, sync.ErrNoOrders
	}

	oldestParams := url.Values{}
	oldestParams.Set("limit", "1")
	oldestParams.Set("status", "any")
	oldestParams.Set("order", "created_at asc")

	first, _, err := c.fetchPage(ctx, oldestParams)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(first) == 0 {
		return time.Time{}, time.Time{}, sync.ErrNoOrders
	}

	oldest, err = ParseTime(first[0].CreatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("shopify: oldest order date: %w", err)
	}
	newest, err = ParseTime(latest[0].CreatedAt)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("shopify: newest order date: %w", err)
	}
	return oldest, newest, nil
}

// fetchPage performs one GET against the orders endpoint and returns the
// decoded page plus the raw Link header.
func (c *Client) fetchPage(ctx context.Context, params url.Values) ([]Order, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.OrdersURL()+"?"+params.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.APIKey, c.config.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, "", fmt.Errorf("shopify: failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("shopify: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded OrdersResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, "", fmt.Errorf("shopify: failed to parse response: %w", err)
	}
	return decoded.Orders, resp.Header.Get("Link"), nil
}

// nextPageInfo extracts the page_info continuation token from a Link header,
// or returns an empty string when there is no next page.
func nextPageInfo(linkHeader string) string {
	if linkHeader == "" || !strings.Contains(linkHeader, `rel="next"`) {
		return ""
	}
	for _, link := range strings.Split(linkHeader, ",") {
		if !strings.Contains(link, `rel="next"`) {
			continue
		}
		rawURL := strings.Trim(strings.TrimSpace(strings.SplitN(link, ";", 2)[0]), "<> ")
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return ""
		}
		return parsed.Query().Get("page_info")
	}
	return ""
}

// ParseTime parses an Admin API timestamp. A trailing Z UTC marker is
// accepted alongside numeric offsets.
func ParseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("shopify: empty timestamp")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("shopify: invalid timestamp %q: %w", value, err)
	}
	return t, nil
}
