// Package ledger issues read-only queries against a node's HTTP API.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hance08/qwallet/internal/metrics"
	"github.com/hance08/qwallet/internal/model"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	breakerAccount = "account"
	breakerStatus  = "status"
)

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	metrics    *metrics.Collector
	logger     *zap.Logger

	breakerSettings BreakerSettings
	mu              sync.Mutex
	breakers        map[string]*gobreaker.CircuitBreaker
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithBreakerSettings(s BreakerSettings) Option {
	return func(c *Client) { c.breakerSettings = s }
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid node url '%s': %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid node url '%s': scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:         u,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		logger:          zap.NewNop(),
		breakerSettings: DefaultBreakerSettings(),
		breakers:        make(map[string]*gobreaker.CircuitBreaker),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("ledger")

	return c, nil
}

// SearchConfirmed lists the confirmed transactions of a category that involve
// address, newest first.
func (c *Client) SearchConfirmed(ctx context.Context, category model.Category, address string) ([]model.Transaction, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	q := url.Values{}
	q["txType"] = category.TxTypes()
	q.Set("address", address)
	q.Set("confirmationStatus", "CONFIRMED")
	q.Set("limit", "0")
	q.Set("reverse", "true")

	var txs []model.Transaction
	if err := c.get(ctx, string(category), "search", "/transactions/search", q, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// SearchPending lists the unconfirmed transactions of a category created by
// address.
func (c *Client) SearchPending(ctx context.Context, category model.Category, address string) ([]model.Transaction, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	q := url.Values{}
	q["txType"] = category.TxTypes()
	q.Set("creator", address)
	q.Set("limit", "0")
	q.Set("reverse", "true")

	var txs []model.Transaction
	if err := c.get(ctx, string(category), "unconfirmed", "/transactions/unconfirmed", q, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	if address == "" {
		return decimal.Zero, ErrEmptyAddress
	}

	var balance decimal.Decimal
	path := "/addresses/balance/" + url.PathEscape(address)
	if err := c.get(ctx, breakerAccount, "balance", path, nil, &balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// ChainHeight reads the height of the node's chain tip.
func (c *Client) ChainHeight(ctx context.Context) (int64, error) {
	var status struct {
		Height int64 `json:"height"`
	}
	if err := c.get(ctx, breakerStatus, "status", "/admin/status", nil, &status); err != nil {
		return 0, err
	}
	return status.Height, nil
}

// AddressExists reports whether the node knows value as an account address.
func (c *Client) AddressExists(ctx context.Context, value string) (bool, error) {
	return c.exists(ctx, "address_lookup", "/addresses/"+url.PathEscape(value))
}

// NameExists reports whether value is a registered name.
func (c *Client) NameExists(ctx context.Context, value string) (bool, error) {
	return c.exists(ctx, "name_lookup", "/names/"+url.PathEscape(value))
}

// AccountNames lists the names registered to address.
func (c *Client) AccountNames(ctx context.Context, address string) ([]string, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	var entries []struct {
		Name string `json:"name"`
	}
	path := "/names/address/" + url.PathEscape(address)
	if err := c.get(ctx, breakerAccount, "names", path, nil, &entries); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

func (c *Client) exists(ctx context.Context, endpoint, path string) (bool, error) {
	var found bool
	err := c.execute(breakerAccount, endpoint, func() error {
		resp, err := c.do(ctx, path, nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		var body struct {
			Error json.RawMessage `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode response: %w", err)
		}
		found = resp.StatusCode < http.StatusBadRequest && len(body.Error) == 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: GET %s: %w", ErrQueryFailed, path, err)
	}
	return found, nil
}

func (c *Client) get(ctx context.Context, breaker, endpoint, path string, q url.Values, out any) error {
	err := c.execute(breaker, endpoint, func() error {
		resp, err := c.do(ctx, path, q)
		if err != nil {
			return err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
	if err != nil {
		c.logger.Debug("query failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: GET %s: %w", ErrQueryFailed, path, err)
	}
	return nil
}

func (c *Client) execute(breaker, endpoint string, fn func() error) error {
	start := time.Now()
	_, err := c.breaker(breaker).Execute(func() (interface{}, error) {
		return nil, fn()
	})
	c.metrics.ObserveLedger(endpoint, start, err)
	return err
}

func (c *Client) do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	target := c.baseURL.String() + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) breaker(name string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	cb, ok := c.breakers[name]
	if !ok {
		cb = newBreaker("ledger-"+strings.ToLower(name), c.breakerSettings, c.logger)
		c.breakers[name] = cb
	}
	return cb
}
