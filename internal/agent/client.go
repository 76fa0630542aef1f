// Package agent talks to the wallet agent that holds the keys. The agent signs
// and broadcasts on our behalf; qwallet never sees key material.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/qwallet/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ActionSendCoin          = "SEND_COIN"
	ActionGetUserAccount    = "GET_USER_ACCOUNT"
	ActionIsUsingPublicNode = "IS_USING_PUBLIC_NODE"
)

var (
	ErrRejected    = errors.New("action rejected by agent")
	ErrUnavailable = errors.New("wallet agent unavailable")
)

type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, hc *http.Client, logger *zap.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 2 * time.Minute}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/action",
		httpClient: hc,
		logger:     logger.Named("agent"),
	}
}

// SendCoin asks the agent to sign and broadcast a payment. The returned
// result is opaque to qwallet.
func (c *Client) SendCoin(ctx context.Context, coin, recipient string, amount decimal.Decimal) (json.RawMessage, error) {
	return c.Do(ctx, ActionSendCoin, map[string]any{
		"coin":      coin,
		"recipient": recipient,
		"amount":    json.Number(amount.String()),
	})
}

func (c *Client) UserAccount(ctx context.Context) (model.Account, error) {
	raw, err := c.Do(ctx, ActionGetUserAccount, nil)
	if err != nil {
		return model.Account{}, err
	}

	var acc struct {
		Address   string `json:"address"`
		PublicKey string `json:"publicKey"`
	}
	if err := json.Unmarshal(raw, &acc); err != nil {
		return model.Account{}, fmt.Errorf("decode account: %w", err)
	}
	if acc.Address == "" {
		return model.Account{}, fmt.Errorf("%w: agent returned no address", ErrRejected)
	}

	return model.Account{Address: acc.Address, PublicKey: acc.PublicKey}, nil
}

func (c *Client) IsUsingPublicNode(ctx context.Context) (bool, error) {
	raw, err := c.Do(ctx, ActionIsUsingPublicNode, nil)
	if err != nil {
		return false, err
	}

	var using bool
	if err := json.Unmarshal(raw, &using); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return using, nil
}

// Do sends one action request. A response object carrying an "error" field
// is reported as ErrRejected.
func (c *Client) Do(ctx context.Context, action string, fields map[string]any) (json.RawMessage, error) {
	body := map[string]any{"action": action}
	for k, v := range fields {
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", action, err)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(zap.String("action", action), zap.String("request_id", requestID))
	log.Debug("sending action")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, action, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %w", ErrUnavailable, action, err)
	}

	if msg, ok := errorField(raw); ok {
		log.Warn("action rejected", zap.String("reason", msg))
		return nil, fmt.Errorf("%w: %s: %s", ErrRejected, action, msg)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", ErrUnavailable, action, resp.StatusCode)
	}

	return json.RawMessage(raw), nil
}

func errorField(raw []byte) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}
	v, ok := obj["error"]
	if !ok || string(v) == "null" {
		return "", false
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, true
	}
	return string(v), true
}
