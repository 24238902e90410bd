package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type ActionsConfig struct {
	// BaseURL points back at this process: the orchestrator reuses the public
	// deals/orders/payments endpoints instead of duplicating their logic.
	BaseURL string
}

// ActionsClient performs the chat orchestrator's self-calls, forwarding the
// caller's bearer token so per-user scoping keeps working.
type ActionsClient struct {
	cfg        ActionsConfig
	httpClient *http.Client
}

func NewActionsClient(cfg ActionsConfig) *ActionsClient {
	return &ActionsClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ActionResult is the decoded response envelope of an action endpoint. Data
// stays raw because the endpoints disagree on shape: deals/orders return an
// object, payments returns a bare array.
type ActionResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Field extracts one key when Data is an object. Missing keys and non-object
// payloads come back nil.
func (r *ActionResult) Field(name string) json.RawMessage {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Data, &fields); err != nil {
		return nil
	}

	return fields[name]
}

func (c *ActionsClient) get(ctx context.Context, path, authorization string, params url.Values) (*ActionResult, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build action request: %w", err)
	}
	req.Header.Set("Authorization", authorization)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("action request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read action response: %w", err)
	}

	var result ActionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode action response: %w", err)
	}

	if res.StatusCode != http.StatusOK || !result.Success {
		if result.Message != "" {
			return nil, fmt.Errorf("%s", result.Message)
		}
		return nil, fmt.Errorf("action endpoint returned status %d", res.StatusCode)
	}

	return &result, nil
}

func (c *ActionsClient) GetDeals(ctx context.Context, authorization, message string) (*ActionResult, error) {
	params := url.Values{}
	params.Set("message", message)

	return c.get(ctx, "/api/app/deals", authorization, params)
}

func (c *ActionsClient) GetOrders(ctx context.Context, authorization, message string) (*ActionResult, error) {
	params := url.Values{}
	params.Set("message", message)

	return c.get(ctx, "/api/app/orders", authorization, params)
}

func (c *ActionsClient) GetPayments(ctx context.Context, authorization string) (*ActionResult, error) {
	return c.get(ctx, "/api/app/payments", authorization, nil)
}
