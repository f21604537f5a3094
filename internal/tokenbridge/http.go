package tokenbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks to the bridge service that relays transfers to the token
// contract. Auth is a bearer key; the bridge handles recipient storage
// registration on first payout.
type HTTPClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type transferPayload struct {
	TokenID   string `json:"token_id,omitempty"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
	PoolID    int64  `json:"pool_id,omitempty"`
	Native    bool   `json:"native,omitempty"`
}

func (c *HTTPClient) Transfer(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error {
	return c.post(ctx, "/v1/transfer", transferPayload{
		TokenID: tokenID, Recipient: recipient, Amount: amount, PoolID: poolID,
	})
}

func (c *HTTPClient) TransferNative(ctx context.Context, recipient string, amount int64, poolID int64) error {
	return c.post(ctx, "/v1/transfer", transferPayload{
		Recipient: recipient, Amount: amount, PoolID: poolID, Native: true,
	})
}

func (c *HTTPClient) RegisterStorage(ctx context.Context, tokenID, owner string) error {
	return c.post(ctx, "/v1/storage-deposit", map[string]string{
		"token_id": tokenID,
		"owner":    owner,
	})
}

func (c *HTTPClient) post(ctx context.Context, path string, payload interface{}) error {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if c.BaseURL == "" {
		return fmt.Errorf("tokenbridge: BRIDGE_URL is not set")
	}
	url := strings.TrimRight(c.BaseURL, "/") + path

	bodyBytes, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("tokenbridge request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tokenbridge error: status %d body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
