package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rentflow-backend/internal/domain/fault"
)

const requestTimeout = 10 * time.Second

// Client requests a payment reference from the external gateway. The gateway
// later reports settlement through its push channel, never through us.
type Client interface {
	RequestReference(ctx context.Context, paymentID string, amount float64) (string, error)
}

type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type referenceRequest struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
}

type referenceResponse struct {
	Reference string `json:"reference"`
	PaymentID string `json:"payment_id"`
}

type gatewayError struct {
	Error string `json:"error"`
}

// RequestReference does a single attempt; a transient fault tells the caller
// the whole operation is safe to retry.
func (c *HTTPClient) RequestReference(ctx context.Context, paymentID string, amount float64) (string, error) {
	body, err := json.Marshal(referenceRequest{PaymentID: paymentID, Amount: amount})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/references", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fault.Transient("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fault.Transient("payment gateway read", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var ge gatewayError
		_ = json.Unmarshal(raw, &ge)
		if ge.Error != "" {
			return "", fault.Transient("payment gateway", fmt.Errorf("status %d: %s", resp.StatusCode, ge.Error))
		}
		return "", fault.Transient("payment gateway", fmt.Errorf("status %d", resp.StatusCode))
	}

	var out referenceResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fault.Transient("payment gateway decode", err)
	}
	if out.Reference == "" {
		return "", fault.Transient("payment gateway", fmt.Errorf("empty reference for payment %s", paymentID))
	}
	return out.Reference, nil
}
