package paygatemock

import "context"

// Client is a function-backed mock that satisfies paygate.Client.
type Client struct {
	RequestReferenceFn func(ctx context.Context, paymentID string, amount float64) (string, error)
}

func (m *Client) RequestReference(ctx context.Context, paymentID string, amount float64) (string, error) {
	if m.RequestReferenceFn != nil {
		return m.RequestReferenceFn(ctx, paymentID, amount)
	}
	return "REF-" + paymentID, nil
}
