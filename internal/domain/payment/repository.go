package payment

import "context"

type Repository interface {
	// CreateIfAbsent inserts p unless an intent already exists for its
	// application_id. Returns the canonical row and whether this call
	// created it. Must be an atomic conditional insert, not check-then-insert.
	CreateIfAbsent(ctx context.Context, p *PaymentIntent) (*PaymentIntent, bool, error)

	GetByPaymentID(ctx context.Context, paymentID string) (*PaymentIntent, error)
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*PaymentIntent, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*PaymentIntent, error)
	Save(ctx context.Context, p *PaymentIntent) error
}
