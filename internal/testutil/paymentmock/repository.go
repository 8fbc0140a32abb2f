package paymentmock

import (
	"context"

	domain "rentflow-backend/internal/domain/payment"
)

// Repo is a function-backed mock that satisfies payment.Repository.
// Only the methods a test fills in are live; the rest return context.Canceled.
type Repo struct {
	CreateIfAbsentFn          func(ctx context.Context, p *domain.PaymentIntent) (*domain.PaymentIntent, bool, error)
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.PaymentIntent, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.PaymentIntent, error)
	GetByApplicationIDFn      func(ctx context.Context, applicationID string) (*domain.PaymentIntent, error)
	SaveFn                    func(ctx context.Context, p *domain.PaymentIntent) error
}

func (m *Repo) CreateIfAbsent(ctx context.Context, p *domain.PaymentIntent) (*domain.PaymentIntent, bool, error) {
	if m.CreateIfAbsentFn != nil {
		return m.CreateIfAbsentFn(ctx, p)
	}
	return nil, false, context.Canceled
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.PaymentIntent, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.PaymentIntent, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.PaymentIntent, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.PaymentIntent) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
