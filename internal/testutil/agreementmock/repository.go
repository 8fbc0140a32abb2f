package agreementmock

import (
	"context"

	domain "rentflow-backend/internal/domain/agreement"
)

// Repo is a function-backed mock that satisfies agreement.Repository.
type Repo struct {
	CreateIfAbsentFn            func(ctx context.Context, a *domain.Agreement) (*domain.Agreement, bool, error)
	GetByAgreementIDFn          func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	GetByAgreementIDForUpdateFn func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	GetByApplicationIDFn        func(ctx context.Context, applicationID string) (*domain.Agreement, error)
	SaveFn                      func(ctx context.Context, a *domain.Agreement) error
}

func (m *Repo) CreateIfAbsent(ctx context.Context, a *domain.Agreement) (*domain.Agreement, bool, error) {
	if m.CreateIfAbsentFn != nil {
		return m.CreateIfAbsentFn(ctx, a)
	}
	return nil, false, context.Canceled
}

func (m *Repo) GetByAgreementID(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDFn != nil {
		return m.GetByAgreementIDFn(ctx, agreementID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDForUpdateFn != nil {
		return m.GetByAgreementIDForUpdateFn(ctx, agreementID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Agreement, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Agreement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
