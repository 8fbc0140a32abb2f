package tenancymock

import (
	"context"

	domain "rentflow-backend/internal/domain/tenancy"
)

// Repo is a function-backed mock that satisfies tenancy.Repository.
type Repo struct {
	CreateIfAbsentFn   func(ctx context.Context, t *domain.Tenancy) (*domain.Tenancy, bool, error)
	GetByTenancyIDFn   func(ctx context.Context, tenancyID string) (*domain.Tenancy, error)
	GetByAgreementIDFn func(ctx context.Context, agreementID string) (*domain.Tenancy, error)
}

func (m *Repo) CreateIfAbsent(ctx context.Context, t *domain.Tenancy) (*domain.Tenancy, bool, error) {
	if m.CreateIfAbsentFn != nil {
		return m.CreateIfAbsentFn(ctx, t)
	}
	return nil, false, context.Canceled
}

func (m *Repo) GetByTenancyID(ctx context.Context, tenancyID string) (*domain.Tenancy, error) {
	if m.GetByTenancyIDFn != nil {
		return m.GetByTenancyIDFn(ctx, tenancyID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByAgreementID(ctx context.Context, agreementID string) (*domain.Tenancy, error) {
	if m.GetByAgreementIDFn != nil {
		return m.GetByAgreementIDFn(ctx, agreementID)
	}
	return nil, context.Canceled
}
