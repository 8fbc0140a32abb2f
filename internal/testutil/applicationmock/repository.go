package applicationmock

import (
	"context"

	domain "rentflow-backend/internal/domain/application"
)

// Repo is a function-backed mock that satisfies application.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Application, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}
