package uow

import (
	"context"

	"rentflow-backend/internal/domain/agreement"
	"rentflow-backend/internal/domain/application"
	"rentflow-backend/internal/domain/payment"
	"rentflow-backend/internal/domain/tenancy"
)

type Repos struct {
	Applications application.Repository
	Payments     payment.Repository
	Agreements   agreement.Repository
	Tenancies    tenancy.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the agreement row first, then pass it in
	WithinAgreementTx(ctx context.Context, agreementID string, fn func(r Repos, a *agreement.Agreement) error) error
}
