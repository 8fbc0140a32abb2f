package agreement

import "context"

type Repository interface {
	// CreateIfAbsent inserts a unless an agreement already exists for its
	// application_id; returns the canonical row and whether this call created it.
	CreateIfAbsent(ctx context.Context, a *Agreement) (*Agreement, bool, error)

	GetByAgreementID(ctx context.Context, agreementID string) (*Agreement, error)
	GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*Agreement, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Agreement, error)
	Save(ctx context.Context, a *Agreement) error
}
