package tenancy

import "context"

type Repository interface {
	// CreateIfAbsent inserts t unless a tenancy already exists for its
	// agreement_id; returns the canonical row and whether this call created it.
	CreateIfAbsent(ctx context.Context, t *Tenancy) (*Tenancy, bool, error)

	GetByTenancyID(ctx context.Context, tenancyID string) (*Tenancy, error)
	GetByAgreementID(ctx context.Context, agreementID string) (*Tenancy, error)
}
