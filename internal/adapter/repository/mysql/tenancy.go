package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	tenancyDomain "rentflow-backend/internal/domain/tenancy"
)

type TenancyRepository struct{ db *gorm.DB }

func NewTenancyRepository(db *gorm.DB) *TenancyRepository { return &TenancyRepository{db: db} }

// CreateIfAbsent is guarded by ux_tenancies_agreement_id.
func (r *TenancyRepository) CreateIfAbsent(ctx context.Context, t *tenancyDomain.Tenancy) (*tenancyDomain.Tenancy, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(t)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := r.GetByAgreementID(ctx, t.AgreementID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return t, true, nil
}

func (r *TenancyRepository) GetByTenancyID(ctx context.Context, tenancyID string) (*tenancyDomain.Tenancy, error) {
	var out tenancyDomain.Tenancy
	res := r.db.WithContext(ctx).
		Where("tenancy_id = ?", tenancyID).
		First(&out)
	return &out, res.Error
}

func (r *TenancyRepository) GetByAgreementID(ctx context.Context, agreementID string) (*tenancyDomain.Tenancy, error) {
	var out tenancyDomain.Tenancy
	res := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		First(&out)
	return &out, res.Error
}
