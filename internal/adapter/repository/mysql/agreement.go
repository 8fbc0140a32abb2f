package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	agreementDomain "rentflow-backend/internal/domain/agreement"
)

type AgreementRepository struct{ db *gorm.DB }

func NewAgreementRepository(db *gorm.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

// CreateIfAbsent is guarded by ux_agreements_application_id; two racing
// generation attempts resolve to the same row.
func (r *AgreementRepository) CreateIfAbsent(ctx context.Context, a *agreementDomain.Agreement) (*agreementDomain.Agreement, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(a)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := r.GetByApplicationID(ctx, a.ApplicationID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return a, true, nil
}

func (r *AgreementRepository) GetByAgreementID(ctx context.Context, agreementID string) (*agreementDomain.Agreement, error) {
	var out agreementDomain.Agreement
	res := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		First(&out)
	return &out, res.Error
}

// GetByAgreementIDForUpdate locks the row so the sign-and-check sequence is a
// single atomic read-modify-write.
func (r *AgreementRepository) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*agreementDomain.Agreement, error) {
	var out agreementDomain.Agreement
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("agreement_id = ?", agreementID).
		First(&out)
	return &out, res.Error
}

func (r *AgreementRepository) GetByApplicationID(ctx context.Context, applicationID string) (*agreementDomain.Agreement, error) {
	var out agreementDomain.Agreement
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		First(&out)
	return &out, res.Error
}

func (r *AgreementRepository) Save(ctx context.Context, a *agreementDomain.Agreement) error {
	return r.db.WithContext(ctx).Save(a).Error
}
