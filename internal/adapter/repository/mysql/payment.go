package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	paymentDomain "rentflow-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

// CreateIfAbsent relies on ux_payment_intents_application_id: the insert is a
// single conditional statement, so N concurrent callers race at the database
// and exactly one wins. Losers get the winner's row back.
func (r *PaymentRepository) CreateIfAbsent(ctx context.Context, p *paymentDomain.PaymentIntent) (*paymentDomain.PaymentIntent, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(p)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := r.GetByApplicationID(ctx, p.ApplicationID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return p, true, nil
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.PaymentIntent, error) {
	var out paymentDomain.PaymentIntent
	res := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&out)
	return &out, res.Error
}

// GetByPaymentIDForUpdate takes a row lock; only the gateway confirmation
// path uses it, inside a unit-of-work transaction.
func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paymentDomain.PaymentIntent, error) {
	var out paymentDomain.PaymentIntent
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_id = ?", paymentID).
		First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) GetByApplicationID(ctx context.Context, applicationID string) (*paymentDomain.PaymentIntent, error) {
	var out paymentDomain.PaymentIntent
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.PaymentIntent) error {
	return r.db.WithContext(ctx).Save(p).Error
}
