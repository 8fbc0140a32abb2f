package agreement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	agreementDomain "rentflow-backend/internal/domain/agreement"
	applicationDomain "rentflow-backend/internal/domain/application"
	"rentflow-backend/internal/domain/fault"
	paymentDomain "rentflow-backend/internal/domain/payment"
	"rentflow-backend/internal/domain/uow"
	"rentflow-backend/internal/notify"
	tenancyUsecase "rentflow-backend/internal/usecase/tenancy"
	"rentflow-backend/pkg/id"
)

// leaseTerm is the fixed lease length from the move-in date.
const leaseTerm = 1 // years

type Usecase struct {
	apps       applicationDomain.Repository
	payments   paymentDomain.Repository
	agreements agreementDomain.Repository
	uow        uow.UnitOfWork
	activator  *tenancyUsecase.Usecase
	notifier   notify.Notifier
}

func NewUsecase(
	apps applicationDomain.Repository,
	payments paymentDomain.Repository,
	agreements agreementDomain.Repository,
	tx uow.UnitOfWork,
	activator *tenancyUsecase.Usecase,
	n notify.Notifier,
) *Usecase {
	return &Usecase{apps: apps, payments: payments, agreements: agreements, uow: tx, activator: activator, notifier: n}
}

type AgreementDTO struct {
	AgreementID      string     `json:"agreement_id"`
	ApplicationID    string     `json:"application_id"`
	PaymentID        string     `json:"payment_id"`
	TenantID         string     `json:"tenant_id"`
	LandlordID       string     `json:"landlord_id"`
	UnitID           string     `json:"unit_id"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	RentAmount       float64    `json:"rent_amount"`
	DepositAmount    float64    `json:"deposit_amount"`
	Clauses          []string   `json:"clauses"`
	Status           string     `json:"status"`
	TenantSigned     bool       `json:"tenant_signed"`
	TenantSignedAt   *time.Time `json:"tenant_signed_at,omitempty"`
	LandlordSigned   bool       `json:"landlord_signed"`
	LandlordSignedAt *time.Time `json:"landlord_signed_at,omitempty"`
}

// defaultClauses is the standard clause set used when no custom terms were
// supplied upstream.
func defaultClauses() string {
	b, _ := json.Marshal([]string{
		"Rent is due on the first day of each month.",
		"The deposit is refundable within 30 days of move-out, less documented damages.",
		"The tenant must not sublease the unit without written landlord consent.",
		"Either party must give 60 days written notice before non-renewal.",
	})
	return string(b)
}

// Generate derives the lease agreement from a confirmed payment. Concurrent
// or repeated calls for the same payment collapse onto one row via the
// unique application_id constraint.
func (u *Usecase) Generate(ctx context.Context, paymentID string) (*AgreementDTO, error) {
	p, err := u.payments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("payment %s not found", paymentID)
		}
		return nil, fault.Transient("load payment", err)
	}
	if p.Status != paymentDomain.StatusPaid {
		return nil, fault.Precondition("payment %s not confirmed", paymentID)
	}

	app, err := u.apps.GetByApplicationID(ctx, p.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("application %s not found", p.ApplicationID)
		}
		return nil, fault.Transient("load application", err)
	}

	start := app.MoveInDate
	ag := &agreementDomain.Agreement{
		AgreementID:    id.NewID32(),
		ApplicationID:  p.ApplicationID,
		PaymentID:      p.PaymentID,
		TenantID:       p.TenantID,
		LandlordID:     p.LandlordID,
		UnitID:         p.UnitID,
		StartDate:      start,
		EndDate:        start.AddDate(leaseTerm, 0, 0),
		RentAmount:     app.RentAmount,
		DepositAmount:  app.DepositAmount,
		Clauses:        defaultClauses(),
		Status:         agreementDomain.StatusGenerated,
		StateUpdatedAt: time.Now().UTC(),
	}
	got, created, err := u.agreements.CreateIfAbsent(ctx, ag)
	if err != nil {
		return nil, fault.Transient("create agreement", err)
	}

	if created {
		msg := fmt.Sprintf("Lease agreement for unit %s is ready for signature.", got.UnitID)
		_ = u.notifier.Emit(ctx, got.TenantID, "Agreement ready", msg, "agreement-ready", "/agreements/"+got.AgreementID)
		_ = u.notifier.Emit(ctx, got.LandlordID, "Agreement ready", msg, "agreement-ready", "/agreements/"+got.AgreementID)
	}
	return toDTO(got), nil
}

func (u *Usecase) Get(ctx context.Context, agreementID string) (*AgreementDTO, error) {
	a, err := u.agreements.GetByAgreementID(ctx, agreementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("agreement %s not found", agreementID)
		}
		return nil, fault.Transient("load agreement", err)
	}
	return toDTO(a), nil
}

// Sign records one party's signature. Either party may sign first; the flag
// update and the both-signed check run under the agreement row lock, so the
// transition to active fires exactly once no matter how the two calls
// interleave. Re-signing an already-signed role is a no-op.
func (u *Usecase) Sign(ctx context.Context, agreementID, userID string, role agreementDomain.Role) (*AgreementDTO, error) {
	var out *agreementDomain.Agreement
	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *agreementDomain.Agreement) error {
		now := time.Now().UTC()
		switch role {
		case agreementDomain.RoleTenant:
			if userID != a.TenantID {
				return fault.Validation("signer is not the agreement tenant")
			}
			if a.TenantSigned {
				out = a
				return nil
			}
			a.TenantSigned = true
			a.TenantSignedAt = &now
		case agreementDomain.RoleLandlord:
			if userID != a.LandlordID {
				return fault.Validation("signer is not the agreement landlord")
			}
			if a.LandlordSigned {
				out = a
				return nil
			}
			a.LandlordSigned = true
			a.LandlordSignedAt = &now
		default:
			return fault.Validation("role must be tenant or landlord")
		}

		if a.FullyExecuted() && a.Status != agreementDomain.StatusActive {
			a.Status = agreementDomain.StatusActive
			a.StateUpdatedAt = now
		}
		if err := r.Agreements.Save(ctx, a); err != nil {
			return fault.Transient("save signature", err)
		}
		out = a
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("agreement %s not found", agreementID)
		}
		if fault.KindOf(err) == fault.KindUnknown {
			return nil, fault.Transient("sign agreement", err)
		}
		return nil, err
	}

	// Activation is a separate retriable step: any sign call that observes an
	// active agreement re-invokes the idempotent activator, so a failure here
	// is healed by the next retry.
	if out.Status == agreementDomain.StatusActive {
		if _, err := u.activator.Activate(ctx, out.AgreementID); err != nil {
			return nil, err
		}
	}
	return toDTO(out), nil
}

func toDTO(a *agreementDomain.Agreement) *AgreementDTO {
	var clauses []string
	_ = json.Unmarshal([]byte(a.Clauses), &clauses)
	return &AgreementDTO{
		AgreementID:      a.AgreementID,
		ApplicationID:    a.ApplicationID,
		PaymentID:        a.PaymentID,
		TenantID:         a.TenantID,
		LandlordID:       a.LandlordID,
		UnitID:           a.UnitID,
		StartDate:        a.StartDate,
		EndDate:          a.EndDate,
		RentAmount:       a.RentAmount,
		DepositAmount:    a.DepositAmount,
		Clauses:          clauses,
		Status:           string(a.Status),
		TenantSigned:     a.TenantSigned,
		TenantSignedAt:   a.TenantSignedAt,
		LandlordSigned:   a.LandlordSigned,
		LandlordSignedAt: a.LandlordSignedAt,
	}
}
