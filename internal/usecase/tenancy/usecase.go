package tenancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	agreementDomain "rentflow-backend/internal/domain/agreement"
	applicationDomain "rentflow-backend/internal/domain/application"
	"rentflow-backend/internal/domain/fault"
	tenancyDomain "rentflow-backend/internal/domain/tenancy"
	"rentflow-backend/internal/notify"
	"rentflow-backend/pkg/id"
)

type Usecase struct {
	apps       applicationDomain.Repository
	agreements agreementDomain.Repository
	tenancies  tenancyDomain.Repository
	notifier   notify.Notifier
}

func NewUsecase(apps applicationDomain.Repository, agreements agreementDomain.Repository, tenancies tenancyDomain.Repository, n notify.Notifier) *Usecase {
	return &Usecase{apps: apps, agreements: agreements, tenancies: tenancies, notifier: n}
}

type TenancyDTO struct {
	TenancyID   string    `json:"tenancy_id"`
	AgreementID string    `json:"agreement_id"`
	PropertyID  string    `json:"property_id"`
	UnitID      string    `json:"unit_id"`
	TenantID    string    `json:"tenant_id"`
	LandlordID  string    `json:"landlord_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	MonthlyRent float64   `json:"monthly_rent"`
	Status      string    `json:"status"`
}

// Activate promotes a fully-executed agreement into an active tenancy. It is
// invoked by the signature coordinator, never by a direct external request,
// and the conditional insert on agreement_id makes it idempotent.
func (u *Usecase) Activate(ctx context.Context, agreementID string) (*TenancyDTO, error) {
	ag, err := u.agreements.GetByAgreementID(ctx, agreementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("agreement %s not found", agreementID)
		}
		return nil, fault.Transient("load agreement", err)
	}
	if ag.Status != agreementDomain.StatusActive {
		return nil, fault.Precondition("agreement %s is %s, not active", agreementID, ag.Status)
	}

	// property id lives on the application, not the agreement
	app, err := u.apps.GetByApplicationID(ctx, ag.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("application %s not found", ag.ApplicationID)
		}
		return nil, fault.Transient("load application", err)
	}

	t := &tenancyDomain.Tenancy{
		TenancyID:   id.NewID32(),
		AgreementID: ag.AgreementID,
		PropertyID:  app.PropertyID,
		UnitID:      ag.UnitID,
		TenantID:    ag.TenantID,
		LandlordID:  ag.LandlordID,
		StartDate:   ag.StartDate,
		EndDate:     ag.EndDate,
		MonthlyRent: ag.RentAmount,
		Status:      tenancyDomain.StatusActive,
	}
	got, created, err := u.tenancies.CreateIfAbsent(ctx, t)
	if err != nil {
		return nil, fault.Transient("create tenancy", err)
	}

	if created {
		msg := fmt.Sprintf("Tenancy for unit %s runs %s to %s.",
			got.UnitID, got.StartDate.Format("2006-01-02"), got.EndDate.Format("2006-01-02"))
		_ = u.notifier.Emit(ctx, got.TenantID, "Tenancy active", msg, "tenancy-activated", "/tenancies/"+got.TenancyID)
		_ = u.notifier.Emit(ctx, got.LandlordID, "Tenancy active", msg, "tenancy-activated", "/tenancies/"+got.TenancyID)
	}
	return toDTO(got), nil
}

func toDTO(t *tenancyDomain.Tenancy) *TenancyDTO {
	return &TenancyDTO{
		TenancyID:   t.TenancyID,
		AgreementID: t.AgreementID,
		PropertyID:  t.PropertyID,
		UnitID:      t.UnitID,
		TenantID:    t.TenantID,
		LandlordID:  t.LandlordID,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		MonthlyRent: t.MonthlyRent,
		Status:      string(t.Status),
	}
}
