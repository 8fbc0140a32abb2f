package tenancy

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	agreementDomain "rentflow-backend/internal/domain/agreement"
	applicationDomain "rentflow-backend/internal/domain/application"
	"rentflow-backend/internal/domain/fault"
	tenancyDomain "rentflow-backend/internal/domain/tenancy"
	"rentflow-backend/internal/testutil/agreementmock"
	"rentflow-backend/internal/testutil/applicationmock"
	"rentflow-backend/internal/testutil/notifymock"
	"rentflow-backend/internal/testutil/tenancymock"
)

const (
	appID      = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	agrID      = "cccccccccccccccccccccccccccccccc"
	tenantID   = "11111111111111111111111111111111"
	landlordID = "22222222222222222222222222222222"
)

func activeAgreement() *agreementDomain.Agreement {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &agreementDomain.Agreement{
		AgreementID:    agrID,
		ApplicationID:  appID,
		TenantID:       tenantID,
		LandlordID:     landlordID,
		UnitID:         "33333333333333333333333333333333",
		StartDate:      start,
		EndDate:        start.AddDate(1, 0, 0),
		RentAmount:     1200,
		DepositAmount:  1200,
		Status:         agreementDomain.StatusActive,
		TenantSigned:   true,
		LandlordSigned: true,
	}
}

func agreementsReturning(a *agreementDomain.Agreement) *agreementmock.Repo {
	return &agreementmock.Repo{
		GetByAgreementIDFn: func(ctx context.Context, id string) (*agreementDomain.Agreement, error) {
			if a == nil {
				return nil, gorm.ErrRecordNotFound
			}
			return a, nil
		},
	}
}

func appsReturningProperty() *applicationmock.Repo {
	return &applicationmock.Repo{
		GetByApplicationIDFn: func(ctx context.Context, id string) (*applicationDomain.Application, error) {
			return &applicationDomain.Application{
				ApplicationID: appID,
				PropertyID:    "44444444444444444444444444444444",
				Status:        applicationDomain.StatusApproved,
			}, nil
		},
	}
}

func TestActivate_CopiesAgreementIntoTenancy(t *testing.T) {
	tenancies := &tenancymock.Repo{
		CreateIfAbsentFn: func(ctx context.Context, tn *tenancyDomain.Tenancy) (*tenancyDomain.Tenancy, bool, error) {
			return tn, true, nil
		},
	}
	n := &notifymock.Notifier{}
	uc := NewUsecase(appsReturningProperty(), agreementsReturning(activeAgreement()), tenancies, n)

	dto, err := uc.Activate(context.Background(), agrID)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if dto.MonthlyRent != 1200 {
		t.Fatalf("monthly rent = %v, want the agreement's rent amount", dto.MonthlyRent)
	}
	if dto.PropertyID != "44444444444444444444444444444444" {
		t.Fatalf("property id not copied from application: %+v", dto)
	}
	if dto.Status != "active" || dto.AgreementID != agrID {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if len(n.ByType("tenancy-activated")) != 2 {
		t.Fatalf("both parties must be notified, got %+v", n.Events)
	}
}

func TestActivate_Idempotent(t *testing.T) {
	existing := &tenancyDomain.Tenancy{
		TenancyID:   "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
		AgreementID: agrID,
		MonthlyRent: 1200,
		Status:      tenancyDomain.StatusActive,
	}
	tenancies := &tenancymock.Repo{
		CreateIfAbsentFn: func(ctx context.Context, tn *tenancyDomain.Tenancy) (*tenancyDomain.Tenancy, bool, error) {
			return existing, false, nil
		},
	}
	n := &notifymock.Notifier{}
	uc := NewUsecase(appsReturningProperty(), agreementsReturning(activeAgreement()), tenancies, n)

	dto, err := uc.Activate(context.Background(), agrID)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if dto.TenancyID != existing.TenancyID {
		t.Fatalf("expected existing tenancy, got %s", dto.TenancyID)
	}
	if len(n.Events) != 0 {
		t.Fatalf("no notification on idempotent replay, got %+v", n.Events)
	}
}

func TestActivate_NotFullyExecuted(t *testing.T) {
	a := activeAgreement()
	a.Status = agreementDomain.StatusGenerated
	a.LandlordSigned = false
	uc := NewUsecase(appsReturningProperty(), agreementsReturning(a), &tenancymock.Repo{}, &notifymock.Notifier{})

	_, err := uc.Activate(context.Background(), agrID)
	if fault.KindOf(err) != fault.KindPrecondition {
		t.Fatalf("want precondition, got %v", err)
	}
}

func TestActivate_UnknownAgreement(t *testing.T) {
	uc := NewUsecase(appsReturningProperty(), agreementsReturning(nil), &tenancymock.Repo{}, &notifymock.Notifier{})

	_, err := uc.Activate(context.Background(), agrID)
	if fault.KindOf(err) != fault.KindNotFound {
		t.Fatalf("want not found, got %v", err)
	}
}
