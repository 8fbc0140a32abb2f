package mysql

import (
	"context"
	"testing"
	"time"

	tenancyDomain "rentflow-backend/internal/domain/tenancy"
	"rentflow-backend/pkg/id"
)

func makeTenancy(tenancyID, agreementID string) *tenancyDomain.Tenancy {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &tenancyDomain.Tenancy{
		TenancyID:   tenancyID,
		AgreementID: agreementID,
		PropertyID:  "44444444444444444444444444444444",
		UnitID:      "33333333333333333333333333333333",
		TenantID:    "11111111111111111111111111111111",
		LandlordID:  "22222222222222222222222222222222",
		StartDate:   start,
		EndDate:     start.AddDate(1, 0, 0),
		MonthlyRent: 1200,
		Status:      tenancyDomain.StatusActive,
	}
}

func TestTenancyCreateIfAbsent_OnePerAgreement(t *testing.T) {
	db := openTestDB(t)
	repo := NewTenancyRepository(db)
	ctx := context.Background()

	agrID := id.NewID32()
	first := makeTenancy(id.NewID32(), agrID)
	if _, created, err := repo.CreateIfAbsent(ctx, first); err != nil || !created {
		t.Fatalf("seed: created=%v err=%v", created, err)
	}

	dup := makeTenancy(id.NewID32(), agrID)
	got, created, err := repo.CreateIfAbsent(ctx, dup)
	if err != nil {
		t.Fatalf("CreateIfAbsent dup: %v", err)
	}
	if created || got.TenancyID != first.TenancyID {
		t.Errorf("dup resolved to created=%v id=%s, want existing %s", created, got.TenancyID, first.TenancyID)
	}

	var n int64
	if err := db.Model(&tenancySQLite{}).Where("agreement_id = ?", agrID).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("row count = %d, want 1", n)
	}
}

func TestTenancyGetByAgreementID(t *testing.T) {
	db := openTestDB(t)
	repo := NewTenancyRepository(db)
	ctx := context.Background()

	agrID := id.NewID32()
	seed := makeTenancy(id.NewID32(), agrID)
	if _, _, err := repo.CreateIfAbsent(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := repo.GetByAgreementID(ctx, agrID)
	if err != nil {
		t.Fatalf("GetByAgreementID: %v", err)
	}
	if got.TenancyID != seed.TenancyID || got.MonthlyRent != 1200 {
		t.Errorf("unexpected tenancy: %+v", got)
	}
}
