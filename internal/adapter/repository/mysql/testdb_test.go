package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---
// The unique indexes on the parent-id columns must match production: they are
// what CreateIfAbsent races against.

type applicationSQLite struct {
	ID            uint64         `gorm:"primaryKey;column:id"`
	ApplicationID string         `gorm:"size:32;uniqueIndex:ux_applications_application_id;column:application_id"`
	TenantID      string         `gorm:"size:32;column:tenant_id"`
	LandlordID    string         `gorm:"size:32;column:landlord_id"`
	PropertyID    string         `gorm:"size:32;column:property_id"`
	UnitID        string         `gorm:"size:32;column:unit_id"`
	MoveInDate    time.Time      `gorm:"column:move_in_date"`
	RentAmount    float64        `gorm:"column:rent_amount"`
	DepositAmount float64        `gorm:"column:deposit_amount"`
	Status        string         `gorm:"type:text;column:status"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (applicationSQLite) TableName() string { return "applications" }

type paymentIntentSQLite struct {
	ID             uint64         `gorm:"primaryKey;column:id"`
	PaymentID      string         `gorm:"size:32;uniqueIndex:ux_payment_intents_payment_id;column:payment_id"`
	ApplicationID  string         `gorm:"size:32;uniqueIndex:ux_payment_intents_application_id;column:application_id"`
	TenantID       string         `gorm:"size:32;column:tenant_id"`
	LandlordID     string         `gorm:"size:32;column:landlord_id"`
	UnitID         string         `gorm:"size:32;column:unit_id"`
	Amount         float64        `gorm:"column:amount"`
	Status         string         `gorm:"type:text;column:status"`
	DueDate        time.Time      `gorm:"column:due_date"`
	PaidAt         *time.Time     `gorm:"column:paid_at"`
	TransactionID  string         `gorm:"column:transaction_id"`
	GatewayRef     string         `gorm:"column:gateway_ref"`
	StateUpdatedAt time.Time      `gorm:"column:state_updated_at"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (paymentIntentSQLite) TableName() string { return "payment_intents" }

type agreementSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	AgreementID      string         `gorm:"size:32;uniqueIndex:ux_agreements_agreement_id;column:agreement_id"`
	ApplicationID    string         `gorm:"size:32;uniqueIndex:ux_agreements_application_id;column:application_id"`
	PaymentID        string         `gorm:"size:32;column:payment_id"`
	TenantID         string         `gorm:"size:32;column:tenant_id"`
	LandlordID       string         `gorm:"size:32;column:landlord_id"`
	UnitID           string         `gorm:"size:32;column:unit_id"`
	StartDate        time.Time      `gorm:"column:start_date"`
	EndDate          time.Time      `gorm:"column:end_date"`
	RentAmount       float64        `gorm:"column:rent_amount"`
	DepositAmount    float64        `gorm:"column:deposit_amount"`
	Clauses          string         `gorm:"type:text;column:clauses"`
	Status           string         `gorm:"type:text;column:status"`
	TenantSigned     bool           `gorm:"column:tenant_signed"`
	TenantSignedAt   *time.Time     `gorm:"column:tenant_signed_at"`
	LandlordSigned   bool           `gorm:"column:landlord_signed"`
	LandlordSignedAt *time.Time     `gorm:"column:landlord_signed_at"`
	StateUpdatedAt   time.Time      `gorm:"column:state_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (agreementSQLite) TableName() string { return "agreements" }

type tenancySQLite struct {
	ID          uint64         `gorm:"primaryKey;column:id"`
	TenancyID   string         `gorm:"size:32;uniqueIndex:ux_tenancies_tenancy_id;column:tenancy_id"`
	AgreementID string         `gorm:"size:32;uniqueIndex:ux_tenancies_agreement_id;column:agreement_id"`
	PropertyID  string         `gorm:"size:32;column:property_id"`
	UnitID      string         `gorm:"size:32;column:unit_id"`
	TenantID    string         `gorm:"size:32;column:tenant_id"`
	LandlordID  string         `gorm:"size:32;column:landlord_id"`
	StartDate   time.Time      `gorm:"column:start_date"`
	EndDate     time.Time      `gorm:"column:end_date"`
	MonthlyRent float64        `gorm:"column:monthly_rent"`
	Status      string         `gorm:"type:text;column:status"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (tenancySQLite) TableName() string { return "tenancies" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe
// schemas, NOT the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&applicationSQLite{}, &paymentIntentSQLite{}, &agreementSQLite{}, &tenancySQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
