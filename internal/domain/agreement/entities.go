package agreement

import (
	"time"

	"gorm.io/gorm"

	"rentflow-backend/internal/domain/fault"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusGenerated Status = "generated"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
)

// Role is the closed set of signing parties. Handlers parse it once at the
// boundary so nothing downstream ever sees a free-form role string.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTenant, RoleLandlord:
		return Role(s), nil
	default:
		return "", fault.Validation("role must be tenant or landlord")
	}
}

// Agreement is the generated lease. It is never deleted; the unique index on
// application_id makes generation idempotent under concurrent retries.
type Agreement struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	AgreementID      string         `gorm:"size:32;uniqueIndex:ux_agreements_agreement_id" json:"agreement_id"`
	ApplicationID    string         `gorm:"size:32;uniqueIndex:ux_agreements_application_id" json:"application_id"`
	PaymentID        string         `gorm:"size:32" json:"payment_id"`
	TenantID         string         `gorm:"size:32;index:idx_agreements_tenant" json:"tenant_id"`
	LandlordID       string         `gorm:"size:32;index:idx_agreements_landlord" json:"landlord_id"`
	UnitID           string         `gorm:"size:32" json:"unit_id"`
	StartDate        time.Time      `gorm:"type:date" json:"start_date"`
	EndDate          time.Time      `gorm:"type:date" json:"end_date"`
	RentAmount       float64        `gorm:"type:decimal(18,2)" json:"rent_amount"`
	DepositAmount    float64        `gorm:"type:decimal(18,2)" json:"deposit_amount"`
	Clauses          string         `gorm:"type:text" json:"clauses"`
	Status           Status         `gorm:"type:enum('draft','generated','active','expired');default:'draft'" json:"status"`
	TenantSigned     bool           `gorm:"default:false" json:"tenant_signed"`
	TenantSignedAt   *time.Time     `gorm:"column:tenant_signed_at" json:"tenant_signed_at,omitempty"`
	LandlordSigned   bool           `gorm:"default:false" json:"landlord_signed"`
	LandlordSignedAt *time.Time     `gorm:"column:landlord_signed_at" json:"landlord_signed_at,omitempty"`
	StateUpdatedAt   time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Agreement) TableName() string { return "agreements" }

// FullyExecuted reports whether both parties have signed.
func (a *Agreement) FullyExecuted() bool { return a.TenantSigned && a.LandlordSigned }
