package tenancy

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusEnded      Status = "ended"
	StatusTerminated Status = "terminated"
)

// Tenancy is the active occupancy record, at most one per agreement.
type Tenancy struct {
	ID          uint64         `gorm:"primaryKey;column:id" json:"-"`
	TenancyID   string         `gorm:"size:32;uniqueIndex:ux_tenancies_tenancy_id" json:"tenancy_id"`
	AgreementID string         `gorm:"size:32;uniqueIndex:ux_tenancies_agreement_id" json:"agreement_id"`
	PropertyID  string         `gorm:"size:32" json:"property_id"`
	UnitID      string         `gorm:"size:32" json:"unit_id"`
	TenantID    string         `gorm:"size:32;index:idx_tenancies_tenant" json:"tenant_id"`
	LandlordID  string         `gorm:"size:32;index:idx_tenancies_landlord" json:"landlord_id"`
	StartDate   time.Time      `gorm:"type:date" json:"start_date"`
	EndDate     time.Time      `gorm:"type:date" json:"end_date"`
	MonthlyRent float64        `gorm:"type:decimal(18,2)" json:"monthly_rent"`
	Status      Status         `gorm:"type:enum('active','ended','terminated');default:'active'" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tenancy) TableName() string { return "tenancies" }
