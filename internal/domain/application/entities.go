package application

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
	StatusCancelled Status = "cancelled"
)

// Application is created and mutated by the (out-of-scope) listing flow;
// the onboarding pipeline only reads it.
type Application struct {
	ID            uint64         `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID string         `gorm:"size:32;uniqueIndex:ux_applications_application_id" json:"application_id"`
	TenantID      string         `gorm:"size:32;index:idx_applications_tenant" json:"tenant_id"`
	LandlordID    string         `gorm:"size:32;index:idx_applications_landlord" json:"landlord_id"`
	PropertyID    string         `gorm:"size:32" json:"property_id"`
	UnitID        string         `gorm:"size:32" json:"unit_id"`
	MoveInDate    time.Time      `gorm:"type:date" json:"move_in_date"`
	RentAmount    float64        `gorm:"type:decimal(18,2)" json:"rent_amount"`
	DepositAmount float64        `gorm:"type:decimal(18,2)" json:"deposit_amount"`
	Status        Status         `gorm:"type:enum('pending','approved','rejected','withdrawn','cancelled');default:'pending'" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "applications" }
