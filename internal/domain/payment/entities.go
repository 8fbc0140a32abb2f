package payment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Terminal reports whether the status can never change again.
func (s Status) Terminal() bool { return s == StatusPaid || s == StatusFailed }

// PaymentIntent is the initial rent-plus-deposit obligation for one
// application. The unique index on application_id is the idempotency
// mechanism for requestPayment; the status columns are mutated only by the
// gateway's push confirmation, never by a client request.
type PaymentIntent struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	PaymentID      string         `gorm:"size:32;uniqueIndex:ux_payment_intents_payment_id" json:"payment_id"`
	ApplicationID  string         `gorm:"size:32;uniqueIndex:ux_payment_intents_application_id" json:"application_id"`
	TenantID       string         `gorm:"size:32;index:idx_payment_intents_tenant" json:"tenant_id"`
	LandlordID     string         `gorm:"size:32" json:"landlord_id"`
	UnitID         string         `gorm:"size:32" json:"unit_id"`
	Amount         float64        `gorm:"type:decimal(18,2)" json:"amount"`
	Status         Status         `gorm:"type:enum('pending','paid','failed');default:'pending'" json:"status"`
	DueDate        time.Time      `gorm:"type:date" json:"due_date"`
	PaidAt         *time.Time     `gorm:"column:paid_at" json:"paid_at,omitempty"`
	TransactionID  string         `gorm:"size:64" json:"transaction_id,omitempty"`
	GatewayRef     string         `gorm:"size:64" json:"gateway_ref,omitempty"`
	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PaymentIntent) TableName() string { return "payment_intents" }
