package payment

import "time"

type PaymentDTO struct {
	PaymentID     string     `json:"payment_id"`
	ApplicationID string     `json:"application_id"`
	TenantID      string     `json:"tenant_id"`
	Amount        float64    `json:"amount"`
	Status        string     `json:"status"`
	DueDate       time.Time  `json:"due_date"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	GatewayRef    string     `json:"gateway_ref,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Confirmation is the gateway's push payload, delivered at least once.
type Confirmation struct {
	PaymentID     string `json:"payment_id"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// PollResult reports whether the intent left pending within the bound.
// Confirmed=false with Status=pending is a "still waiting" signal, not a failure.
type PollResult struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Confirmed bool   `json:"confirmed"`
}
