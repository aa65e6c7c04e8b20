package model

import "time"

// Payment statuses. Transitions are one-way: PENDING -> SUCCESS or
// PENDING -> FAILED, nothing leaves a terminal state.
const (
	PaymentPending = "PENDING"
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
)

type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	InvoiceID         string    `gorm:"uniqueIndex" json:"invoice_id"`
	HostID            uint      `gorm:"index" json:"host_id"` // payer, host or participant
	HackathonID       *uint     `json:"hackathon_id,omitempty"`
	Amount            int64     `json:"amount"` // smallest currency unit
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	ProviderPaymentID *string   `json:"provider_payment_id,omitempty"`
	UserEmail         string    `json:"user_email,omitempty"`
	PaymentMethod     string    `json:"payment_method,omitempty"`
	ReceiptPath       string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}
