package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one row of the append-only premium ledger. Records are created
// only after the processor confirmed the charge and are never mutated.
type Payment struct {
	BaseModel
	Email         string     `gorm:"index" json:"email"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	TransactionID string     `gorm:"uniqueIndex" json:"transactionId"`
	ReceiptNumber string     `gorm:"uniqueIndex" json:"receiptNumber"`
	ApplicationID *uuid.UUID `gorm:"type:uuid" json:"applicationId,omitempty"`
	PolicyTitle   string     `json:"policyTitle,omitempty"`
	Status        string     `json:"status"`
	PaidAt        time.Time  `json:"date"`
}
