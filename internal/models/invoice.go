package models

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber  string    `gorm:"uniqueIndex" json:"invoice_number"`
	CustomerID     uuid.UUID `gorm:"index" json:"customer_id"`
	UserID         uuid.UUID `gorm:"index" json:"user_id"`
	DueDate        time.Time `json:"due_date"`
	Notes          string    `json:"notes"`
	PaymentStatus  string    `gorm:"index" json:"payment_status"`
	DeliveryMethod string    `json:"delivery_method"`
	CreatedAt      time.Time `json:"created_at"`
}
