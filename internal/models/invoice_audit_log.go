package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InvoiceAuditLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InvoiceID   *uuid.UUID `gorm:"index"`
	Action      string
	PerformedBy string
	Details     datatypes.JSON
	CreatedAt   time.Time
}
