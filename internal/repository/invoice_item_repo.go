package repository

import (
	"business-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceItemRepository struct {
	db *gorm.DB
}

func NewInvoiceItemRepository(db *gorm.DB) *InvoiceItemRepository {
	return &InvoiceItemRepository{db: db}
}

// CreateBatch inserts all items in a single statement.
func (r *InvoiceItemRepository) CreateBatch(items []models.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(&items).Error
}

func (r *InvoiceItemRepository) GetByInvoiceID(invoiceID uuid.UUID) ([]models.InvoiceItem, error) {
	var items []models.InvoiceItem
	err := r.db.Where("invoice_id = ?", invoiceID).Find(&items).Error
	return items, err
}
