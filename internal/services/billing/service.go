package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"business-management-backend/internal/models"
	"business-management-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrItemsNotSaved means the invoice header was persisted but the
	// line-item batch insert failed, leaving an orphaned header. No
	// compensating delete is attempted; the audit log keeps the detail.
	ErrItemsNotSaved = errors.New("invoice items not saved")
)

type Service struct {
	customerRepo *repository.CustomerRepository
	invoiceRepo  *repository.InvoiceRepository
	itemRepo     *repository.InvoiceItemRepository
	db           *gorm.DB
}

func NewService(
	customerRepo *repository.CustomerRepository,
	invoiceRepo *repository.InvoiceRepository,
	itemRepo *repository.InvoiceItemRepository,
) *Service {
	return &Service{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		itemRepo:     itemRepo,
		db:           invoiceRepo.DB(),
	}
}

// ---- customers ----

func (s *Service) ListCustomers() ([]models.Customer, error) {
	return s.customerRepo.GetAll()
}

func (s *Service) GetCustomer(id uuid.UUID) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return customer, err
}

func (s *Service) CreateCustomer(userID uuid.UUID, name, email, phone, address string) (*models.Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}
	customer := &models.Customer{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Address:   address,
		CreatedAt: time.Now(),
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ---- invoice listing ----

// InvoiceRow is an invoice with its customer name resolved for display.
type InvoiceRow struct {
	models.Invoice
	CustomerName string `json:"customer_name"`
}

// ListInvoices loads invoices and customers with two independent
// fetches and joins them in memory by customer id, then sorts by the
// requested column.
func (s *Service) ListInvoices(key SortKey, asc bool) ([]InvoiceRow, error) {
	invoices, err := s.invoiceRepo.GetAll()
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.GetAll()
	if err != nil {
		return nil, err
	}

	rows := make([]InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, InvoiceRow{
			Invoice:      inv,
			CustomerName: customerName(customers, inv.CustomerID),
		})
	}

	if !key.IsValid() {
		key = SortByDueDate
	}
	SortInvoiceRows(rows, key, asc)
	return rows, nil
}

func customerName(customers []models.Customer, id uuid.UUID) string {
	for _, c := range customers {
		if c.ID == id {
			return c.Name
		}
	}
	return "—"
}

// ---- invoice creation ----

type LineItemInput struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
	Taxable     bool    `json:"taxable"`
}

type CreateInvoiceInput struct {
	CustomerID uuid.UUID
	DueDate    time.Time
	Notes      string
	Items      []LineItemInput
}

type CreateInvoiceResult struct {
	Invoice *models.Invoice
	Totals  Totals
	// Debug accumulates the step-by-step diagnostic trail of the
	// submission, mirrored into the audit log.
	Debug string
}

// CreateInvoice runs the sequential submission protocol:
//
//  1. count invoices and derive the next invoice number
//  2. insert the header (status "unpaid", delivery "email")
//  3. batch-insert the line items referencing the header
//
// The two inserts are deliberately not wrapped in a transaction; if the
// item batch fails the header stays behind as an orphan and the error
// is ErrItemsNotSaved, with the failure recorded in the audit log.
func (s *Service) CreateInvoice(userID uuid.UUID, input CreateInvoiceInput) (*CreateInvoiceResult, error) {
	result := &CreateInvoiceResult{Debug: "submission started"}

	count, err := s.invoiceRepo.Count()
	if err != nil {
		result.Debug += " | count failed: " + err.Error()
		s.audit(nil, "invoice_create_failed", userID, result.Debug)
		return result, err
	}
	number := NextInvoiceNumber(count)
	result.Debug += " | number: " + number

	invoice := &models.Invoice{
		ID:             uuid.New(),
		InvoiceNumber:  number,
		CustomerID:     input.CustomerID,
		UserID:         userID,
		DueDate:        input.DueDate,
		Notes:          input.Notes,
		PaymentStatus:  "unpaid",
		DeliveryMethod: "email",
		CreatedAt:      time.Now(),
	}
	if err := s.invoiceRepo.Create(invoice); err != nil {
		result.Debug += " | invoice creation failed: " + err.Error()
		s.audit(nil, "invoice_create_failed", userID, result.Debug)
		return result, fmt.Errorf("invoice creation failed: %w", err)
	}
	result.Invoice = invoice

	items := make([]models.InvoiceItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, models.InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   invoice.ID,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Discount:    in.Discount,
			Taxable:     in.Taxable,
		})
	}
	if err := s.itemRepo.CreateBatch(items); err != nil {
		result.Debug += " | item insert failed: " + err.Error()
		s.audit(&invoice.ID, "invoice_items_failed", userID, result.Debug)
		return result, ErrItemsNotSaved
	}

	result.Totals = ComputeTotals(items)
	result.Debug += " | invoice saved"
	s.audit(&invoice.ID, "invoice_created", userID, result.Debug)
	return result, nil
}

func (s *Service) audit(invoiceID *uuid.UUID, action string, userID uuid.UUID, debug string) {
	details, _ := json.Marshal(map[string]string{"debug": debug})
	entry := &models.InvoiceAuditLog{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Action:      action,
		PerformedBy: userID.String(),
		Details:     datatypes.JSON(details),
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		log.Println("audit log write failed:", err)
	}
}

// ---- invoice detail ----

type InvoiceDetail struct {
	Invoice      models.Invoice       `json:"invoice"`
	CustomerName string               `json:"customer_name"`
	Items        []models.InvoiceItem `json:"items"`
	Totals       Totals               `json:"totals"`
}

func (s *Service) GetInvoiceDetail(id uuid.UUID) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.GetByInvoiceID(invoice.ID)
	if err != nil {
		return nil, err
	}

	name := "—"
	if customer, err := s.customerRepo.GetByID(invoice.CustomerID); err == nil {
		name = customer.Name
	}

	return &InvoiceDetail{
		Invoice:      *invoice,
		CustomerName: name,
		Items:        items,
		Totals:       ComputeTotals(items),
	}, nil
}

// ---- dashboard ----

type DashboardSummary struct {
	CustomerCount    int64   `json:"customer_count"`
	UnpaidCount      int     `json:"unpaid_count"`
	OutstandingTotal float64 `json:"outstanding_total"`
}

// Summary aggregates the dashboard figures: customer count, number of
// unpaid invoices and the total owed across them.
func (s *Service) Summary() (*DashboardSummary, error) {
	customerCount, err := s.customerRepo.Count()
	if err != nil {
		return nil, err
	}

	unpaid, err := s.invoiceRepo.FindByStatus("unpaid")
	if err != nil {
		return nil, err
	}

	var outstanding float64
	for _, inv := range unpaid {
		items, err := s.itemRepo.GetByInvoiceID(inv.ID)
		if err != nil {
			return nil, err
		}
		outstanding += ComputeTotals(items).Total
	}

	return &DashboardSummary{
		CustomerCount:    customerCount,
		UnpaidCount:      len(unpaid),
		OutstandingTotal: Round2(outstanding),
	}, nil
}
