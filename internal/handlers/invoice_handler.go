package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"business-management-backend/internal/services/billing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

type InvoiceHandler struct {
	service *billing.Service
}

func NewInvoiceHandler(s *billing.Service) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

// List returns all invoices with customer names resolved, sorted by the
// requested column. ?sort=due_date|payment_status|customer, ?dir=asc|desc.
func (h *InvoiceHandler) List(c *gin.Context) {
	key := billing.SortKey(c.DefaultQuery("sort", string(billing.SortByDueDate)))
	if !key.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort column"})
		return
	}
	asc := c.DefaultQuery("dir", "desc") != "desc"

	rows, err := h.service.ListInvoices(key, asc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": rows})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	detail, err := h.service.GetInvoiceDetail(id)
	if errors.Is(err, billing.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	detail.Totals = detail.Totals.Rounded()
	c.JSON(http.StatusOK, detail)
}

// Create runs the invoice submission protocol. A partial failure (header
// saved, items lost) responds 502 with the debug trail so the caller can
// tell an orphaned header from a clean failure.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload struct {
		CustomerID string                  `json:"customer_id"`
		DueDate    string                  `json:"due_date"` // "yyyy-mm-dd"
		Notes      string                  `json:"notes"`
		Items      []billing.LineItemInput `json:"items"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer ID"})
		return
	}

	dueDate, err := time.Parse("2006-01-02", payload.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due date format, expected yyyy-mm-dd"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	result, err := h.service.CreateInvoice(userID, billing.CreateInvoiceInput{
		CustomerID: customerID,
		DueDate:    dueDate,
		Notes:      payload.Notes,
		Items:      payload.Items,
	})

	if errors.Is(err, billing.ErrItemsNotSaved) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "invoice saved without items",
			"invoice": result.Invoice,
			"debug":   result.Debug,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "debug": result.Debug})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "invoice created",
		"invoice": result.Invoice,
		"totals":  result.Totals.Rounded(),
		"debug":   result.Debug,
	})
}

// DownloadPDF renders the invoice as a PDF attachment.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	detail, err := h.service.GetInvoiceDetail(id)
	if errors.Is(err, billing.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Invoice "+detail.Invoice.InvoiceNumber)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, "Customer: "+detail.CustomerName)
	pdf.Ln(8)
	pdf.Cell(0, 8, "Due date: "+detail.Invoice.DueDate.Format("2006-01-02"))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Status: "+detail.Invoice.PaymentStatus)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(90, 8, "Description")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(35, 8, "Unit price")
	pdf.Cell(35, 8, "Discount")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, item := range detail.Items {
		pdf.Cell(90, 8, item.Description)
		pdf.Cell(25, 8, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(35, 8, fmt.Sprintf("%.2f", item.UnitPrice))
		pdf.Cell(35, 8, fmt.Sprintf("%.0f%%", item.Discount*100))
		pdf.Ln(8)
	}

	totals := detail.Totals.Rounded()
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %.2f", totals.Subtotal))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Tax: %.2f", totals.Tax))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", totals.Total))

	c.Header("Content-Disposition", "attachment; filename="+detail.Invoice.InvoiceNumber+".pdf")
	c.Header("Content-Type", "application/pdf")
	if err := pdf.Output(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render PDF"})
	}
}
