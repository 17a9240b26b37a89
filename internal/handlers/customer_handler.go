package handler

import (
	"errors"
	"net/http"

	"business-management-backend/internal/services/billing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomerHandler struct {
	service *billing.Service
}

func NewCustomerHandler(s *billing.Service) *CustomerHandler {
	return &CustomerHandler{service: s}
}

// List returns all customers, newest first.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.ListCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load customers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer ID"})
		return
	}

	customer, err := h.service.GetCustomer(id)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// Create inserts a customer tagged with the authenticated user. Only
// name is required.
func (h *CustomerHandler) Create(c *gin.Context) {
	var payload struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	customer, err := h.service.CreateCustomer(userID, payload.Name, payload.Email, payload.Phone, payload.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error adding customer: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "customer created", "customer": customer})
}
