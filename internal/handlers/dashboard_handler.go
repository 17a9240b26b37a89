package handler

import (
	"net/http"

	"business-management-backend/internal/services/billing"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *billing.Service
}

func NewDashboardHandler(s *billing.Service) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Settings is a static stub; there is no stored settings model yet.
func (h *DashboardHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Manage your team, company profile, and billing info.",
	})
}
