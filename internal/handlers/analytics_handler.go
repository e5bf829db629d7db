package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaaltic/crm/internal/pdf"
	"github.com/vaaltic/crm/internal/services"
)

type AnalyticsHandler struct {
	service *services.AnalyticsService
}

func NewAnalyticsHandler(service *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// @Summary      Dashboard summary
// @Description  Scoped counts and pipeline metrics: admins see all records, customers only their own.
// @Tags         Analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.DashboardSummary
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	summary, err := h.service.Dashboard(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Export renders the same scoped summary as a PDF download.
func (h *AnalyticsHandler) Export(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	summary, err := h.service.Dashboard(user)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := pdf.SummaryReport(summary, user, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="dashboard.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf)
}
