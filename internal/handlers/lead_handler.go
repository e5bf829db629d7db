package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/services"
)

type LeadHandler struct {
	service *services.LeadService
}

func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

// @Summary      Create a lead
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        lead  body      models.LeadInput  true  "Lead data"
// @Success      200   {object}  models.Lead
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	var in models.LeadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.service.Create(user, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// @Summary      List visible leads
// @Tags         Leads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Lead
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	leads, err := h.service.List(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) Update(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	var in models.LeadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.service.Update(user, c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	if err := h.service.Delete(user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted successfully"})
}
