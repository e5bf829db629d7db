package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/services"
)

type DealHandler struct {
	service *services.DealService
}

func NewDealHandler(service *services.DealService) *DealHandler {
	return &DealHandler{service: service}
}

// @Summary      Create a deal
// @Description  Fails with 404 when contact_id does not resolve to an existing contact.
// @Tags         Deals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        deal  body      models.DealInput  true  "Deal data"
// @Success      200   {object}  models.Deal
// @Failure      404   {object}  map[string]string
// @Router       /api/deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	var in models.DealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal, err := h.service.Create(user, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) List(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	deals, err := h.service.List(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

func (h *DealHandler) Update(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	var in models.DealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deal, err := h.service.Update(user, c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Delete(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	if err := h.service.Delete(user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deal deleted successfully"})
}
