package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vaaltic/crm/internal/models"
	"github.com/vaaltic/crm/internal/services"
)

type ContactHandler struct {
	service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Create(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	var in models.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.service.Create(user, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) List(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	contacts, err := h.service.List(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *ContactHandler) Update(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	var in models.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.service.Update(user, c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := principal(c)
	if !ok {
		return
	}
	if err := h.service.Delete(user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
