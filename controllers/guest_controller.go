package controllers

import (
	"net/http"
	"strings"

	"cabin-backend/models"
	"cabin-backend/services"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Service *services.GuestService
}

func NewGuestController(service *services.GuestService) *GuestController {
	return &GuestController{Service: service}
}

func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.Service.GetGuests()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	guest, err := gc.Service.GetGuest(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (gc *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	guest.FullName = strings.TrimSpace(guest.FullName)
	if guest.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name is required."})
		return
	}

	created, err := gc.Service.CreateGuest(guest)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")

	guest, err := gc.Service.UpdateGuest(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := gc.Service.DeleteGuest(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Guest deleted successfully"})
}
