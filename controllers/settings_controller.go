package controllers

import (
	"net/http"

	"cabin-backend/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Service *services.SettingsService
}

func NewSettingsController(service *services.SettingsService) *SettingsController {
	return &SettingsController{Service: service}
}

// settingColumns maps the form's field names to columns; the settings form
// patches one field at a time.
var settingColumns = map[string]string{
	"minBookingLength":    "min_booking_length",
	"maxBookingLength":    "max_booking_length",
	"maxGuestsPerBooking": "max_guests_per_booking",
	"breakfastPrice":      "breakfast_price",
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	setting, err := sc.Service.GetSettings()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	for field, value := range payload {
		col, ok := settingColumns[field]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown setting field: " + field})
			return
		}
		updates[col] = value
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	setting, err := sc.Service.UpdateSetting(updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
