package controllers

import (
	"net/http"
	"strconv"

	"cabin-backend/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Bookings *services.BookingService
}

func NewDashboardController(bookings *services.BookingService) *DashboardController {
	return &DashboardController{Bookings: bookings}
}

// GetStats serves ?last=7|30|90 (days), defaulting to 7.
func (dc *DashboardController) GetStats(c *gin.Context) {
	last := 7
	if raw := c.Query("last"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last parameter"})
			return
		}
		last = n
	}

	stats, err := dc.Bookings.GetDashboardStats(last)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
