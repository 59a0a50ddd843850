package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"cabin-backend/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Service *services.BookingService
}

func NewBookingController(service *services.BookingService) *BookingController {
	return &BookingController{Service: service}
}

// GetBookings handles e.g. ?status=checked-in&sortBy=startDate-desc&page=2.
// A status of "all" (or none) means no filter.
func (bc *BookingController) GetBookings(c *gin.Context) {
	spec := services.QuerySpec{Page: 1}

	if status := c.Query("status"); status != "" && status != "all" {
		spec.Filter = &services.Filter{Field: "status", Value: status}
	}

	if sortBy := c.Query("sortBy"); sortBy != "" {
		field, direction, _ := strings.Cut(sortBy, "-")
		if direction == "" {
			direction = "asc"
		}
		spec.SortBy = &services.SortBy{Field: field, Direction: direction}
	}

	if page := c.Query("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil || p < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		spec.Page = p
	}

	bookings, count, err := bc.Service.GetBookings(spec)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings, "count": count})
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := bc.Service.GetBooking(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking applies a partial column patch. Identity and bookkeeping
// fields cannot be written through here.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
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
	delete(updates, "deleted_at")
	delete(updates, "status")
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	booking, err := bc.Service.UpdateBooking(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := bc.Service.DeleteBooking(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Booking deleted successfully"})
}

type checkinPayload struct {
	Breakfast *services.Breakfast `json:"breakfast"`
}

func (bc *BookingController) CheckIn(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload checkinPayload
	if err := c.ShouldBindJSON(&payload); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	booking, err := bc.Service.CheckIn(id, payload.Breakfast)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (bc *BookingController) CheckOut(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := bc.Service.CheckOut(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// GetBookingsAfter feeds the dashboard's sales window: ?date=2026-08-01.
func (bc *BookingController) GetBookingsAfter(c *gin.Context) {
	after, err := parseDateParam(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing date"})
		return
	}
	bookings, err := bc.Service.GetBookingsAfterDate(after)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (bc *BookingController) GetStaysAfter(c *gin.Context) {
	after, err := parseDateParam(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing date"})
		return
	}
	stays, err := bc.Service.GetStaysAfterDate(after)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stays)
}

func (bc *BookingController) GetStaysTodayActivity(c *gin.Context) {
	stays, err := bc.Service.GetStaysTodayActivity()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stays)
}
