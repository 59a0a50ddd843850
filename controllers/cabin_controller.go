package controllers

import (
	"net/http"
	"strings"

	"cabin-backend/services"

	"github.com/gin-gonic/gin"
)

type CabinController struct {
	Service *services.CabinService
}

func NewCabinController(service *services.CabinService) *CabinController {
	return &CabinController{Service: service}
}

type cabinPayload struct {
	Name         string  `json:"name" binding:"required"`
	MaxCapacity  int     `json:"maxCapacity" binding:"required,gt=0"`
	RegularPrice float64 `json:"regularPrice" binding:"required,gt=0"`
	Discount     float64 `json:"discount" binding:"gte=0"`
	Description  string  `json:"description"`

	// Image is a stored URL when the form kept the existing image;
	// ImageData/ImageName describe a newly selected file.
	Image     string `json:"image"`
	ImageData string `json:"imageData"`
	ImageName string `json:"imageName"`
}

func (cc *CabinController) toServicePayload(c *gin.Context, payload cabinPayload) (services.CabinPayload, bool) {
	if payload.Discount >= payload.RegularPrice {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount should be less than regular price"})
		return services.CabinPayload{}, false
	}

	out := services.CabinPayload{
		Name:         strings.TrimSpace(payload.Name),
		MaxCapacity:  payload.MaxCapacity,
		RegularPrice: payload.RegularPrice,
		Discount:     payload.Discount,
		Description:  payload.Description,
		ImageURL:     payload.Image,
		ImageName:    payload.ImageName,
	}

	if payload.ImageData != "" {
		data, err := services.DecodeImagePayload(payload.ImageData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image data is not valid base64"})
			return services.CabinPayload{}, false
		}
		out.ImageData = data
		if out.ImageName == "" {
			out.ImageName = "cabin"
		}
	} else if payload.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "an image file or a stored image URL is required"})
		return services.CabinPayload{}, false
	}

	return out, true
}

func (cc *CabinController) GetCabins(c *gin.Context) {
	cabins, err := cc.Service.GetCabins()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cabins)
}

func (cc *CabinController) CreateCabin(c *gin.Context) {
	var payload cabinPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	servicePayload, ok := cc.toServicePayload(c, payload)
	if !ok {
		return
	}

	cabin, err := cc.Service.CreateOrUpdateCabin(servicePayload, 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cabin)
}

func (cc *CabinController) UpdateCabin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload cabinPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	servicePayload, ok := cc.toServicePayload(c, payload)
	if !ok {
		return
	}

	cabin, err := cc.Service.CreateOrUpdateCabin(servicePayload, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cabin)
}

func (cc *CabinController) DeleteCabin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := cc.Service.DeleteCabin(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Cabin deleted successfully"})
}
