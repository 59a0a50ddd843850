package controllers

import (
	"net/http"
	"strings"

	"cabin-backend/middleware"
	"cabin-backend/services"
	"cabin-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

type signupPayload struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) SignUp(c *gin.Context) {
	var payload signupPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	user, err := ac.Service.SignUp(
		strings.TrimSpace(payload.FullName),
		strings.TrimSpace(payload.Email),
		payload.Password,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	user, token, err := ac.Service.Login(strings.TrimSpace(payload.Email), payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GetUser reports the current session's user. No session is a normal null
// result, not an error; only a failing session check maps to 401.
func (ac *AuthController) GetUser(c *gin.Context) {
	user, err := ac.Service.CurrentUser(utils.BearerToken(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		ac.Service.Logout(user.ID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type updateUserPayload struct {
	Password   string `json:"password"`
	FullName   string `json:"fullName"`
	AvatarData string `json:"avatarData"`
}

func (ac *AuthController) UpdateUser(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var payload updateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}
	if payload.Password == "" && payload.FullName == "" && payload.AvatarData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	update := services.ProfileUpdate{
		Password: payload.Password,
		FullName: strings.TrimSpace(payload.FullName),
	}
	if payload.AvatarData != "" {
		data, err := services.DecodeImagePayload(payload.AvatarData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "avatar data is not valid base64"})
			return
		}
		update.AvatarData = data
	}

	user, err := ac.Service.UpdateCurrentUser(current.ID, update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
