package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cabin-backend/controllers"
	"cabin-backend/middleware"
	"cabin-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ac *controllers.AuthController,
	cc *controllers.CabinController,
	bc *controllers.BookingController,
	gc *controllers.GuestController,
	sc *controllers.SettingsController,
	dc *controllers.DashboardController,
	authService *services.AuthService,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// Uploaded objects are public under the same path shape their stored
	// URLs use.
	r.Static("/storage/v1/object/public", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", ac.SignUp)
			auth.POST("/login", ac.Login)

			// GET /user is reachable without a session: an anonymous caller
			// gets a null user, not a 401.
			auth.GET("/user", ac.GetUser)

			auth.POST("/logout", middleware.Auth(authService), ac.Logout)
			auth.PATCH("/user", middleware.Auth(authService), ac.UpdateUser)
		}

		protected := api.Group("")
		protected.Use(middleware.Auth(authService))
		{
			cabins := protected.Group("/cabins")
			{
				cabins.GET("", cc.GetCabins)
				cabins.POST("", cc.CreateCabin)
				cabins.PUT("/:id", cc.UpdateCabin)
				cabins.DELETE("/:id", cc.DeleteCabin)
			}

			bookings := protected.Group("/bookings")
			{
				bookings.GET("", bc.GetBookings)

				// static segments before /:id
				bookings.GET("/after", bc.GetBookingsAfter)
				bookings.GET("/stays/after", bc.GetStaysAfter)
				bookings.GET("/stays/today-activity", bc.GetStaysTodayActivity)

				bookings.GET("/:id", bc.GetBooking)
				bookings.PATCH("/:id", bc.UpdateBooking)
				bookings.DELETE("/:id", bc.DeleteBooking)
				bookings.POST("/:id/checkin", bc.CheckIn)
				bookings.POST("/:id/checkout", bc.CheckOut)
			}

			guests := protected.Group("/guests")
			{
				guests.GET("", gc.GetGuests)
				guests.GET("/:id", gc.GetGuest)
				guests.POST("", gc.CreateGuest)
				guests.PUT("/:id", gc.UpdateGuest)
				guests.DELETE("/:id", gc.DeleteGuest)
			}

			settings := protected.Group("/settings")
			{
				settings.GET("", sc.GetSettings)
				settings.PATCH("", sc.UpdateSettings)
			}

			protected.GET("/dashboard/stats", dc.GetStats)
		}
	}

	return r
}
