package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"cabin-backend/config"
	"cabin-backend/controllers"
	"cabin-backend/routes"
	"cabin-backend/services"
	"cabin-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required base URL: stored image URLs are computed against it
	baseURL := os.Getenv("STORAGE_BASE_URL")
	if baseURL == "" {
		log.Fatal("❌ ERROR: STORAGE_BASE_URL environment variable is not set. Cannot build public image URLs.")
	}
	log.Println("✅ STORAGE_BASE_URL detected.")

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	store := services.NewDiskObjectStore(baseURL)
	cache := services.NewResourceCache()

	jwtSecret := utils.EnvOrDefault("JWT_SECRET", "")
	if jwtSecret == "" {
		log.Println("⚠️  JWT_SECRET not set; using a per-process secret, sessions won't survive restarts")
		jwtSecret = uuid.NewString()
	}

	// Initialize services
	authService := services.NewAuthService(db, store, cache, []byte(jwtSecret))
	cabinService := services.NewCabinService(db, store)
	bookingService := services.NewBookingService(db)
	guestService := services.NewGuestService(db)
	settingsService := services.NewSettingsService(db, cache)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	cabinController := controllers.NewCabinController(cabinService)
	bookingController := controllers.NewBookingController(bookingService)
	guestController := controllers.NewGuestController(guestService)
	settingsController := controllers.NewSettingsController(settingsService)
	dashboardController := controllers.NewDashboardController(bookingService)

	router := routes.SetupRouter(
		authController,
		cabinController,
		bookingController,
		guestController,
		settingsController,
		dashboardController,
		authService,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal, then shut down with a timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
