package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rental-backend/config"
	"rental-backend/controllers"
	"rental-backend/routes"
	"rental-backend/services"
	"rental-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	// Initialize services
	propertyService := services.NewPropertyService(db)
	roomService := services.NewRoomService(db)
	tenantService := services.NewTenantService(db)
	contractService := services.NewContractService(db)
	availabilityService := services.NewAvailabilityService(db)
	rentalService := services.NewRentalService(db, availabilityService, tenantService)
	moveService := services.NewMoveService(db, availabilityService)
	reconcileService := services.NewReconcileService(db)

	// Initialize controllers
	propertyController := controllers.NewPropertyController(propertyService, reconcileService)
	roomController := controllers.NewRoomController(roomService, availabilityService)
	tenantController := controllers.NewTenantController(tenantService, moveService)
	contractController := controllers.NewContractController(contractService)
	rentalController := controllers.NewRentalController(rentalService)

	router := routes.SetupRouter(
		propertyController,
		roomController,
		tenantController,
		contractController,
		rentalController,
	)

	// Optional background sweep: reconcile occupancy and expire overdue
	// contracts on an interval, e.g. RECONCILE_INTERVAL=1h.
	sweepDone := make(chan struct{})
	if raw := utils.EnvOrDefault("RECONCILE_INTERVAL", ""); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			log.Fatalf("invalid RECONCILE_INTERVAL %q", raw)
		}
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if _, err := contractService.ExpireOverdue(time.Now()); err != nil {
						log.Printf("contract expiry sweep failed: %v", err)
					}
					if corrected, err := reconcileService.ReconcileAll(); err != nil {
						log.Printf("occupancy reconcile failed: %v", err)
					} else if corrected > 0 {
						log.Printf("occupancy reconcile corrected %d room(s)", corrected)
					}
				case <-sweepDone:
					return
				}
			}
		}()
		log.Printf("Background sweep enabled every %s", interval)
	}

	port := utils.EnvOrDefault("PORT", "8080")
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
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")
	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
