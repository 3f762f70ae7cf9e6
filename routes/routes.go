package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
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
	pc *controllers.PropertyController,
	rc *controllers.RoomController,
	tc *controllers.TenantController,
	cc *controllers.ContractController,
	rentc *controllers.RentalController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

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
		properties := api.Group("/properties")
		{
			properties.GET("", pc.GetProperties)
			properties.GET("/:id", pc.GetPropertyByID)
			properties.POST("", pc.CreateProperty)
			properties.POST("/:id/reconcile", pc.Reconcile)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.POST("", rc.CreateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.DELETE("/:id", rc.DeleteRoom)
			rooms.GET("/:id/can-delete", rc.CanDeleteRoom)
			rooms.PATCH("/:id/occupancy", rc.SetOccupancy)
			rooms.GET("/:id/availability", rc.CheckAvailability)
		}

		tenants := api.Group("/tenants")
		{
			tenants.GET("", tc.GetTenants)
			tenants.GET("/:id", tc.GetTenantByID)
			tenants.POST("", tc.CreateTenant)
			tenants.PATCH("/:id", tc.UpdateTenant)
			tenants.POST("/:id/move-out", tc.MoveOut)
			tenants.POST("/:id/move-in", tc.MoveIn)
		}

		contracts := api.Group("/contracts")
		{
			contracts.GET("", cc.GetContracts)
			contracts.GET("/:id", cc.GetContractByID)
		}

		rentals := api.Group("/rentals")
		{
			rentals.POST("", rentc.CreateRental)
		}
	}

	return r
}
