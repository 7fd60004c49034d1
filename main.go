package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/WashLinkHQ/washlink-go/api"
	"github.com/WashLinkHQ/washlink-go/config"
	"github.com/WashLinkHQ/washlink-go/tenant"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found -- config defaults will be used")
	}

	tenantManager, err := tenant.NewManager()
	if err != nil {
		log.Fatalf("Failed to initialize tenant manager: %v", err)
	}

	log.Println("Starting tenant pre-activation...")
	if err := tenant.PreActivateAllTenants(tenantManager); err != nil {
		log.Fatalf("Tenant pre-activation failed: %v", err)
	}
	if err := tenant.ValidatePreActivation(); err != nil {
		log.Fatalf("Tenant pre-activation validation failed: %v", err)
	}
	log.Println("All tenants pre-activated successfully!")

	r := gin.New()
	r.Use(api.FilteredLogger(), gin.Recovery())
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://[::1]:3000",
		},
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Tenant-ID", "X-Requested-With",
		},
		AllowCredentials: true,
	}))

	// Tenant context middleware; every request runs against one tenant's
	// database, resolved from the X-Tenant-ID header.
	r.Use(func(c *gin.Context) {
		tenantCtx, err := tenantManager.GetContext(c)
		if err != nil {
			log.Printf("Tenant context error for %s from %s: %v", c.Request.URL.Path, c.ClientIP(), err)
			c.JSON(500, gin.H{"error": "tenant context failed: " + err.Error()})
			c.Abort()
			return
		}
		defer tenantCtx.Close()

		if tenantCtx.Status != "active" {
			log.Printf("ERROR: Tenant %s is not active (status: %s) - should have been pre-activated",
				tenantCtx.TenantID, tenantCtx.Status)
			c.JSON(500, gin.H{"error": "tenant not ready"})
			c.Abort()
			return
		}

		c.Set("tenant", tenantCtx)
		c.Set("tenantManager", tenantManager)
		c.Next()
	})

	r.GET("/api/v1/health", api.HealthHandler)
	r.GET("/api/v1/db/status", api.DBStatusHandler)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", api.AdminLoginHandler)
			auth.POST("/user/login", api.UserLoginHandler)
			auth.POST("/user/register", api.UserRegisterHandler)
			auth.POST("/logout", api.LogoutHandler)
		}

		admin := v1.Group("/admin", api.AuthRequired("admin_auth", "admin"))
		{
			admin.GET("/analytics/overview", api.AnalyticsOverviewHandler)
			admin.GET("/customers/overview", api.CustomerAnalyticsHandler)
			admin.GET("/dashboard/average-order-value", api.AOVHandler)
			admin.GET("/products/overview", api.ProductsOverviewHandler)

			admin.GET("/orders", api.AdminListOrdersHandler)
			admin.PATCH("/orders/:orderId/status", api.UpdateOrderStatusHandler)

			admin.GET("/customers", api.CustomerDirectoryHandler)
			admin.POST("/customers", api.CreateCustomerHandler)
		}

		super := v1.Group("/super-admin", api.AuthRequired("admin_auth", "super-admin"))
		{
			super.GET("/dashboard/overview", api.PlatformOverviewHandler)
			super.GET("/laundries/performance", api.LaundryPerformanceHandler)
			super.GET("/laundries/:laundryId", api.GetLaundryHandler)
			super.PATCH("/laundries/:laundryId", api.UpdateLaundryHandler)
			super.POST("/laundries/:laundryId/suspend", api.SuspendLaundryHandler)
			super.POST("/laundries/:laundryId/reactivate", api.ReactivateLaundryHandler)
		}

		user := v1.Group("/user", api.AuthRequired("user_auth", "user"))
		{
			user.POST("/orders", api.CreateOrderHandler)
			user.GET("/orders", api.UserOrdersHandler)
			user.GET("/orders/active", api.ActiveOrdersHandler)

			user.GET("/profile", api.GetProfileHandler)
			user.PUT("/profile", api.UpdateProfileHandler)

			user.GET("/addresses", api.ListAddressesHandler)
			user.POST("/addresses", api.CreateAddressHandler)

			user.GET("/laundries/:laundryId/products", api.ListProductsHandler)
		}
	}

	log.Printf("Starting server on :%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
