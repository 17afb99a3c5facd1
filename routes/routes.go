package routes

import (
	"otticapro-backend/config"
	"otticapro-backend/controllers"
	"otticapro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("", controllers.GetOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PUT("/:id", controllers.UpdateOrder)
			orders.PUT("/:id/items/:itemId/cancel", controllers.CancelProductOrder)
			orders.PUT("/:id/legacy-payment", controllers.UpdateLegacyPayment)
			orders.PUT("/:id/installments/:rataId", controllers.UpdateInstallment)
			orders.DELETE("/:id", controllers.DeleteOrder)
		}

		// Follow-up call routes
		followups := api.Group("/followups")
		{
			followups.GET("", controllers.GetFollowUpCalls)
			followups.PUT("/:id/outcome", controllers.RecordCallOutcome)
			followups.PUT("/:id/archive", controllers.ArchiveFollowUpCall)
			followups.POST("/:id/error-ticket", controllers.CreateErrorTicket)

			// Diagnostic generation with an optional widened window
			followups.POST("/generate", utils.TitolareOnly(), controllers.GenerateFollowUpCalls)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
