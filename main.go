package main

import (
	"fmt"
	"log"
	"os"

	"otticapro-backend/config"
	"otticapro-backend/controllers"
	"otticapro-backend/models"
	"otticapro-backend/routes"
	"otticapro-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.ProductOrder{},
		&models.LegacyPaymentRecord{},
		&models.PaymentPlan{},
		&models.Installment{},
		&models.FollowUpCall{},
		&models.ErrorTicket{},
		&models.ShopSettings{},
	)
}

func main() {
	var notifier services.Notifier = services.NoopNotifier{}
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		notifier = services.NewTwilioNotifier()
	}

	sweep := services.NewSweepService(config.DB, notifier)
	sweep.StartScheduler()
	controllers.Sweep = sweep

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
