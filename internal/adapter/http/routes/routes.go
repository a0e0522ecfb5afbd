package routes

import (
	"context"
	"log"

	_ "sorteios_api/docs" // This will be auto-generated
	"sorteios_api/internal/adapter/http/handlers"
	"sorteios_api/internal/infrastructure/bootstrap"
	"sorteios_api/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run will start the server
func Run() {
	cfg := config.Load()

	container, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to build dependencies: %v", err)
	}
	defer container.Close()

	router := NewRouter(cfg,
		handlers.NewTicketHandler(container.TicketUseCase),
		handlers.NewPaymentHandler(container.PaymentUseCase),
	)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// NewRouter registers middlewares and every /v1 route.
func NewRouter(cfg *config.Config, ticketHandler *handlers.TicketHandler, paymentHandler *handlers.PaymentHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addTicketRoutes(v1, cfg.Auth, ticketHandler)
	addPaymentRoutes(v1, cfg.Auth, paymentHandler)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
