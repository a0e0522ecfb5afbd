package routes

import (
	"sorteios_api/internal/adapter/http/handlers"
	"sorteios_api/internal/adapter/http/middleware"
	"sorteios_api/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

const PathTickets = "/tickets"

func addTicketRoutes(rg *gin.RouterGroup, auth config.AuthConfig, ticketHandler *handlers.TicketHandler) {
	tickets := rg.Group(PathTickets, middleware.RequireAuth(auth.JWTSecret))
	{
		tickets.GET("", ticketHandler.ListMyTickets)
	}
}
