package handlers

import (
	"errors"
	"log"
	"net/http"

	request "sorteios_api/internal/adapter/http/dto/request"
	response "sorteios_api/internal/adapter/http/dto/response"
	"sorteios_api/internal/adapter/http/middleware"
	"sorteios_api/internal/usecase"

	"github.com/gin-gonic/gin"
)

// TicketHandler serves the buyer's "my tickets" listing.
//
// Errors use the {ok:false,error} envelope the ticket clients already parse.
// An ownership violation is reported as a bare "security violation".

type TicketHandler struct {
	usecase usecase.ITicketUseCase
}

func NewTicketHandler(uc usecase.ITicketUseCase) *TicketHandler {
	return &TicketHandler{usecase: uc}
}

func (h *TicketHandler) ListMyTickets(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.TicketError("unauthorized"))
		return
	}

	var q request.ListTicketsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, response.TicketError("invalid query"))
		return
	}
	limit, err := q.ResolveLimit()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.TicketError(err.Error()))
		return
	}
	wonOnly, err := q.ResolveWonOnly()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.TicketError(err.Error()))
		return
	}

	log.Printf("[ticket][handler] list start user_id=%s limit=%d won_only=%t", userID, limit, wonOnly)
	page, err := h.usecase.ListByBuyer(c.Request.Context(), usecase.TicketListQuery{
		BuyerUserID: userID,
		Cursor:      q.ResolveCursor(),
		Limit:       limit,
		WonOnly:     wonOnly,
	})
	if err != nil {
		status, msg := mapTicketError(err)
		log.Printf("[ticket][handler] list failed user_id=%s status=%d err=%v", userID, status, err)
		c.JSON(status, response.TicketError(msg))
		return
	}

	c.JSON(http.StatusOK, response.FromTicketPage(page.Items, page.NextCursor))
}

func mapTicketError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidTicketCursor):
		return http.StatusBadRequest, "invalid cursor"
	case errors.Is(err, usecase.ErrInvalidTicketLimit):
		return http.StatusBadRequest, "invalid limit"
	case errors.Is(err, usecase.ErrInvalidBuyerUserID):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, usecase.ErrTicketOwnershipViolation):
		return http.StatusForbidden, "security violation"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
