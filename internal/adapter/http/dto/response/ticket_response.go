package response

import "sorteios_api/internal/domain/entities"

// TicketListResponse is the "my tickets" page. NextCursor is null on the last page.
type TicketListResponse struct {
	OK         bool                          `json:"ok"`
	Items      []entities.ConsolidatedTicket `json:"items"`
	NextCursor *string                       `json:"nextCursor"`
}

type TicketErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func FromTicketPage(items []entities.ConsolidatedTicket, nextCursor *string) TicketListResponse {
	if items == nil {
		items = []entities.ConsolidatedTicket{}
	}
	return TicketListResponse{OK: true, Items: items, NextCursor: nextCursor}
}

func TicketError(msg string) TicketErrorResponse {
	return TicketErrorResponse{OK: false, Error: msg}
}
