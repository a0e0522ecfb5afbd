package request

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidLimit   = errors.New("invalid limit")
	ErrInvalidWonOnly = errors.New("invalid wonOnly")
)

// ListTicketsQuery holds the raw query string of GET /tickets.
type ListTicketsQuery struct {
	Cursor  string `form:"cursor"`
	Limit   string `form:"limit"`
	WonOnly string `form:"wonOnly"`
}

// ResolveLimit returns 0 when absent, letting the use case apply its default.
func (q ListTicketsQuery) ResolveLimit() (int, error) {
	v := strings.TrimSpace(q.Limit)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, ErrInvalidLimit
	}
	return n, nil
}

func (q ListTicketsQuery) ResolveWonOnly() (bool, error) {
	switch strings.ToLower(strings.TrimSpace(q.WonOnly)) {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	default:
		return false, ErrInvalidWonOnly
	}
}

func (q ListTicketsQuery) ResolveCursor() string {
	return strings.TrimSpace(q.Cursor)
}
