package domain

import (
	"context"
	"errors"
)

// GetSalesRequest filters the unified result set. Zero values mean "no
// constraint" for AgenCode, Year, Month and Day.
type GetSalesRequest struct {
	AgenCode string `json:"agen_code"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Day      int    `json:"day"`
	Source   Source `json:"source"`
}

// GetSalesResponse carries the merged, deduplicated records. Partial is set
// when the remote fetch failed and only local results are returned.
type GetSalesResponse struct {
	Sales   []Sale `json:"sales"`
	Partial bool   `json:"partial"`
}

type Service interface {
	GetSales(ctx context.Context, req GetSalesRequest) (GetSalesResponse, error)
}

var (
	ErrInvalidSource      = errors.New("invalid_source")
	ErrGatewayUnavailable = errors.New("gateway_unavailable")
	ErrDuplicateSale      = errors.New("duplicate_sale")
)
