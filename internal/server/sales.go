package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	saledomain "github.com/hotspotid/salesledger/internal/sale/domain"
)

type listSalesResponse struct {
	Sales   []saledomain.Sale `json:"sales"`
	Partial bool              `json:"partial"`
}

// ListSales handles GET /v1/sales.
func (s *Server) ListSales(c *gin.Context) {
	source, err := parseSource(c.Query("source"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	year, err := parseOptionalInt(c.Query("year"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	month, err := parseOptionalInt(c.Query("month"))
	if err != nil || month < 0 || month > 12 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	day, err := parseOptionalInt(c.Query("day"))
	if err != nil || day < 0 || day > 31 {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.salesvc.GetSales(c.Request.Context(), saledomain.GetSalesRequest{
		AgenCode: strings.TrimSpace(c.Query("agent_code")),
		Year:     year,
		Month:    month,
		Day:      day,
		Source:   source,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if resp.Sales == nil {
		resp.Sales = []saledomain.Sale{}
	}
	c.JSON(http.StatusOK, listSalesResponse{
		Sales:   resp.Sales,
		Partial: resp.Partial,
	})
}

func parseSource(value string) (saledomain.Source, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "both":
		return saledomain.SourceBoth, nil
	case "local":
		return saledomain.SourceLocal, nil
	case "remote":
		return saledomain.SourceRemote, nil
	default:
		return 0, ErrInvalidRequest
	}
}

func parseOptionalInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	return strconv.Atoi(trimmed)
}
