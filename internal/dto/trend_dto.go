package dto

import (
	"github.com/jomonylw/flow-balance-sub006/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrendQuery defines the query parameters for a trend series request.
type TrendQuery struct {
	Range               string `form:"range" binding:"required,oneof=lastMonth lastYear all"`
	Granularity         string `form:"granularity" binding:"required,oneof=daily monthly"`
	DisplayCurrencyCode string `form:"currency" binding:"required,currencycode"`
}

// TrendPointResponse is one bucket of a trend series response.
type TrendPointResponse struct {
	Date                 string          `json:"date"`
	OriginalAmount       decimal.Decimal `json:"originalAmount"`
	OriginalCurrencyCode string          `json:"originalCurrencyCode"`
	ConvertedAmount      decimal.Decimal `json:"convertedAmount"`
	TransactionCount     int             `json:"transactionCount"`
	HasConversionError   bool            `json:"hasConversionError"`
}

// TrendSeriesResponse is the full chart-ready series for an account.
type TrendSeriesResponse struct {
	AccountID           string               `json:"accountID"`
	Range               string               `json:"range"`
	Granularity         string               `json:"granularity"`
	DisplayCurrencyCode string               `json:"displayCurrencyCode"`
	Points              []TrendPointResponse `json:"points"`
}

// ToTrendSeriesResponse converts domain trend points to a DTO response.
func ToTrendSeriesResponse(accountID string, q TrendQuery, points []domain.TrendPoint) TrendSeriesResponse {
	response := TrendSeriesResponse{
		AccountID:           accountID,
		Range:               q.Range,
		Granularity:         q.Granularity,
		DisplayCurrencyCode: q.DisplayCurrencyCode,
		Points:              make([]TrendPointResponse, len(points)),
	}
	for i, p := range points {
		response.Points[i] = TrendPointResponse{
			Date:                 p.Date.Format("2006-01-02"),
			OriginalAmount:       p.OriginalAmount,
			OriginalCurrencyCode: p.OriginalCurrencyCode,
			ConvertedAmount:      p.ConvertedAmount,
			TransactionCount:     p.TransactionCount,
			HasConversionError:   p.HasConversionError,
		}
	}
	return response
}
