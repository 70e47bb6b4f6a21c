// Package reporting folds stored transactions into per-day statistics.
package reporting

import (
	"github.com/example/glowmart/pkg/models"
)

// DayStat accumulates the orders of one calendar day.
type DayStat struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Daily groups orders by the calendar-day prefix of their order date.
// Orders without a usable date land under "unknown".
func Daily(orders []models.Order) map[string]DayStat {
	stats := make(map[string]DayStat)
	for _, o := range orders {
		key := "unknown"
		if len(o.OrderDate) >= 10 {
			key = o.OrderDate[:10]
		}
		s := stats[key]
		s.Total += o.TotalAmount
		s.Count++
		stats[key] = s
	}
	return stats
}
