package reporting

import (
	"testing"

	"github.com/example/glowmart/pkg/models"
)

func TestDailyGroupsByCalendarDay(t *testing.T) {
	orders := []models.Order{
		{OrderDate: "2026-08-30T09:15:00Z", TotalAmount: 100000},
		{OrderDate: "2026-08-30T17:40:00Z", TotalAmount: 50000},
		{OrderDate: "2026-08-31T08:00:00Z", TotalAmount: 75000},
	}

	stats := Daily(orders)
	if len(stats) != 2 {
		t.Fatalf("expected 2 days, got %d", len(stats))
	}

	day := stats["2026-08-30"]
	if day.Count != 2 || day.Total != 150000 {
		t.Fatalf("2026-08-30: got %+v", day)
	}
	day = stats["2026-08-31"]
	if day.Count != 1 || day.Total != 75000 {
		t.Fatalf("2026-08-31: got %+v", day)
	}
}

func TestDailyMissingDate(t *testing.T) {
	orders := []models.Order{
		{OrderDate: "", TotalAmount: 10000},
		{OrderDate: "bad", TotalAmount: 5000},
	}

	stats := Daily(orders)
	unknown := stats["unknown"]
	if unknown.Count != 2 || unknown.Total != 15000 {
		t.Fatalf("unknown bucket: got %+v", unknown)
	}
}

func TestDailyEmptyInput(t *testing.T) {
	if stats := Daily(nil); len(stats) != 0 {
		t.Fatalf("expected empty stats, got %v", stats)
	}
}
