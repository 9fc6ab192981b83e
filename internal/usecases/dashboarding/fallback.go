package dashboarding

import (
	"time"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

// FallbackSnapshot devolve um snapshot fixo usado quando o banco não está disponível.
// Cada chamada monta uma cópia nova, então o chamador pode alterá-la livremente.
func FallbackSnapshot() *domain.DashboardSnapshot {
	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}

	sales := []domain.Sale{
		{ID: 1, Date: day(1), Amount: 1250, Product: "Laptop"},
		{ID: 2, Date: day(2), Amount: 850, Product: "Phone"},
		{ID: 3, Date: day(3), Amount: 2100, Product: "Monitor"},
		{ID: 4, Date: day(4), Amount: 750, Product: "Keyboard"},
		{ID: 5, Date: day(5), Amount: 1800, Product: "Tablet"},
	}

	items := []domain.InventoryItem{
		{ID: 1, Product: "Laptop", Quantity: 25},
		{ID: 2, Product: "Phone", Quantity: 150},
		{ID: 3, Product: "Tablet", Quantity: 75},
		{ID: 4, Product: "Monitor", Quantity: 40},
		{ID: 5, Product: "Keyboard", Quantity: 0},
		{ID: 6, Product: "Mouse", Quantity: 200},
		{ID: 7, Product: "Headphones", Quantity: 85},
		{ID: 8, Product: "Webcam", Quantity: 0},
	}

	totalSales := sumAmounts(sales)

	return &domain.DashboardSnapshot{
		SalesData: domain.SalesData{
			TotalSales:  totalSales,
			Trend:       []float64{1200, 1800, 2100, 1650, 2300, 1900, 2450}, // Últimos 7 dias
			RecentSales: sales,
		},
		InventoryData: buildInventoryData(totalSales, items),
		CustomerData: domain.CustomerData{
			TotalCustomers:  1250,
			ActiveCustomers: 1050,
			RetentionRate:   84.5,
		},
	}
}
