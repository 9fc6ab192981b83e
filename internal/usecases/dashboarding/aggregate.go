package dashboarding

import (
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
)

func sumAmounts(sales []domain.Sale) float64 {
	var total float64
	for _, sale := range sales {
		total += sale.Amount
	}
	return total
}

func trendValues(points []domain.TrendPoint) []float64 {
	values := make([]float64, 0, len(points))
	for _, point := range points {
		values = append(values, point.Amount)
	}
	return values
}

func countOutOfStock(items []domain.InventoryItem) int {
	count := 0
	for _, item := range items {
		if item.Quantity == 0 {
			count++
		}
	}
	return count
}

func totalQuantity(items []domain.InventoryItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// inventoryTurnover usa o total de vendas de todo o período sobre o estoque atual
func inventoryTurnover(totalSales float64, items []domain.InventoryItem) float64 {
	return utils.RatioWithTwoDecimalPlace(totalSales, float64(totalQuantity(items)))
}

func buildInventoryData(totalSales float64, items []domain.InventoryItem) domain.InventoryData {
	if items == nil {
		items = []domain.InventoryItem{}
	}

	return domain.InventoryData{
		InventoryTurnover: inventoryTurnover(totalSales, items),
		OutOfStock:        countOutOfStock(items),
		TotalItems:        len(items),
		Items:             items,
	}
}
