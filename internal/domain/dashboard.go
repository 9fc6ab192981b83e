// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// DashboardSnapshot é o payload completo exibido pelo painel
type DashboardSnapshot struct {
	SalesData     SalesData     `json:"salesData"`
	InventoryData InventoryData `json:"inventoryData"`
	CustomerData  CustomerData  `json:"customerData"`
}

type SalesData struct {
	TotalSales  float64   `json:"totalSales"`
	Trend       []float64 `json:"trend"`       // Somas por intervalo, em ordem cronológica
	RecentSales []Sale    `json:"recentSales"` // Mais recentes primeiro
}

type InventoryData struct {
	InventoryTurnover float64         `json:"inventoryTurnover"`
	OutOfStock        int             `json:"outOfStock"`
	TotalItems        int             `json:"totalItems"`
	Items             []InventoryItem `json:"items"`
}

type CustomerData struct {
	TotalCustomers  int     `json:"totalCustomers"`
	ActiveCustomers int     `json:"activeCustomers"`
	RetentionRate   float64 `json:"retentionRate"`
}

// SnapshotSource indica de onde veio o snapshot entregue ao cliente
type SnapshotSource string

const (
	SnapshotSourceLive     SnapshotSource = "live"
	SnapshotSourceFallback SnapshotSource = "fallback"
)
