package domain

type InventoryItem struct {
	ID       int    `json:"id"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"` // Zero indica produto sem estoque
}
