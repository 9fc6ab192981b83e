// Package seeding gera e grava dados sintéticos para desenvolvimento
package seeding

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

// Products é o conjunto de produtos usado nas vendas geradas
var Products = []string{"Laptop", "Phone", "Tablet", "Monitor", "Keyboard", "Mouse"}

const (
	minSaleAmount    = 100
	saleAmountSpread = 5000 // Valores em [100, 5100)
	activeThreshold  = 0.2  // ~80% dos clientes ativos
)

type Options struct {
	Sales     int
	Customers int
	SalesDays int
}

// Dataset é o conteúdo completo gravado pelo seed
type Dataset struct {
	Sales     []domain.Sale
	Inventory []domain.InventoryItem
	Customers []domain.Customer
}

// FixedInventory retorna os 10 itens de estoque do seed, dois deles sem estoque
func FixedInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{Product: "Laptop", Quantity: 25},
		{Product: "Phone", Quantity: 150},
		{Product: "Tablet", Quantity: 75},
		{Product: "Monitor", Quantity: 40},
		{Product: "Keyboard", Quantity: 0},
		{Product: "Mouse", Quantity: 200},
		{Product: "Headphones", Quantity: 85},
		{Product: "Webcam", Quantity: 0},
		{Product: "Speaker", Quantity: 30},
		{Product: "Charger", Quantity: 120},
	}
}

func Generate(rng *rand.Rand, now time.Time, opts Options) Dataset {
	return Dataset{
		Sales:     generateSales(rng, now, opts),
		Inventory: FixedInventory(),
		Customers: generateCustomers(rng, opts.Customers),
	}
}

func generateSales(rng *rand.Rand, now time.Time, opts Options) []domain.Sale {
	days := opts.SalesDays
	if days <= 0 {
		days = 1
	}

	sales := make([]domain.Sale, 0, opts.Sales)
	for i := 0; i < opts.Sales; i++ {
		sales = append(sales, domain.Sale{
			Date:    now.AddDate(0, 0, -rng.Intn(days)),
			Amount:  float64(rng.Intn(saleAmountSpread) + minSaleAmount),
			Product: Products[rng.Intn(len(Products))],
		})
	}

	return sales
}

func generateCustomers(rng *rand.Rand, count int) []domain.Customer {
	customers := make([]domain.Customer, 0, count)
	for i := 1; i <= count; i++ {
		customers = append(customers, domain.Customer{
			Name:          fmt.Sprintf("Customer %d", i),
			Email:         fmt.Sprintf("customer%d@example.com", i),
			Active:        rng.Float64() > activeThreshold,
			RetentionRate: rng.Float64() * 100,
		})
	}

	return customers
}
