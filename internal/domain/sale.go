package domain

import "time"

// Sale representa uma venda registrada. Imutável depois de criada.
type Sale struct {
	ID      int       `json:"id"`
	Date    time.Time `json:"date"`
	Amount  float64   `json:"amount"`
	Product string    `json:"product"`
}

// TrendPoint é a soma das vendas de um intervalo da tendência
type TrendPoint struct {
	Bucket time.Time
	Amount float64
}
