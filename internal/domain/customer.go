package domain

type Customer struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Active        bool    `json:"active"`
	RetentionRate float64 `json:"retentionRate"` // Percentual entre 0 e 100
}
