package kost

import "time"

type Kost struct {
	ID         string
	OwnerID    string
	Name       string
	Location   string
	City       string
	KostType   string
	Price      float64
	Facilities []string
	Reviews    []Review
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Review: maksimal satu per reviewer per kost (di-upsert saat tulis).
type Review struct {
	Reviewer  string    `json:"reviewer"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
