package domain

import "time"

// Order is a customer order. ProductName is a denormalized snapshot of
// the product at purchase time, not a reference into the catalog.
// Orders are write-once: no exposed operation mutates or deletes them.
type Order struct {
	ID           TaggedID  `json:"_id"`
	CustomerName string    `json:"customerName"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	ProductName  string    `json:"productName"`
	TotalPrice   float64   `json:"totalPrice"`
	Date         time.Time `json:"date"`
}
