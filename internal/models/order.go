// internal/models/order.go
package models

import "time"

// OrderRecord is one customer order. An empty Description means none was recorded.
type OrderRecord struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	ProjectName  string    `json:"projectName"`
	OrderDate    time.Time `json:"orderDate"`
	TotalAmount  float64   `json:"totalAmount"`
	Status       string    `json:"status"`
	Description  string    `json:"description,omitempty"`
}
