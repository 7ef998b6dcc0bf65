// internal/models/payroll.go
package models

import "time"

// DateRange is an inclusive [Start, End] pair of YYYY-MM-DD dates with a display label.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type PayrollRecord struct {
	ID          int64     `json:"id"`
	AgentID     int64     `json:"agentId"`
	Amount      float64   `json:"amount"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	PaymentDate time.Time `json:"paymentDate"`
}
