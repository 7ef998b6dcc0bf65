package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"payroll for this month", Payroll},
		{"what's my salary", Payroll},
		{"Show my EARNINGS", Payroll},
		{"anything for the period", Payroll},
		{"orders for John Smith", CustomerOrders},
		{"Customer Sarah Johnson", CustomerOrders},
		{"what projects do we have", CustomerOrders},
		{"hello", Unknown},
		{"", Unknown},
		// time keyword wins over the customer keyword
		{"show this month's orders", Payroll},
		{"client work this year", Payroll},
		// substring matching: "network" contains "work"
		{"network status", CustomerOrders},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestExtractCustomerName(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"customer John Smith", "John Smith"},
		{"orders for Jane Doe", "Jane Doe"},
		{"show orders for smith corp", "smith corp"},
		{"Orders FOR Smith Corp", "Smith Corp"},
		{"hello", ""},
		{"orders for   ", ""},
		{"customer orders for Mike", "orders for Mike"},
		{"for Customer Emily Davis", "Emily Davis"},
		{"orders for customers named David", "s named David"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCustomerName(tt.message))
		})
	}
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "customer_orders", CustomerOrders.String())
}
