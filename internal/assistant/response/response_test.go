package response

import (
	"strings"
	"testing"
	"time"

	"payroll-assistant/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$1234.50", Money(1234.5))
	assert.Equal(t, "$57600.00", Money(57600))
	assert.Equal(t, "$0.13", Money(0.125000001))
}

func TestPayrollSummary(t *testing.T) {
	r := models.DateRange{Start: "2024-01-14", End: "2024-01-20", Label: "This Week"}

	assert.Equal(t,
		"**This Week Payroll Summary**\n\nTotal Amount: $1200.00\nPeriod: 2024-01-14 to 2024-01-20",
		PayrollSummary(r, 1200))
	assert.Contains(t, PayrollSummary(r, 0), "Total Amount: $0.00")
	assert.Contains(t, PayrollSummary(r, 1234.5), "Total Amount: $1234.50")
}

func TestOrders(t *testing.T) {
	orders := []models.OrderRecord{
		{
			ProjectName: "Website Redesign",
			OrderDate:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			TotalAmount: 2500,
			Status:      "Completed",
			Description: "Complete website overhaul for Smith Corp",
		},
		{
			ProjectName: "Logo Design",
			OrderDate:   time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			TotalAmount: 500.5,
			Status:      "Completed",
		},
	}

	want := "**Orders for john smith**\n\n" +
		"1. **Website Redesign**\n" +
		"   Date: 2024-01-15\n" +
		"   Amount: $2500.00\n" +
		"   Status: Completed\n" +
		"   Description: Complete website overhaul for Smith Corp\n" +
		"\n" +
		"2. **Logo Design**\n" +
		"   Date: 2024-01-10\n" +
		"   Amount: $500.50\n" +
		"   Status: Completed\n" +
		"\n"

	assert.Equal(t, want, Orders("john smith", orders))
}

func TestOrders_Empty(t *testing.T) {
	assert.Equal(t, "No orders found for customer: smith corp", Orders("smith corp", nil))
}

func TestFixedStrings(t *testing.T) {
	assert.True(t, strings.HasPrefix(UnknownIntent, "I can help you with payroll information"))
	assert.Contains(t, UnrecognizedPeriod, "'from YYYY-MM-DD to YYYY-MM-DD'")
	assert.Contains(t, MissingCustomerName, "'Customer John Smith'")
}
