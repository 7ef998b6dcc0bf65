// Package response renders query results as the assistant's reply text.
package response

import (
	"fmt"
	"strings"

	"payroll-assistant/internal/models"
)

const (
	UnknownIntent = "I can help you with payroll information and customer order details. Try asking about:\n" +
		"• Payroll for this week, month, year, or last month\n" +
		"• Orders for a specific customer\n" +
		"• Custom date ranges for payroll"

	UnrecognizedPeriod = "I couldn't understand the time period. Please specify 'this week', 'this month', " +
		"'this year', 'last month', or use 'from YYYY-MM-DD to YYYY-MM-DD' format."

	MissingCustomerName = "Please specify a customer name. For example: 'Show orders for John Smith' or 'Customer John Smith'"

	PayrollFailure  = "Sorry, I encountered an error while fetching payroll information."
	CustomerFailure = "Sorry, I encountered an error while fetching customer information."
)

// Money formats an amount with two decimals, a literal "$" and no grouping.
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func PayrollSummary(r models.DateRange, total float64) string {
	return fmt.Sprintf("**%s Payroll Summary**\n\nTotal Amount: %s\nPeriod: %s to %s",
		r.Label, Money(total), r.Start, r.End)
}

func NoOrders(name string) string {
	return "No orders found for customer: " + name
}

// Orders renders a numbered list in the order given. Each entry ends with a
// blank line; the description line is left out when empty.
func Orders(name string, orders []models.OrderRecord) string {
	if len(orders) == 0 {
		return NoOrders(name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Orders for %s**\n\n", name)
	for i, o := range orders {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, o.ProjectName)
		fmt.Fprintf(&b, "   Date: %s\n", o.OrderDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "   Amount: %s\n", Money(o.TotalAmount))
		fmt.Fprintf(&b, "   Status: %s\n", o.Status)
		if o.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", o.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
