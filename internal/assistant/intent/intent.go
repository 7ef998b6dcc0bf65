// Package intent classifies chat messages and extracts their parameters.
package intent

import "strings"

type Intent string

const (
	Payroll        Intent = "payroll"
	CustomerOrders Intent = "customer_orders"
	Unknown        Intent = "unknown"
)

func (i Intent) String() string { return string(i) }

var (
	payrollKeywords  = []string{"payroll", "salary", "payment", "earnings", "income"}
	timeKeywords     = []string{"week", "month", "year", "period", "range"}
	customerKeywords = []string{"customer", "client", "order", "project", "work"}
)

type rule struct {
	matches func(lower string) bool
	intent  Intent
}

// Evaluated in order; the first matching rule decides. Payroll must stay ahead
// of CustomerOrders: "show this month's orders" is a payroll question.
var rules = []rule{
	{func(s string) bool { return containsAny(s, payrollKeywords) || containsAny(s, timeKeywords) }, Payroll},
	{func(s string) bool { return containsAny(s, customerKeywords) }, CustomerOrders},
}

// Classify maps a message to an intent by case-insensitive substring matching.
func Classify(message string) Intent {
	lower := strings.ToLower(message)
	for _, r := range rules {
		if r.matches(lower) {
			return r.intent
		}
	}
	return Unknown
}

// ExtractCustomerName returns the trimmed text after the first "customer", or
// failing that after the first "for". Tokens match case-insensitively and the
// suffix keeps the caller's casing. It returns "" when neither token occurs or
// nothing follows it.
func ExtractCustomerName(message string) string {
	lower := strings.ToLower(message)
	if len(lower) != len(message) {
		// Case folding changed byte offsets; fall back to the folded text.
		message = lower
	}
	for _, token := range []string{"customer", "for"} {
		if i := strings.Index(lower, token); i >= 0 {
			return strings.TrimSpace(message[i+len(token):])
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
