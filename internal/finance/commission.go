package finance

import "github.com/shopspring/decimal"

// DefaultCommissionPercent is the flat platform cut applied when no
// commission rule matches a booking. It covers two cases: no active rules
// configured at all, and rules configured but every minimum-booking-value
// threshold above the booking total.
var DefaultCommissionPercent = decimal.NewFromInt(15)

var oneHundred = decimal.NewFromInt(100)

// SelectRule walks rules in the given order and returns the first whose
// MinBookingValue is unset or at most total. First match wins; later rules
// are not considered even if they would produce a smaller commission.
// Callers pass rules already sorted by priority descending.
func SelectRule(rules []CommissionRule, total decimal.Decimal) *CommissionRule {
	for i := range rules {
		r := &rules[i]
		if r.MinBookingValue == nil || total.GreaterThanOrEqual(*r.MinBookingValue) {
			return r
		}
	}
	return nil
}

// CommissionFor resolves the platform commission for a booking total against
// the active rule set, rounded half-up to 2 decimal places.
func CommissionFor(rules []CommissionRule, total decimal.Decimal) decimal.Decimal {
	rule := SelectRule(rules, total)
	if rule == nil {
		return total.Mul(DefaultCommissionPercent).Div(oneHundred).Round(2)
	}

	var amount decimal.Decimal
	switch rule.Type {
	case RulePercentage:
		amount = total.Mul(rule.Value).Div(oneHundred)
	case RuleFixed:
		amount = rule.Value
	default:
		// Unknown rule types fall back to the flat default rather than
		// silently charging zero.
		amount = total.Mul(DefaultCommissionPercent).Div(oneHundred)
	}

	if rule.MaxCommission != nil && amount.GreaterThan(*rule.MaxCommission) {
		amount = *rule.MaxCommission
	}

	return amount.Round(2)
}
