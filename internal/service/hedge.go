package service

// Hedge suggestions returned by Suggest.
const (
	SuggestBuy  = "BUY"
	SuggestSell = "SELL"
	SuggestHold = "HOLD"
)

// Urgency multipliers by distance to maturity. An overdue contract (negative
// daysLeft) is scored like one due within the week.
const (
	urgencyNear = 1.8 // due within 7 days, or overdue
	urgencyMid  = 1.3 // due within 30 days
	urgencyFar  = 1.0

	suggestThreshold = 50.0
)

// Suggest scores a contract's exposure under a scenario shock and maps it to
// a hedge action. Pure and deterministic: exposure is the notional scaled by
// the scenario percentage, amplified as maturity approaches. A zero scenario
// always collapses to HOLD.
func Suggest(notional, scenarioPct float64, daysLeft int) string {
	exposure := notional * scenarioPct / 100.0

	urgency := urgencyFar
	switch {
	case daysLeft <= 7:
		urgency = urgencyNear
	case daysLeft <= 30:
		urgency = urgencyMid
	}

	score := exposure * urgency

	switch {
	case score >= suggestThreshold:
		return SuggestSell
	case score <= -suggestThreshold:
		return SuggestBuy
	default:
		return SuggestHold
	}
}
