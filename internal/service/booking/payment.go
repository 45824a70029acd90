package booking

import "time"

// validCard decides the simulated payment outcome. The rules stand in for a
// gateway response: a plausible 16-digit number with an unexpired date and a
// 3-4 digit CVV is approved, anything else declines.
func validCard(card PaymentCard, now time.Time) bool {
	if len(card.CardNumber) != 16 || !allDigits(card.CardNumber) {
		return false
	}
	if len(card.CVV) < 3 || len(card.CVV) > 4 || !allDigits(card.CVV) {
		return false
	}
	if card.ExpiryMonth < 1 || card.ExpiryMonth > 12 {
		return false
	}
	if card.ExpiryYear < now.Year() {
		return false
	}
	if card.ExpiryYear == now.Year() && card.ExpiryMonth < int(now.Month()) {
		return false
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
