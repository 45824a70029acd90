package pricing

import "time"

// Refund tiers for a confirmed booking, by cancellation timing:
//
//	more than 24h before departure  -> full refund
//	within 24h of departure         -> 50%
//	at or after departure           -> nothing
//
// The result is always within [0, finalPriceCents].
func Refund(finalPriceCents int64, departure, cancelledAt time.Time) int64 {
	if finalPriceCents <= 0 {
		return 0
	}
	until := departure.Sub(cancelledAt)
	switch {
	case until > 24*time.Hour:
		return finalPriceCents
	case until > 0:
		return roundHalfUp(float64(finalPriceCents) * 0.5)
	default:
		return 0
	}
}
