package domain

import (
	"math"
	"time"
)

// ParkingDuration returns the elapsed time between entry and exit in hours,
// unrounded. Exit before entry yields a negative duration; nothing in the
// pipeline guards against it and the sign propagates to the final amount.
func ParkingDuration(entryTime, exitTime time.Time) float64 {
	return exitTime.Sub(entryTime).Hours()
}

// BillableHours rounds a duration up to the next whole billable hour.
// Exact integers stay as-is: 2.0 bills as 2, 2.1 bills as 3.
func BillableHours(durationHours float64) int {
	return int(math.Ceil(durationHours))
}

// BaseFee prices a number of hours at the flat hourly rate.
func BaseFee(hours float64) float64 {
	return hours * HourlyRate
}

// ApplyDailyCap clamps a fee to the maximum daily charge. The cap bounds the
// base fee only; the pipeline never re-applies it after surcharges or
// discounts are layered on.
func ApplyDailyCap(fee float64) float64 {
	return math.Min(fee, MaxDailyCharge)
}

// ApplyLostTicketFee adds the flat lost-ticket surcharge when the ticket was
// reported lost.
func ApplyLostTicketFee(fee float64, isLostTicket bool) float64 {
	if isLostTicket {
		return fee + LostTicketFee
	}
	return fee
}

// ApplyPromoCode reduces the fee by the code's percentage. The discount base
// is whatever fee arrives at this stage, so with a lost ticket the surcharge
// is itself discounted.
func ApplyPromoCode(fee float64, promoCode *string) float64 {
	if promoCode == nil {
		return fee
	}
	switch *promoCode {
	case PromoSave10:
		return fee - fee*0.10
	case PromoSave5:
		return fee - fee*0.05
	default:
		return fee
	}
}

// FinalizeAmount applies the tax rate to the post-discount subtotal and
// rounds the sum to currency precision.
func FinalizeAmount(subtotal float64) float64 {
	return Round2(subtotal + subtotal*TaxRate)
}
