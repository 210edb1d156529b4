package domain

import (
	"context"
	"time"
)

// Tariff constants for the single configured lot. Rates are flat; real-time
// rate changes are out of scope.
const (
	HourlyRate     = 5.00
	MaxDailyCharge = 20.00
	LostTicketFee  = 25.00
	TaxRate        = 0.08
)

// Recognized promo codes. Anything else is treated as no discount.
const (
	PromoSave10 = "SAVE10"
	PromoSave5  = "SAVE5"

	// PromoNone is the sentinel echoed in breakdowns when no code was supplied.
	PromoNone = "NONE"
)

// Options are the per-exit billing inputs supplied by the caller.
type Options struct {
	IsLostTicket bool    `json:"isLostTicket"`
	PromoCode    *string `json:"promoCode"`
}

// Breakdown exposes every intermediate and final monetary figure for a
// completed session. The currency-bearing fields are rounded to two decimals
// for display; the pipeline itself threads full-precision values between
// stages.
type Breakdown struct {
	Duration      float64 `json:"duration"`
	BillableHours int     `json:"billableHours"`
	BaseFee       float64 `json:"baseFee"`
	AfterCap      float64 `json:"afterCap"`
	HasLostTicket bool    `json:"hasLostTicket"`
	PromoCode     string  `json:"promoCode"`
	FinalAmount   float64 `json:"finalAmount"`
}

// Service computes a parking charge from a pair of timestamps and options.
type Service interface {
	Calculate(ctx context.Context, entryTime, exitTime time.Time, opts Options) Breakdown
}
