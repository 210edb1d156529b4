package service

import (
	"context"
	"time"

	billingdomain "github.com/kerbside/kerbside/internal/billing/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log *zap.Logger
}

type ServiceParam struct {
	fx.In

	Log *zap.Logger
}

func NewService(p ServiceParam) billingdomain.Service {
	return &Service{
		log: p.Log.Named("billing.service"),
	}
}

// Calculate runs the fee pipeline in its fixed order and assembles the
// breakdown. Stages always receive the full-precision value from the prior
// stage; the rounded copies stored in the breakdown are display-only and
// never feed back into the computation. The pipeline is total: every input,
// including a negative duration, produces a numeric result.
func (s *Service) Calculate(ctx context.Context, entryTime, exitTime time.Time, opts billingdomain.Options) billingdomain.Breakdown {
	duration := billingdomain.ParkingDuration(entryTime, exitTime)
	billableHours := billingdomain.BillableHours(duration)
	baseFee := billingdomain.BaseFee(float64(billableHours))

	subtotal := billingdomain.ApplyDailyCap(baseFee)
	subtotal = billingdomain.ApplyLostTicketFee(subtotal, opts.IsLostTicket)
	subtotal = billingdomain.ApplyPromoCode(subtotal, opts.PromoCode)
	finalAmount := billingdomain.FinalizeAmount(subtotal)

	promoCode := billingdomain.PromoNone
	if opts.PromoCode != nil && *opts.PromoCode != "" {
		promoCode = *opts.PromoCode
	}

	breakdown := billingdomain.Breakdown{
		Duration:      billingdomain.Round2(duration),
		BillableHours: billableHours,
		BaseFee:       billingdomain.Round2(baseFee),
		AfterCap:      billingdomain.Round2(subtotal),
		HasLostTicket: opts.IsLostTicket,
		PromoCode:     promoCode,
		FinalAmount:   finalAmount,
	}

	s.log.Debug("bill calculated",
		zap.Float64("duration_hours", breakdown.Duration),
		zap.Int("billable_hours", breakdown.BillableHours),
		zap.Float64("final_amount", breakdown.FinalAmount),
		zap.Bool("lost_ticket", breakdown.HasLostTicket),
		zap.String("promo_code", breakdown.PromoCode),
	)
	return breakdown
}
