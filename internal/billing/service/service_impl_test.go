package service

import (
	"context"
	"testing"
	"time"

	billingdomain "github.com/kerbside/kerbside/internal/billing/domain"
	"go.uber.org/zap"
)

func newTestService() billingdomain.Service {
	return NewService(ServiceParam{Log: zap.NewNop()})
}

func TestCalculateTwoHourStay(t *testing.T) {
	svc := newTestService()
	entry := time.Date(2026, 1, 29, 8, 0, 0, 0, time.UTC)
	exit := time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC)

	bill := svc.Calculate(context.Background(), entry, exit, billingdomain.Options{})

	if bill.Duration != 2 {
		t.Fatalf("expected duration 2, got %v", bill.Duration)
	}
	if bill.BillableHours != 2 {
		t.Fatalf("expected 2 billable hours, got %d", bill.BillableHours)
	}
	if bill.BaseFee != 10 {
		t.Fatalf("expected base fee 10, got %v", bill.BaseFee)
	}
	if bill.AfterCap != 10 {
		t.Fatalf("expected afterCap 10, got %v", bill.AfterCap)
	}
	if bill.FinalAmount != 10.80 {
		t.Fatalf("expected final amount 10.80, got %v", bill.FinalAmount)
	}
	if bill.PromoCode != billingdomain.PromoNone {
		t.Fatalf("expected promo code NONE, got %q", bill.PromoCode)
	}
	if bill.HasLostTicket {
		t.Fatal("expected hasLostTicket false")
	}
}

func TestCalculatePartialHourBillsUp(t *testing.T) {
	svc := newTestService()
	entry := time.Date(2026, 1, 29, 8, 0, 0, 0, time.UTC)
	exit := time.Date(2026, 1, 29, 10, 5, 0, 0, time.UTC)

	bill := svc.Calculate(context.Background(), entry, exit, billingdomain.Options{})

	// 2.083h displays as 2.08 but bills as 3 whole hours; the display
	// rounding never feeds the fee stages.
	if bill.Duration != 2.08 {
		t.Fatalf("expected duration 2.08, got %v", bill.Duration)
	}
	if bill.BillableHours != 3 {
		t.Fatalf("expected 3 billable hours, got %d", bill.BillableHours)
	}
	if bill.BaseFee != 15 {
		t.Fatalf("expected base fee 15, got %v", bill.BaseFee)
	}
	if bill.FinalAmount != 16.20 {
		t.Fatalf("expected final amount 16.20, got %v", bill.FinalAmount)
	}
}

func TestCalculateCappedWithLostTicket(t *testing.T) {
	svc := newTestService()
	entry := time.Date(2026, 1, 29, 8, 0, 0, 0, time.UTC)
	exit := entry.Add(6 * time.Hour)

	bill := svc.Calculate(context.Background(), entry, exit, billingdomain.Options{IsLostTicket: true})

	if bill.BaseFee != 30 {
		t.Fatalf("expected base fee 30, got %v", bill.BaseFee)
	}
	// Base capped to 20, then +25 surcharge; the cap is never re-applied.
	if bill.AfterCap != 45 {
		t.Fatalf("expected afterCap 45, got %v", bill.AfterCap)
	}
	if bill.FinalAmount != 48.60 {
		t.Fatalf("expected final amount 48.60, got %v", bill.FinalAmount)
	}
	if !bill.HasLostTicket {
		t.Fatal("expected hasLostTicket true")
	}
}

func TestCalculatePromoDiscountsSurcharge(t *testing.T) {
	svc := newTestService()
	entry := time.Date(2026, 1, 29, 8, 0, 0, 0, time.UTC)
	exit := entry.Add(6 * time.Hour)
	promo := billingdomain.PromoSave10

	bill := svc.Calculate(context.Background(), entry, exit, billingdomain.Options{
		IsLostTicket: true,
		PromoCode:    &promo,
	})

	// SAVE10 applies to the post-surcharge 45: 45 - 4.5 = 40.5.
	if bill.AfterCap != 40.5 {
		t.Fatalf("expected afterCap 40.5, got %v", bill.AfterCap)
	}
	if bill.FinalAmount != 43.74 {
		t.Fatalf("expected final amount 43.74, got %v", bill.FinalAmount)
	}
	if bill.PromoCode != billingdomain.PromoSave10 {
		t.Fatalf("expected promo code SAVE10, got %q", bill.PromoCode)
	}
}

func TestCalculateUnrecognizedPromo(t *testing.T) {
	svc := newTestService()
	entry := time.Date(2026, 1, 29, 8, 0, 0, 0, time.UTC)
	exit := entry.Add(2 * time.Hour)
	promo := "BOGUS"

	bill := svc.Calculate(context.Background(), entry, exit, billingdomain.Options{PromoCode: &promo})

	if bill.FinalAmount != 10.80 {
		t.Fatalf("expected final amount 10.80, got %v", bill.FinalAmount)
	}
	if bill.PromoCode != "BOGUS" {
		t.Fatalf("expected promo code echoed, got %q", bill.PromoCode)
	}
}

func TestCalculateNegativeDurationPassesThrough(t *testing.T) {
	svc := newTestService()
	entry := time.Date(2026, 1, 29, 8, 0, 0, 0, time.UTC)
	exit := entry.Add(-2 * time.Hour)

	bill := svc.Calculate(context.Background(), entry, exit, billingdomain.Options{})

	if bill.Duration != -2 {
		t.Fatalf("expected duration -2, got %v", bill.Duration)
	}
	if bill.BillableHours != -2 {
		t.Fatalf("expected -2 billable hours, got %d", bill.BillableHours)
	}
	// -10 is under the cap, so it flows straight through to a negative
	// charge. The pipeline is total; rejecting this is the caller's call via
	// IsValidFee.
	if bill.FinalAmount != -10.80 {
		t.Fatalf("expected final amount -10.80, got %v", bill.FinalAmount)
	}
	if billingdomain.IsValidFee(bill.FinalAmount) {
		t.Fatal("expected IsValidFee to reject the negative charge")
	}
}

func TestCalculateZeroDuration(t *testing.T) {
	svc := newTestService()
	entry := time.Date(2026, 1, 29, 8, 0, 0, 0, time.UTC)

	bill := svc.Calculate(context.Background(), entry, entry, billingdomain.Options{})

	if bill.BillableHours != 0 {
		t.Fatalf("expected 0 billable hours, got %d", bill.BillableHours)
	}
	if bill.FinalAmount != 0 {
		t.Fatalf("expected final amount 0, got %v", bill.FinalAmount)
	}
}
