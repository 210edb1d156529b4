package domain

import (
	"context"

	billingdomain "github.com/kerbside/kerbside/internal/billing/domain"
)

// Service drives the session lifecycle and invokes the billing pipeline on
// exit.
type Service interface {
	Enter(ctx context.Context, vehicleID string) (Session, error)
	Exit(ctx context.Context, id int64, opts billingdomain.Options) (Session, billingdomain.Breakdown, error)
	Get(ctx context.Context, id int64) (Session, error)
	List(ctx context.Context) ([]Session, error)
	Clear(ctx context.Context) error
}
