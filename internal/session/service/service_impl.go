package service

import (
	"context"
	"time"

	billingdomain "github.com/kerbside/kerbside/internal/billing/domain"
	"github.com/kerbside/kerbside/internal/cache"
	"github.com/kerbside/kerbside/internal/clock"
	"github.com/kerbside/kerbside/internal/config"
	sessiondomain "github.com/kerbside/kerbside/internal/session/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	store   sessiondomain.Store
	billing billingdomain.Service
	clock   clock.Clock
	log     *zap.Logger

	// Completed sessions are immutable, so lookups may be served from a TTL
	// cache in front of the sqlite/redis stores. Active sessions are never
	// cached.
	sessions cache.Cache[int64, sessiondomain.Session]
	cacheTTL time.Duration
}

type ServiceParam struct {
	fx.In

	Cfg     config.Config
	Store   sessiondomain.Store
	Billing billingdomain.Service
	Clock   clock.Clock
	Log     *zap.Logger
}

func NewService(p ServiceParam) sessiondomain.Service {
	var sessions cache.Cache[int64, sessiondomain.Session] = cache.NoopCache[int64, sessiondomain.Session]{}
	if p.Cfg.SessionCacheTTL > 0 && p.Cfg.Store.Driver != config.StoreDriverMemory {
		sessions = cache.NewTTLCache[int64, sessiondomain.Session]()
	}
	return &Service{
		store:    p.Store,
		billing:  p.Billing,
		clock:    p.Clock,
		log:      p.Log.Named("session.service"),
		sessions: sessions,
		cacheTTL: p.Cfg.SessionCacheTTL,
	}
}

func (s *Service) Enter(ctx context.Context, vehicleID string) (sessiondomain.Session, error) {
	sess, err := s.store.Create(ctx, vehicleID, s.clock.Now())
	if err != nil {
		return sessiondomain.Session{}, err
	}
	s.log.Info("parking session started",
		zap.Int64("session_id", sess.SessionID),
		zap.String("vehicle_id", sess.VehicleID),
	)
	return sess, nil
}

// Exit completes the session and runs the billing pipeline on its recorded
// entry/exit pair. Exiting an already-completed session recomputes the same
// bill from the stored exit time rather than moving it.
func (s *Service) Exit(ctx context.Context, id int64, opts billingdomain.Options) (sessiondomain.Session, billingdomain.Breakdown, error) {
	sess, err := s.store.Complete(ctx, id, s.clock.Now())
	if err != nil {
		return sessiondomain.Session{}, billingdomain.Breakdown{}, err
	}
	bill := s.billing.Calculate(ctx, sess.EntryTime, *sess.ExitTime, opts)
	s.sessions.Set(sess.SessionID, sess, s.cacheTTL)

	s.log.Info("parking session completed",
		zap.Int64("session_id", sess.SessionID),
		zap.String("vehicle_id", sess.VehicleID),
		zap.Float64("final_amount", bill.FinalAmount),
	)
	return sess, bill, nil
}

func (s *Service) Get(ctx context.Context, id int64) (sessiondomain.Session, error) {
	if sess, ok := s.sessions.Get(id); ok {
		return sess, nil
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return sessiondomain.Session{}, err
	}
	if sess.Status == sessiondomain.StatusCompleted {
		s.sessions.Set(id, sess, s.cacheTTL)
	}
	return sess, nil
}

func (s *Service) List(ctx context.Context) ([]sessiondomain.Session, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.sessions.Flush()
	s.log.Info("all parking sessions cleared")
	return nil
}
