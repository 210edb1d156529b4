package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/kerbside/kerbside/internal/config"
	"github.com/kerbside/kerbside/internal/observability/logger"
	"github.com/kerbside/kerbside/internal/observability/metrics"
	sessiondomain "github.com/kerbside/kerbside/internal/session/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Server struct {
	cfg        config.Config
	log        *zap.Logger
	sessionSvc sessiondomain.Service
	limiter    *rateLimiter
}

type Params struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	SessionSvc sessiondomain.Service
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		sessionSvc: p.SessionSvc,
		limiter:    newRateLimiter(p.Cfg.RateLimit.Limit, p.Cfg.RateLimit.Window),
	}
}

// NewEngine assembles the gin engine with the ambient middleware chain:
// request logging with ids, HTTP metrics, panic recovery, and the fixed
// unmatched-route envelope.
func NewEngine(cfg config.Config, log *zap.Logger, node *snowflake.Node, m *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(
		logger.GinMiddleware(log, node),
		metrics.GinMiddleware(m),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": msgInternalError,
				"error":   fmt.Sprint(recovered),
			})
		}),
	)
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": msgRouteNotFound,
		})
	})
	return e
}

func (s *Server) RegisterRoutes(e *gin.Engine, m *metrics.HTTPMetrics) {
	api := e.Group("/api/parking")

	api.POST("/session/enter", s.rateLimited(), s.EnterParking)
	api.POST("/session/:sessionId/exit", s.rateLimited(), s.ExitParking)
	api.GET("/session/:sessionId", s.GetSession)
	api.GET("/sessions", s.ListSessions)
	api.POST("/admin/clear", s.rateLimited(), s.ClearSessions)
	api.GET("/health", s.Health)

	e.GET("/metrics", gin.WrapH(m.Handler()))
}

func (s *Server) rateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": msgTooManyRequests,
			})
			return
		}
		c.Next()
	}
}

// RunHTTP binds the HTTP server to the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, e *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: e,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("parking lot billing system listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
