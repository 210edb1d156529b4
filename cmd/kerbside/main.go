package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/kerbside/kerbside/internal/billing"
	"github.com/kerbside/kerbside/internal/clock"
	"github.com/kerbside/kerbside/internal/config"
	"github.com/kerbside/kerbside/internal/observability/logger"
	"github.com/kerbside/kerbside/internal/observability/metrics"
	"github.com/kerbside/kerbside/internal/server"
	"github.com/kerbside/kerbside/internal/session"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		metrics.Module,

		billing.Module,
		session.Module,

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server, e *gin.Engine, m *metrics.HTTPMetrics) {
			s.RegisterRoutes(e, m)
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
