package store

import (
	"context"
	"fmt"

	"github.com/kerbside/kerbside/internal/config"
	sessiondomain "github.com/kerbside/kerbside/internal/session/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger
	LC  fx.Lifecycle
}

// New builds the Store selected by STORE_DRIVER. The memory driver is the
// default; sqlite and redis exist for deployments that want the registry to
// survive restarts.
func New(p Params) (sessiondomain.Store, error) {
	log := p.Log.Named("session.store")

	switch p.Cfg.Store.Driver {
	case config.StoreDriverMemory:
		log.Info("using in-memory session store")
		return NewMemoryStore(), nil

	case config.StoreDriverSQLite:
		db, err := gorm.Open(sqlite.Open(p.Cfg.Store.SQLiteDSN), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		p.LC.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
		log.Info("using sqlite session store", zap.String("dsn", p.Cfg.Store.SQLiteDSN))
		return NewGormStore(db)

	case config.StoreDriverRedis:
		opt, err := redis.ParseURL(p.Cfg.Store.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		client := redis.NewClient(opt)
		p.LC.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			},
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		log.Info("using redis session store", zap.String("addr", opt.Addr))
		return NewRedisStore(client), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", p.Cfg.Store.Driver)
	}
}
