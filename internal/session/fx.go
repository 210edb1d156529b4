package session

import (
	"github.com/kerbside/kerbside/internal/session/service"
	"github.com/kerbside/kerbside/internal/session/store"
	"go.uber.org/fx"
)

var Module = fx.Module("session.service",
	fx.Provide(store.New),
	fx.Provide(service.NewService),
)
