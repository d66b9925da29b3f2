package healthcheck

import (
	"github.com/x-xyz/ensgo/base/ctx"
)

// HealthCheckUsecase decides whether the service can serve resolutions
type HealthCheckUsecase interface {
	Check(c ctx.Ctx) error
}

// HealthCheckRepo pings the dependencies a resolution needs. PingCache is a
// no-op when no shared cache is configured.
type HealthCheckRepo interface {
	PingChain(c ctx.Ctx) error
	PingCache(c ctx.Ctx) error
}
