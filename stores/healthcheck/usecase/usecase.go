package usecase

import (
	"golang.org/x/xerrors"

	"github.com/x-xyz/ensgo/base/ctx"
	hcdomain "github.com/x-xyz/ensgo/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates a readiness check over the rpc endpoint and the shared cache
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

// Check stops at the first unreachable dependency and names it in the error
func (im *impl) Check(c ctx.Ctx) error {
	if err := im.repo.PingChain(c); err != nil {
		return xerrors.Errorf("chain: %w", err)
	}
	if err := im.repo.PingCache(c); err != nil {
		return xerrors.Errorf("cache: %w", err)
	}
	return nil
}
