package repository

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/ensname"
	"github.com/x-xyz/ensgo/domain"
	hcdomain "github.com/x-xyz/ensgo/domain/healthcheck"
	"github.com/x-xyz/ensgo/service/chain"
	"github.com/x-xyz/ensgo/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	chain             chain.Client
	chainId           domain.ChainId
	universalResolver common.Address
	redisCache        redis.Service
}

// New creates new healthCheckRepo. redisCache may be nil when no shared cache is configured.
func New(
	chain chain.Client,
	chainId domain.ChainId,
	universalResolver common.Address,
	redisCache redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		chain:             chain,
		chainId:           chainId,
		universalResolver: universalResolver,
		redisCache:        redisCache,
	}
}

// PingChain asks the universal resolver for the resolver of eth
func (im *impl) PingChain(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	findResolver := bAbi.UniversalResolverABI.Methods["findResolver"]
	if _, err := im.chain.Call(ctx, im.chainId, im.universalResolver, nil, findResolver, ensname.Packet("eth")); err != nil {
		context.WithField("err", err).Error("ping chain error")
		return err
	}
	return nil
}

func (im *impl) PingCache(context ctx.Ctx) error {
	if im.redisCache == nil {
		return nil
	}
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.redisCache.Ping(ctx); err != nil {
		context.WithField("err", err).Error("ping redis error")
		return err
	}
	return nil
}
