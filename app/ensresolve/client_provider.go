package main

import (
	"net/http"

	"github.com/spf13/viper"

	bCtx "github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/domain"
	"github.com/x-xyz/ensgo/service/ccip"
	"github.com/x-xyz/ensgo/service/chain"
	"github.com/x-xyz/ensgo/service/ens"
)

// newEnsClient builds the rpc, offchain and resolution stack from the loaded config
func newEnsClient(ctx bCtx.Ctx) *ens.Client {
	chainId := domain.ChainId(viper.GetInt32("ens.chainId"))
	if chainId == 0 {
		chainId = domain.ChainIdMainnet
	}
	universalResolver := domain.ChainIdDeploymentMap[chainId].UniversalResolver
	if addr := viper.GetString("ens.universalResolver"); addr != "" {
		universalResolver = domain.Address(addr)
	}
	if !universalResolver.IsValid() {
		ctx.WithField("chainId", chainId).Panic("no universal resolver for chain")
	}

	chainService, err := chain.NewClient(ctx, &chain.ClientCfg{
		RpcUrls: map[domain.ChainId]string{chainId: viper.GetString("ens.rpcUrl")},
	})
	if err != nil {
		ctx.WithField("err", err).Panic("chain.NewClient failed")
	}
	rpcCaller, err := chainService.Caller(chainId)
	if err != nil {
		ctx.WithField("err", err).Panic("no rpc for chain")
	}

	handler := ccip.NewHandler(ccip.HandlerCfg{
		UniversalResolver: universalResolver.ToCommon(),
		Gateway: ccip.NewGateway(ccip.GatewayCfg{
			HttpClient: &http.Client{},
			Timeout:    viper.GetDuration("ccip.timeout"),
		}),
		Concurrency: viper.GetInt("ccip.concurrency"),
	})
	cfg := ens.Config{
		Caller: ccip.NewCaller(ccip.CallerCfg{
			Caller:       rpcCaller,
			Handler:      handler,
			MaxRedirects: viper.GetInt("ccip.maxRedirects"),
		}),
		UniversalResolver:   universalResolver.ToCommon(),
		GatewayURLs:         viper.GetStringSlice("ens.gatewayUrls"),
		Offchain:            handler,
		OffchainConcurrency: viper.GetInt("ccip.concurrency"),
		MaxRedirects:        viper.GetInt("ccip.maxRedirects"),
	}
	if addr := viper.GetString("ens.multicall"); addr != "" {
		cfg.Multicall = domain.Address(addr).ToCommon()
	}
	return ens.New(cfg)
}
