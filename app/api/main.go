package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/database/redisclient"
	"github.com/x-xyz/ensgo/base/env"
	"github.com/x-xyz/ensgo/base/goroutine"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/base/metrics"
	bValidator "github.com/x-xyz/ensgo/base/validator"
	"github.com/x-xyz/ensgo/domain"
	mmiddleware "github.com/x-xyz/ensgo/middleware"
	"github.com/x-xyz/ensgo/service/cache"
	compoundcache "github.com/x-xyz/ensgo/service/cache/compoundCache"
	"github.com/x-xyz/ensgo/service/cache/provider"
	"github.com/x-xyz/ensgo/service/cache/provider/primitive"
	redisprovider "github.com/x-xyz/ensgo/service/cache/provider/redis"
	"github.com/x-xyz/ensgo/service/ccip"
	"github.com/x-xyz/ensgo/service/chain"
	"github.com/x-xyz/ensgo/service/ens"
	"github.com/x-xyz/ensgo/service/redis"
	ens_delivery "github.com/x-xyz/ensgo/stores/ens/delivery/http"
	ens_usecase "github.com/x-xyz/ensgo/stores/ens/usecase"
	hc_delivery "github.com/x-xyz/ensgo/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/ensgo/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/ensgo/stores/healthcheck/usecase"
)

const (
	defaultSizeMB = 64
	recordTtl     = 5 * time.Minute
	absentTtl     = time.Minute
)

func init() {
	configPath := `infra/configs/config.yaml`
	if p := env.ConfigPath(); p != "" {
		configPath = p
	}
	viper.SetConfigType("yaml")
	viper.SetConfigFile(configPath)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.SetLevel("debug")
		log.Log().Info("Service RUN on DEBUG mode")
	} else if lvl := viper.GetString("log.level"); lvl != "" {
		if err := log.SetLevel(lvl); err != nil {
			log.Log().WithField("level", lvl).Warn("unknown log level")
		}
	}
}

func main() {
	context := ctx.Background()

	chainId := domain.ChainId(viper.GetInt32("ens.chainId"))
	if chainId == 0 {
		chainId = domain.ChainIdMainnet
	}
	deployment := domain.ChainIdDeploymentMap[chainId]
	universalResolver := deployment.UniversalResolver
	if addr := viper.GetString("ens.universalResolver"); addr != "" {
		universalResolver = domain.Address(addr)
	}
	multicall := domain.Multicall3Address
	if addr := viper.GetString("ens.multicall"); addr != "" {
		multicall = domain.Address(addr)
	}
	if !universalResolver.IsValid() {
		context.WithField("chainId", chainId).Panic("no universal resolver for chain")
	}

	// init chain service
	context.Info("init chain")
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:     map[domain.ChainId]string{chainId: viper.GetString("ens.rpcUrl")},
		MaxInflight: viper.GetInt("ens.maxInflight"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	rpcCaller, err := chainService.Caller(chainId)
	if err != nil {
		context.WithFields(log.Fields{"chainId": chainId, "err": err}).Panic("no rpc for chain")
	}

	// offchain lookups
	gateway := ccip.NewGateway(ccip.GatewayCfg{
		HttpClient: &http.Client{},
		Timeout:    viper.GetDuration("ccip.timeout"),
	})
	ccipHandler := ccip.NewHandler(ccip.HandlerCfg{
		UniversalResolver: universalResolver.ToCommon(),
		Gateway:           gateway,
		Concurrency:       viper.GetInt("ccip.concurrency"),
	})
	ccipCaller := ccip.NewCaller(ccip.CallerCfg{
		Caller:       rpcCaller,
		Handler:      ccipHandler,
		MaxRedirects: viper.GetInt("ccip.maxRedirects"),
	})

	ensClient := ens.New(ens.Config{
		Caller:              ccipCaller,
		UniversalResolver:   universalResolver.ToCommon(),
		Multicall:           multicall.ToCommon(),
		GatewayURLs:         viper.GetStringSlice("ens.gatewayUrls"),
		Offchain:            ccipHandler,
		OffchainConcurrency: viper.GetInt("ccip.concurrency"),
		MaxRedirects:        viper.GetInt("ccip.maxRedirects"),
	})

	// init cache layers
	sizeMB := viper.GetInt("cache.sizeMB")
	if sizeMB <= 0 {
		sizeMB = defaultSizeMB
	}
	local := primitive.NewPrimitive("ens", sizeMB)
	var (
		shared     provider.Provider
		redisCache redis.Service
	)
	if uri := viper.GetString("redis_cache.uri"); uri != "" {
		context.Info("init redis cache")
		redisCachePool := redisclient.MustConnectRedis(uri, viper.GetString("redis_cache.password"), redisclient.RedisParam{
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retry:          true,
		})
		redisCache = redis.New("redis_cache", metrics.New("redis_cache"), redisCachePool)
		shared = redisprovider.NewRedis(redisCache)
	}

	layers := []cache.Service{cache.New(cache.ServiceConfig{
		Ttl:       recordTtl,
		AbsentTtl: absentTtl,
		Pfx:       "ens",
		Cache:     local,
	})}
	if shared != nil {
		layers = append(layers, cache.New(cache.ServiceConfig{
			Ttl:       recordTtl,
			AbsentTtl: absentTtl,
			Pfx:       "ens",
			Cache:     shared,
		}))
	}
	recordCache := compoundcache.NewCompoundCache(layers)

	// construct repository, usecase and delivery
	ensUsecase := ens_usecase.New(&ens_usecase.UsecaseCfg{
		Client: ensClient,
		Cache:  recordCache,
	})
	hcRepo := hc_repo.New(chainService, chainId, universalResolver.ToCommon(), redisCache)
	hcUsecase := hc_usecase.New(hcRepo)

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS)
	e.Validator = bValidator.NewCustomValidator(validator.New())

	httpCache := mmiddleware.CacheHttp(mmiddleware.HttpCacheCfg{
		Ttl:    viper.GetDuration("cache.ttl"),
		Local:  local,
		Shared: shared,
	})
	ens_delivery.New(e, ensUsecase, httpCache)
	hc_delivery.New(e, hcUsecase)

	// Start server
	panicChan := goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			context.WithField("err", err).Error("shutting down the server")
		}
	})

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case p, ok := <-panicChan:
		if ok {
			log.Log().WithField("panic", p.Panic).Error("server panicked")
		}
	}

	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		context.WithField("err", err).Error("server shutdown failed")
	}
	_ = log.Sync()
}
