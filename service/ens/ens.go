// Package ens builds, dispatches and decodes Universal Resolver calls for
// ENS records. Reads go through a domain.ContractCaller, normally a
// ccip.Caller so that offchain names resolve transparently.
package ens

import (
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	bCtx "github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/metrics"
	"github.com/x-xyz/ensgo/domain"
	"github.com/x-xyz/ensgo/service/ccip"
)

type Config struct {
	Caller            domain.ContractCaller
	UniversalResolver common.Address
	// Multicall is the aggregate3 target of Client.Batch, Multicall3Address when zero
	Multicall common.Address
	// GatewayURLs overrides the gateways of offchain resolvers when set
	GatewayURLs []string
	Metrics     metrics.Service
	// Offchain serves the lookups raised by batch items, whose reverts a
	// multicall cannot follow. Offchain batch items stay unresolved when nil.
	Offchain            ccip.RequestHandler
	OffchainConcurrency int
	// MaxRedirects bounds the lookup rounds of one batch, ccip.DefaultMaxRedirects when zero
	MaxRedirects int
}

type Client struct {
	caller            domain.ContractCaller
	universalResolver common.Address
	multicall         common.Address
	gatewayURLs       []string
	metrics           metrics.Service

	offchain            ccip.RequestHandler
	offchainConcurrency int
	maxRedirects        int
}

func New(cfg Config) *Client {
	if cfg.Multicall == (common.Address{}) {
		cfg.Multicall = domain.Multicall3Address.ToCommon()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New("ens")
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = ccip.DefaultMaxRedirects
	}
	return &Client{
		caller:            cfg.Caller,
		universalResolver: cfg.UniversalResolver,
		multicall:         cfg.Multicall,
		gatewayURLs:       cfg.GatewayURLs,
		metrics:           cfg.Metrics,

		offchain:            cfg.Offchain,
		offchainConcurrency: cfg.OffchainConcurrency,
		maxRedirects:        cfg.MaxRedirects,
	}
}

func (c *Client) UniversalResolver() common.Address {
	return c.universalResolver
}

func (c *Client) call(ctx bCtx.Ctx, to common.Address, data []byte) ([]byte, error) {
	return c.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}

func packCall(m abi.Method, args ...interface{}) ([]byte, error) {
	data, err := m.Inputs.Pack(args...)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, m.ID...), data...), nil
}
