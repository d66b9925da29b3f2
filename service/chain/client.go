package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/x-xyz/ensgo/base/ctx"
	bEth "github.com/x-xyz/ensgo/base/ethereum"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/domain"
)

type ClientCfg struct {
	RpcUrls map[domain.ChainId]string
	// MaxInflight bounds the concurrent eth_calls of each chain, unbounded when zero
	MaxInflight int
}

type Client interface {
	Caller(chainId domain.ChainId) (domain.ContractCaller, error)
	Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, blk *big.Int, method abi.Method, params ...interface{}) ([]interface{}, error)
}

type clientImpl struct {
	callers map[domain.ChainId]domain.ContractCaller
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var (
		anyerr error
	)
	callers := make(map[domain.ChainId]domain.ContractCaller)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		if cfg.MaxInflight > 0 {
			callers[chainId] = bEth.NewThrottledCaller(client, cfg.MaxInflight)
		} else {
			callers[chainId] = client
		}
	}
	return &clientImpl{
		callers: callers,
	}, anyerr
}

// NewClientWithCallers serves chains from already built callers
func NewClientWithCallers(callers map[domain.ChainId]domain.ContractCaller) Client {
	return &clientImpl{
		callers: callers,
	}
}

func (c *clientImpl) Caller(chainId domain.ChainId) (domain.ContractCaller, error) {
	caller, ok := c.callers[chainId]
	if !ok {
		return nil, domain.ErrUnsupportedChain
	}
	return caller, nil
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, blk *big.Int, method abi.Method, params ...interface{}) ([]interface{}, error) {
	caller, err := c.Caller(chainId)
	if err != nil {
		return nil, err
	}

	args, err := method.Inputs.Pack(params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method.Sig,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: append(append([]byte{}, method.ID...), args...),
	}
	res, err := caller.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method.Sig,
			"err":    err,
		}).Warn("CallContract failed")
		return nil, err
	}
	unpacked, err := method.Outputs.Unpack(res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}
