package ccip

import (
	"bytes"
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	bCtx "github.com/x-xyz/ensgo/base/ctx"
	bEth "github.com/x-xyz/ensgo/base/ethereum"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/domain"
)

const DefaultMaxRedirects = 4

var (
	offchainLookup = bAbi.UniversalResolverABI.Errors["OffchainLookup"]
	callbackArgs   abi.Arguments
)

func init() {
	bytesTy, err := abi.NewType("bytes", "", nil)
	if err != nil {
		panic(err)
	}
	callbackArgs = abi.Arguments{{Type: bytesTy}, {Type: bytesTy}}
}

// OffchainLookup is the decoded EIP-3668 revert
type OffchainLookup struct {
	Sender           common.Address
	URLs             []string
	CallData         []byte
	CallbackFunction [4]byte
	ExtraData        []byte
}

// ParseOffchainLookup decodes revert data carrying an OffchainLookup error
func ParseOffchainLookup(data []byte) (*OffchainLookup, bool) {
	if len(data) < 4 || !bytes.Equal(data[:4], offchainLookup.ID[:4]) {
		return nil, false
	}
	unpacked, err := offchainLookup.Inputs.Unpack(data[4:])
	if err != nil || len(unpacked) != 5 {
		return nil, false
	}
	sender, ok1 := unpacked[0].(common.Address)
	urls, ok2 := unpacked[1].([]string)
	callData, ok3 := unpacked[2].([]byte)
	callback, ok4 := unpacked[3].([4]byte)
	extraData, ok5 := unpacked[4].([]byte)
	if !(ok1 && ok2 && ok3 && ok4 && ok5) {
		return nil, false
	}
	return &OffchainLookup{
		Sender:           sender,
		URLs:             urls,
		CallData:         callData,
		CallbackFunction: callback,
		ExtraData:        extraData,
	}, true
}

// EncodeOffchainLookup builds OffchainLookup revert data, the inverse of ParseOffchainLookup
func EncodeOffchainLookup(l *OffchainLookup) ([]byte, error) {
	args, err := offchainLookup.Inputs.Pack(l.Sender, l.URLs, l.CallData, l.CallbackFunction, l.ExtraData)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, offchainLookup.ID[:4]...), args...), nil
}

// CallbackData is callbackFunction ‖ abi.encode(response, extraData)
func CallbackData(callback [4]byte, response, extraData []byte) ([]byte, error) {
	args, err := callbackArgs.Pack(response, extraData)
	if err != nil {
		return nil, err
	}
	return append(callback[:], args...), nil
}

type CallerCfg struct {
	Caller  domain.ContractCaller
	Handler RequestHandler
	// MaxRedirects bounds the offchain rounds of one call, DefaultMaxRedirects when zero
	MaxRedirects int
}

// Caller is a ContractCaller that follows OffchainLookup reverts through the handler
type Caller struct {
	caller       domain.ContractCaller
	handler      RequestHandler
	maxRedirects int
}

func NewCaller(cfg CallerCfg) *Caller {
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = DefaultMaxRedirects
	}
	return &Caller{
		caller:       cfg.Caller,
		handler:      cfg.Handler,
		maxRedirects: cfg.MaxRedirects,
	}
}

func (c *Caller) CallContract(ctx context.Context, msg ethereum.CallMsg, blk *big.Int) ([]byte, error) {
	bctx := bCtx.From(ctx)
	for round := 0; ; round++ {
		res, err := c.caller.CallContract(ctx, msg, blk)
		if err == nil {
			return res, nil
		}
		revert, ok := bEth.RevertData(err)
		if !ok {
			return nil, err
		}
		lookup, ok := ParseOffchainLookup(revert)
		if !ok {
			return nil, err
		}
		if round >= c.maxRedirects {
			bctx.WithFields(log.Fields{"rounds": round, "sender": lookup.Sender.Hex()}).Warn("too many offchain lookups")
			return nil, domain.ErrTooManyRedirects
		}
		if msg.To == nil || lookup.Sender != *msg.To {
			bctx.WithFields(log.Fields{"sender": lookup.Sender.Hex(), "to": msg.To}).Warn("offchain lookup sender mismatch")
			return nil, domain.ErrSenderMismatch
		}

		response, err := c.handler.Handle(bctx, Request{
			Sender:   lookup.Sender,
			URLs:     lookup.URLs,
			CallData: lookup.CallData,
		})
		if err != nil {
			return nil, err
		}

		data, err := CallbackData(lookup.CallbackFunction, response, lookup.ExtraData)
		if err != nil {
			bctx.WithField("err", err).Error("pack ccip callback failed")
			return nil, err
		}
		to := lookup.Sender
		msg = ethereum.CallMsg{
			From: msg.From,
			To:   &to,
			Data: data,
		}
	}
}
