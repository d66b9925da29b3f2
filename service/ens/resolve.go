package ens

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	bCtx "github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/ensname"
	"github.com/x-xyz/ensgo/base/log"
)

// ResolveParams selects the resolve overload: a non-nil DataArray picks the
// array form, GatewayURLs the gateway override form.
type ResolveParams struct {
	Name        string
	Data        []byte
	DataArray   [][]byte
	Strict      bool
	GatewayURLs []string
}

type Result struct {
	Success    bool
	ReturnData []byte
}

// ResolveResult carries Data for the single form and Results for the array form
type ResolveResult struct {
	Data            []byte
	Results         []Result
	ResolverAddress common.Address
}

type resultTuple = struct {
	Success    bool   `json:"success"`
	ReturnData []byte `json:"returnData"`
}

func resolveMethod(p ResolveParams) abi.Method {
	gateways, array := 0, 0
	if len(p.GatewayURLs) > 0 {
		gateways = 1
	}
	if p.DataArray != nil {
		array = 1
	}
	return bAbi.UniversalResolverResolve[gateways][array]
}

func encodeResolve(p ResolveParams) ([]byte, error) {
	args := []interface{}{ensname.Packet(p.Name)}
	if p.DataArray != nil {
		args = append(args, p.DataArray)
	} else {
		args = append(args, p.Data)
	}
	if len(p.GatewayURLs) > 0 {
		args = append(args, p.GatewayURLs)
	}
	return packCall(resolveMethod(p), args...)
}

// decodeResolve returns nil when the resolver address is zero
func decodeResolve(p ResolveParams, data []byte) (*ResolveResult, error) {
	out, err := resolveMethod(p).Outputs.Unpack(data)
	if err != nil {
		return nil, err
	}
	if len(out) != 2 {
		return nil, errUnexpectedOutput
	}
	resolver, ok := out[1].(common.Address)
	if !ok {
		return nil, errUnexpectedOutput
	}
	if resolver == (common.Address{}) {
		return nil, nil
	}

	res := &ResolveResult{ResolverAddress: resolver}
	if p.DataArray == nil {
		if res.Data, ok = out[0].([]byte); !ok {
			return nil, errUnexpectedOutput
		}
		return res, nil
	}
	tuples, ok := out[0].([]resultTuple)
	if !ok {
		return nil, errUnexpectedOutput
	}
	res.Results = make([]Result, len(tuples))
	for i, t := range tuples {
		res.Results[i] = Result{Success: t.Success, ReturnData: t.ReturnData}
	}
	return res, nil
}

// ResolveNameData calls the Universal Resolver resolve overload matching p.
// A nil result means the name has no resolver. With Strict unset the
// "no resolver" reverts are reported as a nil result as well, other errors
// are returned as they came.
func (c *Client) ResolveNameData(ctx bCtx.Ctx, p ResolveParams) (*ResolveResult, error) {
	defer c.metrics.BumpTime("resolve.latency").End()

	data, err := encodeResolve(p)
	if err != nil {
		ctx.WithFields(log.Fields{
			"name": p.Name,
			"err":  err,
		}).Error("encode resolve failed")
		return nil, err
	}

	res, err := c.call(ctx, c.universalResolver, data)
	if err != nil {
		if !p.Strict && isBenign(err) {
			ctx.WithField("name", p.Name).Debug("name has no resolver")
			return nil, nil
		}
		ctx.WithFields(log.Fields{
			"name": p.Name,
			"err":  err,
		}).Warn("universal resolver resolve failed")
		return nil, err
	}

	result, err := decodeResolve(p, res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"name": p.Name,
			"err":  err,
		}).Error("decode resolve failed")
		return nil, err
	}
	return result, nil
}
