package ens

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	bCtx "github.com/x-xyz/ensgo/base/ctx"
	bEth "github.com/x-xyz/ensgo/base/ethereum"
	"github.com/x-xyz/ensgo/base/ensname"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/domain"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
)

var (
	findResolver      = bAbi.UniversalResolverABI.Methods["findResolver"]
	supportsInterface = bAbi.ERC165ABI.Methods["supportsInterface"]
)

// resolveCall is a single record lookup as a Universal Resolver resolve(bytes,bytes) call
type resolveCall struct {
	universalResolver common.Address
	name              string
	coder             RecordCoder
}

func (r *resolveCall) Encode() (EncodedCall, error) {
	data, err := r.coder.Encode(ensname.NameHash(r.name))
	if err != nil {
		return EncodedCall{}, err
	}
	call, err := encodeResolve(ResolveParams{Name: r.name, Data: data})
	if err != nil {
		return EncodedCall{}, err
	}
	return EncodedCall{Target: r.universalResolver, CallData: call}, nil
}

func (r *resolveCall) Decode(data []byte, strict bool) (interface{}, error) {
	res, err := decodeResolve(ResolveParams{Name: r.name}, data)
	if err != nil {
		return lenient(err, strict)
	}
	if res == nil {
		return nil, nil
	}
	return r.coder.Decode(res.Data, strict)
}

func (c *Client) recordBatchable(name string, coder RecordCoder) Batchable {
	return &resolveCall{universalResolver: c.universalResolver, name: name, coder: coder}
}

func (c *Client) GetAddressRecordBatchable(name string, coin interface{}) Batchable {
	return c.recordBatchable(name, Address(coin))
}

func (c *Client) GetTextRecordBatchable(name, key string) Batchable {
	return c.recordBatchable(name, Text(key))
}

func (c *Client) GetContentHashRecordBatchable(name string) Batchable {
	return c.recordBatchable(name, ContentHash())
}

func (c *Client) GetABIRecordBatchable(name string, supportedContentTypes uint64) Batchable {
	return c.recordBatchable(name, ABI(supportedContentTypes))
}

func (c *Client) getRecord(ctx bCtx.Ctx, name string, coder RecordCoder, strict bool) (interface{}, error) {
	data, err := coder.Encode(ensname.NameHash(name))
	if err != nil {
		ctx.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Warn("encode record call failed")
		return nil, err
	}
	res, err := c.ResolveNameData(ctx, ResolveParams{
		Name:        name,
		Data:        data,
		Strict:      strict,
		GatewayURLs: c.gatewayURLs,
	})
	if err != nil || res == nil {
		return nil, err
	}
	return coder.Decode(res.Data, strict)
}

// GetAddressRecord returns nil when the name has no address for coin
func (c *Client) GetAddressRecord(ctx bCtx.Ctx, name string, coin interface{}, strict bool) (*ensdomain.AddressRecord, error) {
	v, err := c.getRecord(ctx, name, Address(coin), strict)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*ensdomain.AddressRecord), nil
}

func (c *Client) GetTextRecord(ctx bCtx.Ctx, name, key string, strict bool) (*ensdomain.TextRecord, error) {
	v, err := c.getRecord(ctx, name, Text(key), strict)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*ensdomain.TextRecord), nil
}

func (c *Client) GetContentHashRecord(ctx bCtx.Ctx, name string, strict bool) (*ensdomain.ContentHash, error) {
	v, err := c.getRecord(ctx, name, ContentHash(), strict)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*ensdomain.ContentHash), nil
}

func (c *Client) GetABIRecord(ctx bCtx.Ctx, name string, supportedContentTypes uint64, strict bool) (*ensdomain.ABIRecord, error) {
	v, err := c.getRecord(ctx, name, ABI(supportedContentTypes), strict)
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*ensdomain.ABIRecord), nil
}

// ResolveRecords reads every coder's record of name in one array form
// resolve. Values are positional, nil for absent records or failed
// sub-calls. A nil slice means the name has no resolver.
func (c *Client) ResolveRecords(ctx bCtx.Ctx, name string, strict bool, coders ...RecordCoder) ([]interface{}, error) {
	values, _, err := c.resolveRecords(ctx, name, strict, c.gatewayURLs, coders)
	return values, err
}

func (c *Client) resolveRecords(ctx bCtx.Ctx, name string, strict bool, gateways []string, coders []RecordCoder) ([]interface{}, *common.Address, error) {
	node := ensname.NameHash(name)
	calls := make([][]byte, len(coders))
	for i, coder := range coders {
		data, err := coder.Encode(node)
		if err != nil {
			ctx.WithFields(log.Fields{
				"name":  name,
				"index": i,
				"err":   err,
			}).Warn("encode record call failed")
			return nil, nil, err
		}
		calls[i] = data
	}

	res, err := c.ResolveNameData(ctx, ResolveParams{
		Name:        name,
		DataArray:   calls,
		Strict:      strict,
		GatewayURLs: gateways,
	})
	if err != nil || res == nil {
		return nil, nil, err
	}
	if len(res.Results) != len(coders) {
		ctx.WithFields(log.Fields{
			"name":    name,
			"calls":   len(coders),
			"results": len(res.Results),
		}).Error("resolve result count mismatch")
		return nil, nil, errBatchLength
	}

	values := make([]interface{}, len(coders))
	for i, r := range res.Results {
		if !r.Success {
			continue
		}
		if values[i], err = coders[i].Decode(r.ReturnData, strict); err != nil {
			return nil, nil, xerrors.Errorf("decode record %d of %s: %w", i, name, err)
		}
	}
	return values, &res.ResolverAddress, nil
}

// RecordsOptions lists the records GetRecords reads. Coins take what Address takes.
type RecordsOptions struct {
	Texts       []string
	Coins       []interface{}
	ContentHash bool
	ABI         bool
	Strict      bool
	// GatewayURLs defaults to the client's gateways
	GatewayURLs []string
}

// GetRecords reads the requested records of name in one call. Absent records
// are left out. Without any record requested only the resolver is looked up.
func (c *Client) GetRecords(ctx bCtx.Ctx, name string, opts RecordsOptions) (*ensdomain.Records, error) {
	coders := make([]RecordCoder, 0, len(opts.Texts)+len(opts.Coins)+2)
	for _, key := range opts.Texts {
		coders = append(coders, Text(key))
	}
	for _, coin := range opts.Coins {
		coders = append(coders, Address(coin))
	}
	if opts.ContentHash {
		coders = append(coders, ContentHash())
	}
	if opts.ABI {
		coders = append(coders, ABI(0))
	}

	if len(coders) == 0 {
		resolver, err := c.GetResolver(ctx, name)
		if err != nil || resolver == nil {
			return nil, err
		}
		return &ensdomain.Records{ResolverAddress: domain.Address(resolver.Hex())}, nil
	}

	gateways := opts.GatewayURLs
	if gateways == nil {
		gateways = c.gatewayURLs
	}
	values, resolver, err := c.resolveRecords(ctx, name, opts.Strict, gateways, coders)
	if err != nil || resolver == nil {
		return nil, err
	}

	records := &ensdomain.Records{ResolverAddress: domain.Address(resolver.Hex())}
	for _, v := range values {
		switch r := v.(type) {
		case *ensdomain.TextRecord:
			records.Texts = append(records.Texts, *r)
		case *ensdomain.AddressRecord:
			records.Coins = append(records.Coins, *r)
		case *ensdomain.ContentHash:
			records.ContentHash = r
		case *ensdomain.ABIRecord:
			records.ABI = r
		}
	}
	return records, nil
}

// GetResolver returns the resolver of name, walking up to a wildcard
// resolver of a parent. Nil means no resolver.
func (c *Client) GetResolver(ctx bCtx.Ctx, name string) (*common.Address, error) {
	data, err := packCall(findResolver, ensname.Packet(name))
	if err != nil {
		return nil, err
	}
	res, err := c.call(ctx, c.universalResolver, data)
	if err != nil {
		if isBenign(err) {
			return nil, nil
		}
		ctx.WithFields(log.Fields{
			"name": name,
			"err":  err,
		}).Warn("find resolver failed")
		return nil, err
	}
	out, err := findResolver.Outputs.Unpack(res)
	if err != nil {
		ctx.WithField("err", err).Error("decode find resolver failed")
		return nil, err
	}
	resolver, ok := out[0].(common.Address)
	if !ok {
		return nil, errUnexpectedOutput
	}
	if resolver == (common.Address{}) {
		return nil, nil
	}
	return &resolver, nil
}

// GetName reverse resolves address. Nil means no primary name is set.
func (c *Client) GetName(ctx bCtx.Ctx, address common.Address) (*ensdomain.NameResult, error) {
	args := []interface{}{ensname.Packet(ensname.ReverseName(address))}
	method := bAbi.UniversalResolverReverse[0]
	if len(c.gatewayURLs) > 0 {
		method = bAbi.UniversalResolverReverse[1]
		args = append(args, c.gatewayURLs)
	}
	data, err := packCall(method, args...)
	if err != nil {
		return nil, err
	}

	res, err := c.call(ctx, c.universalResolver, data)
	if err != nil {
		if isBenign(err) {
			return nil, nil
		}
		ctx.WithFields(log.Fields{
			"address": address.Hex(),
			"err":     err,
		}).Warn("reverse failed")
		return nil, err
	}
	out, err := method.Outputs.Unpack(res)
	if err != nil {
		ctx.WithField("err", err).Error("decode reverse failed")
		return nil, err
	}
	if len(out) != 4 {
		return nil, errUnexpectedOutput
	}
	name, ok1 := out[0].(string)
	resolved, ok2 := out[1].(common.Address)
	reverseResolver, ok3 := out[2].(common.Address)
	resolver, ok4 := out[3].(common.Address)
	if !(ok1 && ok2 && ok3 && ok4) {
		return nil, errUnexpectedOutput
	}
	if name == "" {
		return nil, nil
	}
	return &ensdomain.NameResult{
		Name:                   name,
		Match:                  resolved == address,
		ResolverAddress:        domain.Address(resolver.Hex()),
		ReverseResolverAddress: domain.Address(reverseResolver.Hex()),
	}, nil
}

// SupportsInterface runs an ERC165 check. Contracts that revert or answer
// garbage do not support the interface.
func (c *Client) SupportsInterface(ctx bCtx.Ctx, contract common.Address, interfaceID [4]byte) (bool, error) {
	data, err := packCall(supportsInterface, interfaceID)
	if err != nil {
		return false, err
	}
	res, err := c.call(ctx, contract, data)
	if err != nil {
		if _, ok := bEth.RevertData(err); ok {
			return false, nil
		}
		ctx.WithFields(log.Fields{
			"contract": contract.Hex(),
			"err":      err,
		}).Warn("supportsInterface failed")
		return false, err
	}
	out, err := supportsInterface.Outputs.Unpack(res)
	if err != nil {
		return false, nil
	}
	supported, _ := out[0].(bool)
	return supported, nil
}
