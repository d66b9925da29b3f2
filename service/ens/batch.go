package ens

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	bCtx "github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/log"
	"github.com/x-xyz/ensgo/domain"
	"github.com/x-xyz/ensgo/service/ccip"
)

var (
	aggregate3 = bAbi.Multicall3ABI.Methods["aggregate3"]

	errBatchLength   = errors.New("multicall result count mismatch")
	errGatewayFailed = errors.New("offchain gateway failed")
)

type EncodedCall struct {
	Target   common.Address
	CallData []byte
}

// Batchable is a call that can ride inside a multicall
type Batchable interface {
	Encode() (EncodedCall, error)
	Decode(data []byte, strict bool) (interface{}, error)
}

type call3 = struct {
	Target       common.Address `json:"target"`
	AllowFailure bool           `json:"allowFailure"`
	CallData     []byte         `json:"callData"`
}

// Batch is a Batchable aggregate3 call, so batches nest. It decodes to
// []interface{} in item order with nil for failed items.
type Batch struct {
	target common.Address
	items  []Batchable
}

func NewBatch(items ...Batchable) *Batch {
	return &Batch{
		target: domain.Multicall3Address.ToCommon(),
		items:  items,
	}
}

func (b *Batch) Encode() (EncodedCall, error) {
	calls, err := b.calls()
	if err != nil {
		return EncodedCall{}, err
	}
	data, err := packCall(aggregate3, calls)
	if err != nil {
		return EncodedCall{}, err
	}
	return EncodedCall{Target: b.target, CallData: data}, nil
}

func (b *Batch) calls() ([]call3, error) {
	calls := make([]call3, len(b.items))
	for i, item := range b.items {
		ec, err := item.Encode()
		if err != nil {
			return nil, xerrors.Errorf("encode batch item %d: %w", i, err)
		}
		calls[i] = call3{Target: ec.Target, AllowFailure: true, CallData: ec.CallData}
	}
	return calls, nil
}

func (b *Batch) Decode(data []byte, strict bool) (interface{}, error) {
	results, err := decodeAggregate3(data, len(b.items))
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(b.items))
	for i, r := range results {
		if !r.Success {
			continue
		}
		if out[i], err = b.items[i].Decode(r.ReturnData, strict); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeAggregate3(data []byte, n int) ([]resultTuple, error) {
	out, err := aggregate3.Outputs.Unpack(data)
	if err != nil {
		return nil, err
	}
	results, ok := out[0].([]resultTuple)
	if !ok {
		return nil, errUnexpectedOutput
	}
	if len(results) != n {
		return nil, errBatchLength
	}
	return results, nil
}

// Batch sends items as one aggregate3 call to the configured multicall and
// decodes every result positionally. Items reverting with an OffchainLookup
// are served together through the offchain handler and their callbacks sent
// in one more aggregate3, repeated while callbacks redirect again. Other
// failed items are nil.
func (c *Client) Batch(ctx bCtx.Ctx, strict bool, items ...Batchable) ([]interface{}, error) {
	if len(items) == 0 {
		return []interface{}{}, nil
	}

	b := &Batch{target: c.multicall, items: items}
	calls, err := b.calls()
	if err != nil {
		ctx.WithField("err", err).Error("encode batch failed")
		return nil, err
	}
	results, err := c.aggregate(ctx, calls)
	if err != nil {
		return nil, err
	}

	out := make([]interface{}, len(items))
	pending := []offchainItem{}
	for i, r := range results {
		if !r.Success {
			if lookup, ok := ccip.ParseOffchainLookup(r.ReturnData); ok {
				pending = append(pending, offchainItem{idx: i, target: calls[i].Target, lookup: lookup})
			}
			continue
		}
		if out[i], err = items[i].Decode(r.ReturnData, strict); err != nil {
			ctx.WithFields(log.Fields{
				"index": i,
				"err":   err,
			}).Warn("decode batch item failed")
			return nil, err
		}
	}

	if err := c.resolveOffchain(ctx, strict, items, pending, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) aggregate(ctx bCtx.Ctx, calls []call3) ([]resultTuple, error) {
	data, err := packCall(aggregate3, calls)
	if err != nil {
		ctx.WithField("err", err).Error("pack multicall failed")
		return nil, err
	}
	res, err := c.call(ctx, c.multicall, data)
	if err != nil {
		ctx.WithFields(log.Fields{
			"calls": len(calls),
			"err":   err,
		}).Warn("multicall failed")
		return nil, err
	}
	results, err := decodeAggregate3(res, len(calls))
	if err != nil {
		ctx.WithField("err", err).Error("decode multicall failed")
		return nil, err
	}
	return results, nil
}

// offchainItem is a batch item waiting on the lookup its last call reverted with
type offchainItem struct {
	idx    int
	target common.Address
	lookup *ccip.OffchainLookup
}

func (c *Client) resolveOffchain(ctx bCtx.Ctx, strict bool, items []Batchable, pending []offchainItem, out []interface{}) error {
	if len(pending) > 0 && c.offchain == nil {
		ctx.WithField("items", len(pending)).Warn("no offchain handler, offchain batch items unresolved")
		return nil
	}

	for round := 0; len(pending) > 0; round++ {
		if round >= c.maxRedirects {
			if strict {
				return domain.ErrTooManyRedirects
			}
			ctx.WithField("items", len(pending)).Warn("offchain batch items exceeded redirects")
			return nil
		}

		live := make([]offchainItem, 0, len(pending))
		reqs := make([]ccip.Request, 0, len(pending))
		for _, p := range pending {
			if p.lookup.Sender != p.target {
				if strict {
					return domain.ErrSenderMismatch
				}
				ctx.WithFields(log.Fields{
					"index":  p.idx,
					"target": p.target.Hex(),
					"sender": p.lookup.Sender.Hex(),
				}).Warn("offchain lookup sender mismatch")
				continue
			}
			live = append(live, p)
			reqs = append(reqs, ccip.Request{Sender: p.lookup.Sender, URLs: p.lookup.URLs, CallData: p.lookup.CallData})
		}

		responses := ccip.ServeAll(ctx, c.offchain, reqs, c.offchainConcurrency)

		next := make([]offchainItem, 0, len(live))
		callbacks := make([]call3, 0, len(live))
		for j, resp := range responses {
			p := live[j]
			if resp.IsError {
				if strict {
					return gatewayErr(resp)
				}
				ctx.WithFields(log.Fields{
					"index": p.idx,
					"err":   resp.Err,
				}).Warn("offchain batch item failed")
				continue
			}
			data, err := ccip.CallbackData(p.lookup.CallbackFunction, resp.Data, p.lookup.ExtraData)
			if err != nil {
				ctx.WithField("err", err).Error("encode callback failed")
				return err
			}
			next = append(next, p)
			callbacks = append(callbacks, call3{Target: p.lookup.Sender, AllowFailure: true, CallData: data})
		}
		if len(callbacks) == 0 {
			return nil
		}

		results, err := c.aggregate(ctx, callbacks)
		if err != nil {
			return err
		}
		pending = pending[:0]
		for k, r := range results {
			p := next[k]
			if !r.Success {
				if lookup, ok := ccip.ParseOffchainLookup(r.ReturnData); ok {
					pending = append(pending, offchainItem{idx: p.idx, target: p.lookup.Sender, lookup: lookup})
				}
				continue
			}
			if out[p.idx], err = items[p.idx].Decode(r.ReturnData, strict); err != nil {
				ctx.WithFields(log.Fields{
					"index": p.idx,
					"err":   err,
				}).Warn("decode batch item failed")
				return err
			}
		}
	}
	return nil
}

func gatewayErr(resp ccip.Response) error {
	if resp.Err != nil {
		return resp.Err
	}
	if herr, ok := ccip.DecodeHttpError(resp.Data); ok {
		return herr
	}
	return errGatewayFailed
}
