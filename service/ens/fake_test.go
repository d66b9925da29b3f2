package ens

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	"github.com/x-xyz/ensgo/base/counter"
	bCtx "github.com/x-xyz/ensgo/base/ctx"
	bEth "github.com/x-xyz/ensgo/base/ethereum"
	"github.com/x-xyz/ensgo/base/ensname"
	"github.com/x-xyz/ensgo/service/ccip"
)

var (
	urAddr        = common.HexToAddress("0xce01f8eee7e479c928f8919abd53e553a36cef67")
	multicallAddr = common.HexToAddress("0xca11bde05977b3631167028862be2a173976ca11")
	resolverAddr  = common.HexToAddress("0x231b0ee14048e9dccd1d247744d114a4eb5e8e63")

	errWrongNode = errors.New("wrong node")

	// batchExtra tags the lookups of the array resolve form
	batchExtra = []byte("batch")
)

// fakeResolver answers public resolver record calls for one node
type fakeResolver struct {
	node        common.Hash
	addrs       map[uint64][]byte
	texts       map[string]string
	contenthash []byte
	abis        map[uint64][]byte
	// offchain makes the single resolve form revert with OffchainLookup
	offchain bool
	// gateway makes the array form of an offchain resolver revert with a
	// batch gateway lookup whose queries go to this url
	gateway string
	broken  bool
}

func (r *fakeResolver) handle(data []byte) ([]byte, error) {
	if r.broken || len(data) < 4 {
		return nil, errors.New("resolver reverted")
	}
	m, err := bAbi.PublicResolverABI.MethodById(data[:4])
	if err != nil {
		return nil, err
	}
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}
	if node, _ := args[0].([32]byte); common.Hash(node) != r.node {
		return nil, errWrongNode
	}

	switch m.Sig {
	case "addr(bytes32)":
		return m.Outputs.Pack(common.BytesToAddress(r.addrs[60]))
	case "addr(bytes32,uint256)":
		return m.Outputs.Pack(append([]byte{}, r.addrs[args[1].(*big.Int).Uint64()]...))
	case "text(bytes32,string)":
		return m.Outputs.Pack(r.texts[args[1].(string)])
	case "contenthash(bytes32)":
		return m.Outputs.Pack(append([]byte{}, r.contenthash...))
	case "ABI(bytes32,uint256)":
		mask := args[1].(*big.Int).Uint64()
		for ct := uint64(1); ct <= mask; ct <<= 1 {
			if mask&ct == 0 {
				continue
			}
			if d, ok := r.abis[ct]; ok {
				return m.Outputs.Pack(new(big.Int).SetUint64(ct), d)
			}
		}
		return m.Outputs.Pack(big.NewInt(0), []byte{})
	}
	return nil, errors.New("unsupported record " + m.Sig)
}

// fakeChain speaks the Universal Resolver and Multicall3 ABIs over in-memory resolvers
type fakeChain struct {
	mu        sync.Mutex
	rpcs      int
	resolvers map[string]*fakeResolver
	primary   map[common.Address]string
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		resolvers: map[string]*fakeResolver{},
		primary:   map[common.Address]string{},
	}
}

// register keys the resolver by the name a DNS packet decodes back to
func (f *fakeChain) register(name string, r *fakeResolver) *fakeResolver {
	key, err := ensname.DecodePacket(ensname.Packet(name))
	if err != nil {
		panic(err)
	}
	r.node = ensname.NameHash(name)
	f.resolvers[key] = r
	return r
}

func (f *fakeChain) rpcCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rpcs
}

func (f *fakeChain) CallContract(ctx context.Context, msg ethereum.CallMsg, blk *big.Int) ([]byte, error) {
	f.mu.Lock()
	f.rpcs++
	f.mu.Unlock()
	return f.dispatch(ctx, msg)
}

func (f *fakeChain) dispatch(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	switch *msg.To {
	case urAddr:
		return f.universalResolver(msg.Data)
	case multicallAddr:
		return f.aggregate3(ctx, msg.Data)
	case resolverAddr:
		return f.erc165(msg.Data)
	}
	// calls to accounts without code return nothing
	return nil, nil
}

func urRevert(name string, args ...interface{}) error {
	e := bAbi.UniversalResolverABI.Errors[name]
	packed, err := e.Inputs.Pack(args...)
	if err != nil {
		panic(err)
	}
	id := e.ID
	return bEth.NewRevertError(append(append([]byte{}, id[:4]...), packed...))
}

func (f *fakeChain) universalResolver(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, bEth.NewRevertError(nil)
	}
	m, err := bAbi.UniversalResolverABI.MethodById(data[:4])
	if err != nil {
		return nil, bEth.NewRevertError(nil)
	}
	args, err := m.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, bEth.NewRevertError(nil)
	}

	if m.RawName == "resolveCallback" {
		response := args[0].([]byte)
		if !bytes.Equal(args[1].([]byte), batchExtra) {
			return m.Outputs.Pack(response, resolverAddr)
		}
		responses, err := ccip.DecodeResponses(response)
		if err != nil {
			return nil, bEth.NewRevertError(nil)
		}
		results := make([]resultTuple, len(responses))
		for i, r := range responses {
			results[i] = resultTuple{Success: !r.IsError, ReturnData: r.Data}
		}
		return bAbi.UniversalResolverResolve[0][1].Outputs.Pack(results, resolverAddr)
	}

	name, err := ensname.DecodePacket(args[0].([]byte))
	if err != nil {
		return nil, bEth.NewRevertError(nil)
	}

	switch m.RawName {
	case "findResolver":
		if _, ok := f.resolvers[name]; !ok {
			return m.Outputs.Pack(common.Address{}, [32]byte{}, big.NewInt(0))
		}
		return m.Outputs.Pack(resolverAddr, [32]byte(ensname.NameHash(name)), big.NewInt(0))
	case "reverse":
		return f.reverse(m.Outputs.Pack, name)
	}

	r, ok := f.resolvers[name]
	if !ok {
		return nil, urRevert("ResolverNotFound")
	}
	switch m.Sig {
	case "resolve(bytes,bytes)", "resolve(bytes,bytes,string[])":
		call := args[1].([]byte)
		if r.offchain {
			lookup, err := ccip.EncodeOffchainLookup(&ccip.OffchainLookup{
				Sender:           urAddr,
				URLs:             []string{"https://gateway.example/{sender}/{data}.json"},
				CallData:         call,
				CallbackFunction: callbackSelector(),
				ExtraData:        call,
			})
			if err != nil {
				panic(err)
			}
			return nil, bEth.NewRevertError(lookup)
		}
		ret, err := r.handle(call)
		if err != nil {
			return nil, urRevert("ResolverError", []byte(err.Error()))
		}
		return m.Outputs.Pack(ret, resolverAddr)
	default:
		calls := args[1].([][]byte)
		if r.offchain && r.gateway != "" {
			return nil, batchLookup(r.gateway, calls)
		}
		results := make([]resultTuple, len(calls))
		for i, call := range calls {
			ret, err := r.handle(call)
			results[i] = resultTuple{Success: err == nil, ReturnData: ret}
		}
		return m.Outputs.Pack(results, resolverAddr)
	}
}

func batchLookup(gateway string, calls [][]byte) error {
	queries := make([]ccip.Request, len(calls))
	for i, call := range calls {
		queries[i] = ccip.Request{Sender: resolverAddr, URLs: []string{gateway}, CallData: call}
	}
	callData, err := ccip.EncodeQueries(queries)
	if err != nil {
		panic(err)
	}
	lookup, err := ccip.EncodeOffchainLookup(&ccip.OffchainLookup{
		Sender:           urAddr,
		URLs:             []string{"x-batch-gateway:true"},
		CallData:         callData,
		CallbackFunction: callbackSelector(),
		ExtraData:        batchExtra,
	})
	if err != nil {
		panic(err)
	}
	return bEth.NewRevertError(lookup)
}

func callbackSelector() [4]byte {
	var sel [4]byte
	copy(sel[:], bAbi.UniversalResolverABI.Methods["resolveCallback"].ID)
	return sel
}

func (f *fakeChain) reverse(pack func(...interface{}) ([]byte, error), reverseName string) ([]byte, error) {
	hexAddr := strings.TrimSuffix(reverseName, ".addr.reverse")
	addr := common.HexToAddress(hexAddr)
	name, ok := f.primary[addr]
	if !ok {
		return nil, urRevert("ResolverNotFound")
	}
	var resolved common.Address
	if r, ok := f.resolvers[name]; ok {
		resolved = common.BytesToAddress(r.addrs[60])
	}
	return pack(name, resolved, resolverAddr, resolverAddr)
}

func (f *fakeChain) aggregate3(ctx context.Context, data []byte) ([]byte, error) {
	args, err := aggregate3.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, bEth.NewRevertError(nil)
	}
	calls := args[0].([]call3)
	results := make([]resultTuple, len(calls))
	for i, c := range calls {
		to := c.Target
		ret, err := f.dispatch(ctx, ethereum.CallMsg{To: &to, Data: c.CallData})
		if err != nil {
			revert, _ := bEth.RevertData(err)
			results[i] = resultTuple{Success: false, ReturnData: append([]byte{}, revert...)}
			continue
		}
		results[i] = resultTuple{Success: true, ReturnData: ret}
	}
	return aggregate3.Outputs.Pack(results)
}

func (f *fakeChain) erc165(data []byte) ([]byte, error) {
	args, err := supportsInterface.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, bEth.NewRevertError(nil)
	}
	id := args[0].([4]byte)
	// ERC165 itself and IAddrResolver
	return supportsInterface.Outputs.Pack(id == [4]byte{0x01, 0xff, 0xc9, 0xa7} || id == [4]byte{0x3b, 0x3b, 0x57, 0xde})
}

// gatewayStub answers offchain lookups from the resolvers of the fake chain,
// or fails every lookup with err when set
type gatewayStub struct {
	chain *fakeChain
	name  string
	hits  *counter.Counter
	err   error
}

func (g *gatewayStub) Handle(ctx bCtx.Ctx, req ccip.Request) ([]byte, error) {
	g.hits.Inc()
	if g.err != nil {
		return nil, g.err
	}
	return g.chain.resolvers[g.name].handle(req.CallData)
}

// recordGateway is an http gateway serving the record calls of one resolver
func recordGateway(r *fakeResolver, sender common.Address, hits *counter.Counter) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Inc()
		body := struct {
			Sender string `json:"sender"`
			Data   string `json:"data"`
		}{}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if !strings.EqualFold(body.Sender, sender.Hex()) {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		call, err := hexutil.Decode(body.Data)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		ret, err := r.handle(call)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"data":%q}`, hexutil.Encode(ret))
	}))
}
