package ens

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/suite"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	"github.com/x-xyz/ensgo/base/counter"
	bCtx "github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/ensname"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
	"github.com/x-xyz/ensgo/service/ccip"
)

var (
	ownerAddr   = common.HexToAddress("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
	ipfsHash    = hexutil.MustDecode("0xe3010170122029f2d17be6139079dc48696d1f582a8530eb9805b561eda517e22a892c7e3f1f")
	btcScript   = hexutil.MustDecode("0x76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac")
	abiDocument = []interface{}{
		map[string]interface{}{"type": "function", "name": "supply"},
	}
)

type ensSuite struct {
	suite.Suite

	ctx     bCtx.Ctx
	chain   *fakeChain
	gateway *gatewayStub
	client  *Client
}

func (s *ensSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.chain = newFakeChain()

	s.chain.register("with-profile.eth", &fakeResolver{
		addrs: map[uint64][]byte{
			60: ownerAddr.Bytes(),
			0:  btcScript,
			// set to zero
			2147483658: make([]byte, 20),
		},
		texts: map[string]string{
			"description": "Hello2",
			"url":         "https://twitter.com",
		},
		contenthash: ipfsHash,
		abis: map[uint64][]byte{
			ABIContentJSON: mustJSON(abiDocument),
		},
	})
	s.chain.register("zlib-abi.eth", &fakeResolver{
		abis: map[uint64][]byte{ABIContentZlib: mustZlib(mustJSON(abiDocument))},
	})
	s.chain.register("cbor-abi.eth", &fakeResolver{
		abis: map[uint64][]byte{ABIContentCBOR: mustCBOR(abiDocument)},
	})
	s.chain.register("uri-abi.eth", &fakeResolver{
		abis: map[uint64][]byte{ABIContentURI: []byte("https://example.com/abi.json")},
	})
	s.chain.register("zero.eth", &fakeResolver{
		addrs: map[uint64][]byte{60: make([]byte, 20)},
	})
	s.chain.register("broken.eth", &fakeResolver{broken: true})
	s.chain.register("offchain.eth", &fakeResolver{
		offchain: true,
		texts:    map[string]string{"email": "nick@ens.domains"},
	})
	s.chain.primary[ownerAddr] = "with-profile.eth"

	s.gateway = &gatewayStub{chain: s.chain, name: "offchain.eth", hits: counter.NewCounter()}
	s.client = New(Config{
		Caller: ccip.NewCaller(ccip.CallerCfg{
			Caller:  s.chain,
			Handler: s.gateway,
		}),
		UniversalResolver: urAddr,
		Multicall:         multicallAddr,
		Offchain:          s.gateway,
	})
}

func TestEnsSuite(t *testing.T) {
	suite.Run(t, new(ensSuite))
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func mustZlib(b []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(b); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func mustCBOR(v interface{}) []byte {
	b, err := cbor.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func (s *ensSuite) TestGetAddressRecord() {
	tests := []struct {
		name string
		coin interface{}
		want *ensdomain.AddressRecord
	}{
		{
			name: "default coin",
			coin: nil,
			want: &ensdomain.AddressRecord{CoinType: 60, Symbol: "eth", Value: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"},
		},
		{
			name: "btc by name",
			coin: "BTC",
			want: &ensdomain.AddressRecord{CoinType: 0, Symbol: "btc", Value: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"},
		},
		{
			name: "unset coin",
			coin: "BNB",
			want: nil,
		},
		{
			name: "zero bytes",
			coin: "op",
			want: nil,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res, err := s.client.GetAddressRecord(s.ctx, "with-profile.eth", tt.coin, false)
			s.Require().NoError(err)
			s.Equal(tt.want, res)
		})
	}
}

func (s *ensSuite) TestGetAddressRecord_ZeroAddress() {
	res, err := s.client.GetAddressRecord(s.ctx, "zero.eth", 60, true)
	s.Require().NoError(err)
	s.Nil(res)
}

func (s *ensSuite) TestGetAddressRecord_UnknownCoin() {
	res, err := s.client.GetAddressRecord(s.ctx, "with-profile.eth", "NOTACOIN", false)
	s.Nil(res)
	var notFound *CoinFormatterNotFoundError
	s.Require().ErrorAs(err, &notFound)
	s.Equal("NOTACOIN", notFound.Coin)
	s.Equal(0, s.chain.rpcCount())
}

func (s *ensSuite) TestGetTextRecord() {
	res, err := s.client.GetTextRecord(s.ctx, "with-profile.eth", "description", false)
	s.Require().NoError(err)
	s.Equal(&ensdomain.TextRecord{Key: "description", Value: "Hello2"}, res)

	res, err = s.client.GetTextRecord(s.ctx, "with-profile.eth", "missing", false)
	s.Require().NoError(err)
	s.Nil(res)
}

func (s *ensSuite) TestGetContentHashRecord() {
	res, err := s.client.GetContentHashRecord(s.ctx, "with-profile.eth", false)
	s.Require().NoError(err)
	s.Require().NotNil(res)
	s.Equal("ipfs", res.ProtocolType)
	s.NotEmpty(res.Decoded)

	res, err = s.client.GetContentHashRecord(s.ctx, "zero.eth", false)
	s.Require().NoError(err)
	s.Nil(res)
}

func (s *ensSuite) TestGetABIRecord() {
	tests := []struct {
		name string
		want *ensdomain.ABIRecord
	}{
		{
			name: "with-profile.eth",
			want: &ensdomain.ABIRecord{ContentType: ABIContentJSON, Decoded: true, ABI: abiDocument},
		},
		{
			name: "zlib-abi.eth",
			want: &ensdomain.ABIRecord{ContentType: ABIContentZlib, Decoded: true, ABI: abiDocument},
		},
		{
			name: "cbor-abi.eth",
			want: &ensdomain.ABIRecord{ContentType: ABIContentCBOR, Decoded: true, ABI: abiDocument},
		},
		{
			name: "uri-abi.eth",
			want: &ensdomain.ABIRecord{ContentType: ABIContentURI, Decoded: false, ABI: "https://example.com/abi.json"},
		},
		{
			name: "zero.eth",
			want: nil,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res, err := s.client.GetABIRecord(s.ctx, tt.name, 0, true)
			s.Require().NoError(err)
			s.Equal(tt.want, res)
		})
	}
}

func (s *ensSuite) TestGetABIRecord_MaskExcludes() {
	res, err := s.client.GetABIRecord(s.ctx, "with-profile.eth", ABIContentCBOR, true)
	s.Require().NoError(err)
	s.Nil(res)
}

func (s *ensSuite) TestABIDecode_UnknownContentType() {
	data, err := bAbi.ResolverABIRecord.Outputs.Pack(big.NewInt(16), []byte{0xde, 0xad})
	s.Require().NoError(err)

	res, err := ABI(0).Decode(data, true)
	s.Require().NoError(err)
	s.Equal(&ensdomain.ABIRecord{ContentType: 16, Decoded: false, ABI: "0xdead"}, res)
}

func (s *ensSuite) TestDecode_Strict() {
	garbage := []byte{0x01, 0x02, 0x03}
	coders := map[string]RecordCoder{
		"address":     Address(60),
		"text":        Text("url"),
		"contenthash": ContentHash(),
		"abi":         ABI(0),
	}
	for name, coder := range coders {
		s.Run(name, func() {
			res, err := coder.Decode(garbage, true)
			s.Error(err)
			s.Nil(res)

			res, err = coder.Decode(garbage, false)
			s.NoError(err)
			s.Nil(res)

			res, err = coder.Decode(nil, true)
			s.NoError(err)
			s.Nil(res)
		})
	}
}

func (s *ensSuite) TestResolveNameData_NoResolver() {
	call, err := Text("url").Encode(ensname.NameHash("nobody.eth"))
	s.Require().NoError(err)

	res, err := s.client.ResolveNameData(s.ctx, ResolveParams{Name: "nobody.eth", Data: call})
	s.NoError(err)
	s.Nil(res)

	res, err = s.client.ResolveNameData(s.ctx, ResolveParams{Name: "nobody.eth", Data: call, Strict: true})
	s.Nil(res)
	ce, ok := DecodeContractError(err)
	s.Require().True(ok)
	s.Equal("ResolverNotFound", ce.Name)
}

func (s *ensSuite) TestResolveNameData_ResolverError() {
	call, err := Text("url").Encode(ensname.NameHash("broken.eth"))
	s.Require().NoError(err)

	res, err := s.client.ResolveNameData(s.ctx, ResolveParams{Name: "broken.eth", Data: call})
	s.Nil(res)
	ce, ok := DecodeContractError(err)
	s.Require().True(ok)
	s.Equal("ResolverError", ce.Name)
}

func (s *ensSuite) TestResolveNameData_Overloads() {
	call, err := Text("url").Encode(ensname.NameHash("with-profile.eth"))
	s.Require().NoError(err)

	tests := []struct {
		name   string
		params ResolveParams
	}{
		{name: "single", params: ResolveParams{Data: call}},
		{name: "array", params: ResolveParams{DataArray: [][]byte{call}}},
		{name: "single gateways", params: ResolveParams{Data: call, GatewayURLs: []string{"https://gw.example"}}},
		{name: "array gateways", params: ResolveParams{DataArray: [][]byte{call}, GatewayURLs: []string{"https://gw.example"}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			tt.params.Name = "with-profile.eth"
			res, err := s.client.ResolveNameData(s.ctx, tt.params)
			s.Require().NoError(err)
			s.Require().NotNil(res)
			s.Equal(resolverAddr, res.ResolverAddress)

			data := res.Data
			if tt.params.DataArray != nil {
				s.Require().Len(res.Results, 1)
				s.True(res.Results[0].Success)
				data = res.Results[0].ReturnData
			}
			v, err := Text("url").Decode(data, true)
			s.Require().NoError(err)
			s.Equal(&ensdomain.TextRecord{Key: "url", Value: "https://twitter.com"}, v)
		})
	}
}

func (s *ensSuite) TestResolveNameData_Idempotent() {
	call, err := Address(nil).Encode(ensname.NameHash("with-profile.eth"))
	s.Require().NoError(err)
	p := ResolveParams{Name: "with-profile.eth", Data: call}

	first, err := s.client.ResolveNameData(s.ctx, p)
	s.Require().NoError(err)
	second, err := s.client.ResolveNameData(s.ctx, p)
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ensSuite) TestOversizedLabel() {
	name := strings.Repeat("a", 300) + ".eth"
	s.chain.register(name, &fakeResolver{texts: map[string]string{"url": "long"}})

	res, err := s.client.GetTextRecord(s.ctx, name, "url", true)
	s.Require().NoError(err)
	s.Equal(&ensdomain.TextRecord{Key: "url", Value: "long"}, res)
}

func (s *ensSuite) TestBatch() {
	res, err := s.client.Batch(s.ctx, false,
		s.client.GetTextRecordBatchable("with-profile.eth", "description"),
		s.client.GetAddressRecordBatchable("with-profile.eth", nil),
		s.client.GetContentHashRecordBatchable("zero.eth"),
		s.client.GetTextRecordBatchable("nobody.eth", "description"),
	)
	s.Require().NoError(err)
	s.Require().Len(res, 4)
	s.Equal(&ensdomain.TextRecord{Key: "description", Value: "Hello2"}, res[0])
	s.Equal(&ensdomain.AddressRecord{CoinType: 60, Symbol: "eth", Value: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"}, res[1])
	s.Nil(res[2])
	s.Nil(res[3])
	s.Equal(1, s.chain.rpcCount())
}

func (s *ensSuite) TestBatch_Nested() {
	res, err := s.client.Batch(s.ctx, false,
		NewBatch(
			s.client.GetTextRecordBatchable("with-profile.eth", "url"),
			s.client.GetAddressRecordBatchable("with-profile.eth", "btc"),
		),
		s.client.GetTextRecordBatchable("with-profile.eth", "description"),
	)
	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Equal([]interface{}{
		&ensdomain.TextRecord{Key: "url", Value: "https://twitter.com"},
		&ensdomain.AddressRecord{CoinType: 0, Symbol: "btc", Value: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"},
	}, res[0])
	s.Equal(&ensdomain.TextRecord{Key: "description", Value: "Hello2"}, res[1])
	s.Equal(1, s.chain.rpcCount())
}

func (s *ensSuite) TestBatch_Empty() {
	res, err := s.client.Batch(s.ctx, false)
	s.Require().NoError(err)
	s.Empty(res)
	s.Equal(0, s.chain.rpcCount())
}

func (s *ensSuite) TestBatch_Offchain() {
	res, err := s.client.Batch(s.ctx, false,
		s.client.GetTextRecordBatchable("offchain.eth", "email"),
		s.client.GetTextRecordBatchable("with-profile.eth", "url"),
	)
	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Equal(&ensdomain.TextRecord{Key: "email", Value: "nick@ens.domains"}, res[0])
	s.Equal(&ensdomain.TextRecord{Key: "url", Value: "https://twitter.com"}, res[1])
	s.Equal(1, s.gateway.hits.Count())
	// the multicall and one multicall of callbacks
	s.Equal(2, s.chain.rpcCount())
}

func (s *ensSuite) TestBatch_OffchainDedup() {
	res, err := s.client.Batch(s.ctx, true,
		s.client.GetTextRecordBatchable("offchain.eth", "email"),
		s.client.GetTextRecordBatchable("offchain.eth", "email"),
	)
	s.Require().NoError(err)
	want := &ensdomain.TextRecord{Key: "email", Value: "nick@ens.domains"}
	s.Equal([]interface{}{want, want}, res)
	s.Equal(1, s.gateway.hits.Count())
	s.Equal(2, s.chain.rpcCount())
}

func (s *ensSuite) TestBatch_OffchainGatewayDown() {
	errDown := errors.New("gateway down")
	s.gateway.err = errDown

	_, err := s.client.GetTextRecord(s.ctx, "offchain.eth", "email", true)
	s.Error(err)

	_, err = s.client.Batch(s.ctx, true,
		s.client.GetTextRecordBatchable("offchain.eth", "email"),
		s.client.GetTextRecordBatchable("with-profile.eth", "url"),
	)
	s.ErrorIs(err, errDown)

	res, err := s.client.Batch(s.ctx, false,
		s.client.GetTextRecordBatchable("offchain.eth", "email"),
		s.client.GetTextRecordBatchable("with-profile.eth", "url"),
	)
	s.Require().NoError(err)
	s.Equal([]interface{}{nil, &ensdomain.TextRecord{Key: "url", Value: "https://twitter.com"}}, res)
}

func (s *ensSuite) TestBatch_OffchainWithoutHandler() {
	client := New(Config{
		Caller:            s.chain,
		UniversalResolver: urAddr,
		Multicall:         multicallAddr,
	})
	res, err := client.Batch(s.ctx, true, client.GetTextRecordBatchable("offchain.eth", "email"))
	s.Require().NoError(err)
	s.Equal([]interface{}{nil}, res)
	s.Equal(0, s.gateway.hits.Count())
}

func (s *ensSuite) TestGetTextRecord_Offchain() {
	res, err := s.client.GetTextRecord(s.ctx, "offchain.eth", "email", true)
	s.Require().NoError(err)
	s.Equal(&ensdomain.TextRecord{Key: "email", Value: "nick@ens.domains"}, res)
	s.Equal(1, s.gateway.hits.Count())
}

func (s *ensSuite) TestResolveRecords_BatchGateway() {
	hits := counter.NewCounter()
	r := &fakeResolver{
		offchain: true,
		texts: map[string]string{
			"email": "nick@ens.domains",
			"url":   "https://ens.domains",
		},
	}
	srv := recordGateway(r, resolverAddr, hits)
	defer srv.Close()
	r.gateway = srv.URL
	s.chain.register("batch-offchain.eth", r)

	client := New(Config{
		Caller: ccip.NewCaller(ccip.CallerCfg{
			Caller:  s.chain,
			Handler: ccip.NewHandler(ccip.HandlerCfg{UniversalResolver: urAddr}),
		}),
		UniversalResolver: urAddr,
		Multicall:         multicallAddr,
	})
	res, err := client.ResolveRecords(s.ctx, "batch-offchain.eth", true, Text("email"), Text("email"), Text("url"))
	s.Require().NoError(err)
	s.Equal([]interface{}{
		&ensdomain.TextRecord{Key: "email", Value: "nick@ens.domains"},
		&ensdomain.TextRecord{Key: "email", Value: "nick@ens.domains"},
		&ensdomain.TextRecord{Key: "url", Value: "https://ens.domains"},
	}, res)
	// identical sub-queries reach the gateway once
	s.Equal(2, hits.Count())
}

func (s *ensSuite) TestResolveRecords() {
	res, err := s.client.ResolveRecords(s.ctx, "with-profile.eth", false,
		Text("description"),
		Text("missing"),
		Address("btc"),
		ContentHash(),
	)
	s.Require().NoError(err)
	s.Require().Len(res, 4)
	s.Equal(&ensdomain.TextRecord{Key: "description", Value: "Hello2"}, res[0])
	s.Nil(res[1])
	s.Equal(&ensdomain.AddressRecord{CoinType: 0, Symbol: "btc", Value: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"}, res[2])
	s.IsType(&ensdomain.ContentHash{}, res[3])
	s.Equal(1, s.chain.rpcCount())

	res, err = s.client.ResolveRecords(s.ctx, "nobody.eth", false, Text("description"))
	s.NoError(err)
	s.Nil(res)
}

func (s *ensSuite) TestGetRecords() {
	res, err := s.client.GetRecords(s.ctx, "with-profile.eth", RecordsOptions{
		Texts:       []string{"description", "url", "missing"},
		Coins:       []interface{}{60, "btc", "bnb"},
		ContentHash: true,
		ABI:         true,
	})
	s.Require().NoError(err)
	s.Require().NotNil(res)
	s.Equal("0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63", string(res.ResolverAddress))
	s.Equal([]ensdomain.TextRecord{
		{Key: "description", Value: "Hello2"},
		{Key: "url", Value: "https://twitter.com"},
	}, res.Texts)
	s.Equal([]ensdomain.AddressRecord{
		{CoinType: 60, Symbol: "eth", Value: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"},
		{CoinType: 0, Symbol: "btc", Value: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"},
	}, res.Coins)
	s.NotNil(res.ContentHash)
	s.Equal(&ensdomain.ABIRecord{ContentType: ABIContentJSON, Decoded: true, ABI: abiDocument}, res.ABI)
}

func (s *ensSuite) TestGetRecords_ResolverOnly() {
	res, err := s.client.GetRecords(s.ctx, "with-profile.eth", RecordsOptions{})
	s.Require().NoError(err)
	s.Equal(&ensdomain.Records{ResolverAddress: "0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63"}, res)

	res, err = s.client.GetRecords(s.ctx, "nobody.eth", RecordsOptions{})
	s.NoError(err)
	s.Nil(res)
}

func (s *ensSuite) TestGetResolver() {
	res, err := s.client.GetResolver(s.ctx, "with-profile.eth")
	s.Require().NoError(err)
	s.Equal(&resolverAddr, res)

	res, err = s.client.GetResolver(s.ctx, "nobody.eth")
	s.NoError(err)
	s.Nil(res)
}

func (s *ensSuite) TestGetName() {
	res, err := s.client.GetName(s.ctx, ownerAddr)
	s.Require().NoError(err)
	s.Equal(&ensdomain.NameResult{
		Name:                   "with-profile.eth",
		Match:                  true,
		ResolverAddress:        "0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63",
		ReverseResolverAddress: "0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63",
	}, res)

	res, err = s.client.GetName(s.ctx, common.HexToAddress("0x0000000000000000000000000000000000000001"))
	s.NoError(err)
	s.Nil(res)
}

func (s *ensSuite) TestSupportsInterface() {
	ok, err := s.client.SupportsInterface(s.ctx, resolverAddr, [4]byte{0x3b, 0x3b, 0x57, 0xde})
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.client.SupportsInterface(s.ctx, resolverAddr, [4]byte{0xde, 0xad, 0xbe, 0xef})
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.client.SupportsInterface(s.ctx, ownerAddr, [4]byte{0x3b, 0x3b, 0x57, 0xde})
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ensSuite) TestSplitContentHash() {
	tests := []struct {
		in       string
		protocol string
		decoded  string
	}{
		{in: "/ipfs/bafybeico3uuyj3vphxpvbowchdwjlrlrh62awxscrnii7w7flu5z6fk77y", protocol: "ipfs", decoded: "bafybeico3uuyj3vphxpvbowchdwjlrlrh62awxscrnii7w7flu5z6fk77y"},
		{in: "/ipns/app.uniswap.org", protocol: "ipns", decoded: "app.uniswap.org"},
		{in: "bzz://d1de9994b4d039f6548d191eb26786769f580809256b4685ef316805265ea162", protocol: "bzz", decoded: "d1de9994b4d039f6548d191eb26786769f580809256b4685ef316805265ea162"},
		{in: "onion3://p53lf57qovyuvwsc6xnrppyply3vtqm7l6pcobkmyqsiofyeznfu5uqd", protocol: "onion3", decoded: "p53lf57qovyuvwsc6xnrppyply3vtqm7l6pcobkmyqsiofyeznfu5uqd"},
		{in: "plain", protocol: "", decoded: "plain"},
	}
	for _, tt := range tests {
		protocol, decoded := splitContentHash(tt.in)
		s.Equal(tt.protocol, protocol, tt.in)
		s.Equal(tt.decoded, decoded, tt.in)
	}
}
