package ens

import (
	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/domain"
)

// AddressRecord is a multicoin address record in the coin's text form
type AddressRecord struct {
	CoinType uint64 `json:"coinType"`
	Symbol   string `json:"symbol"`
	Value    string `json:"value"`
}

type TextRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ContentHash is a decoded contenthash record, e.g. ipfs + the CID
type ContentHash struct {
	ProtocolType string `json:"protocolType"`
	Decoded      string `json:"decoded"`
}

// ABIRecord holds the ABI stored for a name. Decoded is false when ABI is a
// uri or the hex of an unknown content type.
type ABIRecord struct {
	ContentType uint64      `json:"contentType"`
	Decoded     bool        `json:"decoded"`
	ABI         interface{} `json:"abi"`
}

type Records struct {
	ResolverAddress domain.Address  `json:"resolverAddress"`
	Texts           []TextRecord    `json:"texts,omitempty"`
	Coins           []AddressRecord `json:"coins,omitempty"`
	ContentHash     *ContentHash    `json:"contentHash,omitempty"`
	ABI             *ABIRecord      `json:"abi,omitempty"`
}

// NameResult is the primary name of an address. Match reports whether the
// name forward resolves back to the address.
type NameResult struct {
	Name                   string         `json:"name"`
	Match                  bool           `json:"match"`
	ResolverAddress        domain.Address `json:"resolverAddress"`
	ReverseResolverAddress domain.Address `json:"reverseResolverAddress"`
}

type RecordsQuery struct {
	Texts       []string
	Coins       []string
	ContentHash bool
	ABI         bool
	Strict      bool
}

// Usecase returns nil values, not errors, for records a name does not have
type Usecase interface {
	GetAddress(c ctx.Ctx, name string, coin string, strict bool) (*AddressRecord, error)
	GetText(c ctx.Ctx, name string, key string, strict bool) (*TextRecord, error)
	GetContentHash(c ctx.Ctx, name string, strict bool) (*ContentHash, error)
	GetABI(c ctx.Ctx, name string, strict bool) (*ABIRecord, error)
	GetRecords(c ctx.Ctx, name string, query RecordsQuery) (*Records, error)
	GetResolver(c ctx.Ctx, name string) (*domain.Address, error)
	GetName(c ctx.Ctx, address domain.Address) (*NameResult, error)
}
