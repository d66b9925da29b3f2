package ens

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	"github.com/x-xyz/ensgo/base/coin"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
)

type addressCoder struct {
	coin interface{}
}

// Address reads the address record of a coin given by type, decimal string
// or name. A nil coin means ether.
func Address(c interface{}) RecordCoder {
	return &addressCoder{coin: c}
}

func (a *addressCoder) formatter() (coin.Formatter, error) {
	f, ok := coin.Lookup(a.coin)
	if !ok {
		return coin.Formatter{}, &CoinFormatterNotFoundError{Coin: a.coin}
	}
	return f, nil
}

func (a *addressCoder) Encode(node common.Hash) ([]byte, error) {
	f, err := a.formatter()
	if err != nil {
		return nil, err
	}
	if f.Type == coin.TypeETH {
		return packCall(bAbi.ResolverAddr, [32]byte(node))
	}
	return packCall(bAbi.ResolverAddrCoin, [32]byte(node), new(big.Int).SetUint64(f.Type))
}

func (a *addressCoder) Decode(data []byte, strict bool) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	f, err := a.formatter()
	if err != nil {
		return lenient(err, strict)
	}

	var raw []byte
	if f.Type == coin.TypeETH {
		out, err := bAbi.ResolverAddr.Outputs.Unpack(data)
		if err != nil {
			return lenient(err, strict)
		}
		addr, ok := out[0].(common.Address)
		if !ok {
			return lenient(errUnexpectedOutput, strict)
		}
		raw = addr.Bytes()
	} else {
		out, err := bAbi.ResolverAddrCoin.Outputs.Unpack(data)
		if err != nil {
			return lenient(err, strict)
		}
		b, ok := out[0].([]byte)
		if !ok {
			return lenient(errUnexpectedOutput, strict)
		}
		raw = b
	}
	if isZero(raw) {
		return nil, nil
	}

	value, err := f.Encode(raw)
	if err != nil {
		return lenient(err, strict)
	}
	return &ensdomain.AddressRecord{
		CoinType: f.Type,
		Symbol:   f.Name,
		Value:    value,
	}, nil
}
