package coin

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
	solbase58 "github.com/mr-tron/base58"
)

func init() {
	Register(Formatter{Type: 0, Name: "btc", Encode: bitcoinLike(0x00, 0x05, "bc")})
	Register(Formatter{Type: 2, Name: "ltc", Encode: bitcoinLike(0x30, 0x32, "ltc")})
	Register(Formatter{Type: 3, Name: "doge", Encode: bitcoinLike(0x1e, 0x16, "")})
	Register(Formatter{Type: TypeETH, Name: "eth", Encode: evmChecksum})
	Register(Formatter{Type: 61, Name: "etc", Encode: evmChecksum})
	Register(Formatter{Type: 501, Name: "sol", Encode: solana})
	Register(Formatter{Type: 714, Name: "bnb", Encode: bech32Plain("bnb")})

	evmChains := map[string]uint64{
		"op":    10,
		"bsc":   56,
		"gno":   100,
		"matic": 137,
		"base":  8453,
		"arb1":  42161,
		"celo":  42220,
	}
	for name, chainId := range evmChains {
		Register(Formatter{Type: EVMCoinType(chainId), Name: name, Encode: evmChecksum})
	}
}

func evmChecksum(b []byte) (string, error) {
	if len(b) != common.AddressLength {
		return "", ErrInvalidAddressBytes
	}
	return common.BytesToAddress(b).Hex(), nil
}

func solana(b []byte) (string, error) {
	if len(b) != 32 {
		return "", ErrInvalidAddressBytes
	}
	return solbase58.Encode(b), nil
}

func bech32Plain(hrp string) func([]byte) (string, error) {
	return func(b []byte) (string, error) {
		if len(b) != 20 {
			return "", ErrInvalidAddressBytes
		}
		return bech32.EncodeFromBase256(hrp, b)
	}
}

// bitcoinLike decodes an output script (p2pkh, p2sh or segwit) into an address
func bitcoinLike(p2pkh, p2sh byte, hrp string) func([]byte) (string, error) {
	return func(script []byte) (string, error) {
		switch {
		case len(script) == 25 && script[0] == 0x76 && script[1] == 0xa9 && script[2] == 0x14 &&
			bytes.Equal(script[23:], []byte{0x88, 0xac}):
			return base58.CheckEncode(script[3:23], p2pkh), nil
		case len(script) == 23 && script[0] == 0xa9 && script[1] == 0x14 && script[22] == 0x87:
			return base58.CheckEncode(script[2:22], p2sh), nil
		case hrp != "" && len(script) >= 4 && int(script[1]) == len(script)-2:
			return segwit(hrp, script)
		}
		return "", ErrInvalidAddressBytes
	}
}

func segwit(hrp string, script []byte) (string, error) {
	var version byte
	switch op := script[0]; {
	case op == 0x00:
		version = 0
	case op >= 0x51 && op <= 0x60:
		version = op - 0x50
	default:
		return "", ErrInvalidAddressBytes
	}
	program, err := bech32.ConvertBits(script[2:], 8, 5, true)
	if err != nil {
		return "", err
	}
	data := append([]byte{version}, program...)
	if version == 0 {
		return bech32.Encode(hrp, data)
	}
	return bech32.EncodeM(hrp, data)
}
