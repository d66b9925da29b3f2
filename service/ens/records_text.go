package ens

import (
	"github.com/ethereum/go-ethereum/common"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
)

type textCoder struct {
	key string
}

func Text(key string) RecordCoder {
	return &textCoder{key: key}
}

func (t *textCoder) Encode(node common.Hash) ([]byte, error) {
	return packCall(bAbi.ResolverText, [32]byte(node), t.key)
}

func (t *textCoder) Decode(data []byte, strict bool) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out, err := bAbi.ResolverText.Outputs.Unpack(data)
	if err != nil {
		return lenient(err, strict)
	}
	value, ok := out[0].(string)
	if !ok {
		return lenient(errUnexpectedOutput, strict)
	}
	if value == "" {
		return nil, nil
	}
	return &ensdomain.TextRecord{Key: t.key, Value: value}, nil
}
