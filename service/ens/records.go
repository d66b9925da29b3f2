package ens

import (
	"github.com/ethereum/go-ethereum/common"
)

// RecordCoder encodes one resolver record call and decodes its result.
// Decode returns nil for absent records; with strict unset a malformed
// result decodes to nil too.
type RecordCoder interface {
	Encode(node common.Hash) ([]byte, error)
	Decode(data []byte, strict bool) (interface{}, error)
}

func lenient(err error, strict bool) (interface{}, error) {
	if strict {
		return nil, err
	}
	return nil, nil
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
