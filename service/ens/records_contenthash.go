package ens

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	goens "github.com/wealdtech/go-ens/v3"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
)

type contentHashCoder struct{}

func ContentHash() RecordCoder {
	return contentHashCoder{}
}

func (contentHashCoder) Encode(node common.Hash) ([]byte, error) {
	return packCall(bAbi.ResolverContenthash, [32]byte(node))
}

func (contentHashCoder) Decode(data []byte, strict bool) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out, err := bAbi.ResolverContenthash.Outputs.Unpack(data)
	if err != nil {
		return lenient(err, strict)
	}
	raw, ok := out[0].([]byte)
	if !ok {
		return lenient(errUnexpectedOutput, strict)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	text, err := goens.ContenthashToString(raw)
	if err != nil {
		return lenient(err, strict)
	}
	protocol, decoded := splitContentHash(text)
	return &ensdomain.ContentHash{ProtocolType: protocol, Decoded: decoded}, nil
}

// splitContentHash splits "/ipfs/<cid>" and "bzz://<hash>" forms
func splitContentHash(text string) (string, string) {
	if strings.HasPrefix(text, "/") {
		parts := strings.SplitN(text[1:], "/", 2)
		if len(parts) == 2 {
			return parts[0], parts[1]
		}
	}
	if i := strings.Index(text, "://"); i > 0 {
		return text[:i], text[i+3:]
	}
	return "", text
}
