package ens

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zlib"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
)

// ABI record content types
const (
	ABIContentJSON uint64 = 1
	ABIContentZlib uint64 = 2
	ABIContentCBOR uint64 = 4
	ABIContentURI  uint64 = 8

	DefaultABIContentTypes = ABIContentJSON | ABIContentZlib | ABIContentCBOR | ABIContentURI
)

// cbor maps decode with string keys so the record stays json encodable
var cborDecMode cbor.DecMode

func init() {
	mode, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	cborDecMode = mode
}

type abiCoder struct {
	supported uint64
}

// ABI reads the ABI record in the first content type of the mask the
// resolver has. Zero means DefaultABIContentTypes.
func ABI(supportedContentTypes uint64) RecordCoder {
	if supportedContentTypes == 0 {
		supportedContentTypes = DefaultABIContentTypes
	}
	return &abiCoder{supported: supportedContentTypes}
}

func (a *abiCoder) Encode(node common.Hash) ([]byte, error) {
	return packCall(bAbi.ResolverABIRecord, [32]byte(node), new(big.Int).SetUint64(a.supported))
}

func (a *abiCoder) Decode(data []byte, strict bool) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out, err := bAbi.ResolverABIRecord.Outputs.Unpack(data)
	if err != nil {
		return lenient(err, strict)
	}
	contentType, ok1 := out[0].(*big.Int)
	raw, ok2 := out[1].([]byte)
	if !ok1 || !ok2 {
		return lenient(errUnexpectedOutput, strict)
	}
	if contentType.Sign() == 0 || len(raw) == 0 {
		return nil, nil
	}
	if !contentType.IsUint64() {
		return &ensdomain.ABIRecord{ABI: hexutil.Encode(raw)}, nil
	}

	record := &ensdomain.ABIRecord{ContentType: contentType.Uint64(), Decoded: true}
	switch record.ContentType {
	case ABIContentJSON:
		if err := json.Unmarshal(raw, &record.ABI); err != nil {
			return lenient(err, strict)
		}
	case ABIContentZlib:
		r, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return lenient(err, strict)
		}
		defer r.Close()
		inflated, err := io.ReadAll(r)
		if err != nil {
			return lenient(err, strict)
		}
		if err := json.Unmarshal(inflated, &record.ABI); err != nil {
			return lenient(err, strict)
		}
	case ABIContentCBOR:
		if err := cborDecMode.Unmarshal(raw, &record.ABI); err != nil {
			return lenient(err, strict)
		}
	case ABIContentURI:
		record.ABI = string(raw)
		record.Decoded = false
	default:
		record.ABI = hexutil.Encode(raw)
		record.Decoded = false
	}
	return record, nil
}
