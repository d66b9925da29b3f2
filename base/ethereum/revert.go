package ethereum

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// RevertData extracts the raw revert payload carried by an eth_call error
func RevertData(err error) ([]byte, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}
	switch data := dataErr.ErrorData().(type) {
	case []byte:
		return data, true
	case hexutil.Bytes:
		return data, true
	case string:
		if !strings.HasPrefix(data, "0x") {
			return nil, false
		}
		b, err := hexutil.Decode(data)
		if err != nil {
			return nil, false
		}
		return b, true
	}
	return nil, false
}

// RevertError is an eth_call failure carrying revert data, the shape rpc.DataError has on the wire
type RevertError struct {
	Message string
	Data    []byte
}

func NewRevertError(data []byte) *RevertError {
	return &RevertError{Message: "execution reverted", Data: data}
}

func (e *RevertError) Error() string {
	return e.Message
}

func (e *RevertError) ErrorData() interface{} {
	return hexutil.Encode(e.Data)
}
