package ccip

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	bCtx "github.com/x-xyz/ensgo/base/ctx"
)

// Request is one offchain lookup: the contract that asked, its gateways and the call data
type Request struct {
	Sender   common.Address
	URLs     []string
	CallData []byte
}

// key identifies requests that must produce the same gateway response
func (r Request) key() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(r.Sender.Hex()))
	fmt.Fprintf(&b, "|%d", len(r.URLs))
	// urls are length prefixed so no separator inside a url can alias another list
	for _, u := range r.URLs {
		fmt.Fprintf(&b, "|%d:%s", len(u), u)
	}
	b.WriteString("|" + hexutil.Encode(r.CallData))
	return b.String()
}

// Response is the positional outcome of one batched lookup
type Response struct {
	IsError bool
	Data    []byte
	// Err is the handler error behind IsError, nil for decoded responses
	Err error
}

// RequestHandler answers offchain lookups with the bytes handed to the callback
type RequestHandler interface {
	Handle(ctx bCtx.Ctx, req Request) ([]byte, error)
}

// HttpError is a failed gateway round trip
type HttpError struct {
	Status  uint16
	Message string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("gateway error %d: %s", e.Status, e.Message)
}
