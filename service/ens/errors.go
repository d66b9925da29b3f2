package ens

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"

	bAbi "github.com/x-xyz/ensgo/base/abi"
	bEth "github.com/x-xyz/ensgo/base/ethereum"
)

var errUnexpectedOutput = errors.New("unexpected contract output")

// CoinFormatterNotFoundError is returned when an address record is asked for a coin the registry does not know
type CoinFormatterNotFoundError struct {
	Coin interface{}
}

func (e *CoinFormatterNotFoundError) Error() string {
	return fmt.Sprintf("no address formatter for coin %v", e.Coin)
}

// ContractError is a revert decoded against the Universal Resolver errors.
// Err is the original call error.
type ContractError struct {
	Name string
	Args []interface{}
	Err  error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("universal resolver reverted with %s", e.Name)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

var universalResolverErrors = map[[4]byte]abi.Error{}

func init() {
	for _, e := range bAbi.UniversalResolverABI.Errors {
		var sel [4]byte
		id := e.ID
		copy(sel[:], id[:4])
		universalResolverErrors[sel] = e
	}
}

// DecodeContractError decodes the revert data of a call error. It reports
// false for errors that carry no revert data or an unknown selector.
func DecodeContractError(err error) (*ContractError, bool) {
	data, ok := bEth.RevertData(err)
	if !ok || len(data) < 4 {
		return nil, false
	}
	var sel [4]byte
	copy(sel[:], data[:4])
	e, ok := universalResolverErrors[sel]
	if !ok {
		return nil, false
	}
	args, uerr := e.Inputs.Unpack(data[4:])
	if uerr != nil {
		return nil, false
	}
	return &ContractError{Name: e.Name, Args: args, Err: err}, true
}

// isBenign reports the reverts that only mean the name has no usable resolver
func isBenign(err error) bool {
	ce, ok := DecodeContractError(err)
	if !ok {
		return false
	}
	switch ce.Name {
	case "ResolverNotFound", "ResolverWildcardNotSupported", "ResolverNotContract":
		return true
	}
	return false
}
