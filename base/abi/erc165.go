package abi

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ERC165ABI abi.ABI

func init() {
	ERC165ABI = mustParse("erc165", erc165ABIJson)
}

var erc165ABIJson = `[{"type":"function","name":"supportsInterface","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"bytes4","name":"interfaceID"}],"outputs":[{"type":"bool"}]}]`
