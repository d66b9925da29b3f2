package domain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
)

// ContractCaller is the read half of go-ethereum/ethclient
type ContractCaller interface {
	CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error)
}
