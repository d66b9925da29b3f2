package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type ChainId int32

const (
	ChainIdMainnet ChainId = 1
	ChainIdSepolia ChainId = 11155111
)

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) IsValid() bool {
	return common.IsHexAddress(string(a))
}

func (a Address) ToCommon() common.Address {
	return common.HexToAddress(string(a))
}

// Deployment holds the contract addresses the resolution pipeline talks to
type Deployment struct {
	UniversalResolver Address
	Multicall3        Address
	Registry          Address
}

// Multicall3Address is the same on every chain
const Multicall3Address = Address("0xca11bde05977b3631167028862be2a173976ca11")

var ChainIdDeploymentMap map[ChainId]Deployment = map[ChainId]Deployment{
	ChainIdMainnet: {
		UniversalResolver: "0xce01f8eee7e479c928f8919abd53e553a36cef67",
		Multicall3:        Multicall3Address,
		Registry:          "0x00000000000c2e074ec69a0dfb2997ba6c7d2e1e",
	},
	ChainIdSepolia: {
		UniversalResolver: "0xc8af999e38273d658be1b921b88a9ddf005769cc",
		Multicall3:        Multicall3Address,
		Registry:          "0x00000000000c2e074ec69a0dfb2997ba6c7d2e1e",
	},
}
