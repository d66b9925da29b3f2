package abi

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

var PublicResolverABI abi.ABI

var (
	ResolverAddr        abi.Method
	ResolverAddrCoin    abi.Method
	ResolverText        abi.Method
	ResolverContenthash abi.Method
	ResolverABIRecord   abi.Method
	ResolverMulticall   abi.Method
)

func init() {
	PublicResolverABI = mustParse("public resolver", publicResolverABIJson)

	ResolverAddr = mustMethodBySig(PublicResolverABI, "addr(bytes32)")
	ResolverAddrCoin = mustMethodBySig(PublicResolverABI, "addr(bytes32,uint256)")
	ResolverText = mustMethodBySig(PublicResolverABI, "text(bytes32,string)")
	ResolverContenthash = mustMethodBySig(PublicResolverABI, "contenthash(bytes32)")
	ResolverABIRecord = mustMethodBySig(PublicResolverABI, "ABI(bytes32,uint256)")
	ResolverMulticall = mustMethodBySig(PublicResolverABI, "multicall(bytes[])")
}

var publicResolverABIJson = `
[
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "addr",
    "outputs": [{ "internalType": "address payable", "name": "", "type": "address" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "uint256", "name": "coinType", "type": "uint256" }
    ],
    "name": "addr",
    "outputs": [{ "internalType": "bytes", "name": "", "type": "bytes" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "string", "name": "key", "type": "string" }
    ],
    "name": "text",
    "outputs": [{ "internalType": "string", "name": "", "type": "string" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "bytes32", "name": "node", "type": "bytes32" }],
    "name": "contenthash",
    "outputs": [{ "internalType": "bytes", "name": "", "type": "bytes" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "uint256", "name": "contentTypes", "type": "uint256" }
    ],
    "name": "ABI",
    "outputs": [
      { "internalType": "uint256", "name": "", "type": "uint256" },
      { "internalType": "bytes", "name": "", "type": "bytes" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "bytes[]", "name": "data", "type": "bytes[]" }],
    "name": "multicall",
    "outputs": [{ "internalType": "bytes[]", "name": "results", "type": "bytes[]" }],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]
`
