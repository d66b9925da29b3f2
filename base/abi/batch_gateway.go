package abi

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

var BatchGatewayABI abi.ABI

var (
	BatchGatewayQuery     abi.Method
	BatchGatewayHttpError abi.Error
)

func init() {
	BatchGatewayABI = mustParse("batch gateway", batchGatewayABIJson)
	BatchGatewayQuery = BatchGatewayABI.Methods["query"]
	BatchGatewayHttpError = BatchGatewayABI.Errors["HttpError"]
}

var batchGatewayABIJson = `
[
  {
    "inputs": [
      {
        "components": [
          { "internalType": "address", "name": "sender", "type": "address" },
          { "internalType": "string[]", "name": "urls", "type": "string[]" },
          { "internalType": "bytes", "name": "callData", "type": "bytes" }
        ],
        "internalType": "struct OffchainLookup[]",
        "name": "queries",
        "type": "tuple[]"
      }
    ],
    "name": "query",
    "outputs": [
      { "internalType": "bool[]", "name": "failures", "type": "bool[]" },
      { "internalType": "bytes[]", "name": "responses", "type": "bytes[]" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "uint16", "name": "status", "type": "uint16" },
      { "internalType": "string", "name": "message", "type": "string" }
    ],
    "name": "HttpError",
    "type": "error"
  }
]
`
