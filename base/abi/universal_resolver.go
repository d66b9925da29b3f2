package abi

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

var UniversalResolverABI abi.ABI

// resolve overloads, indexed by [withGateways][arrayData]
var UniversalResolverResolve [2][2]abi.Method

// reverse overloads, indexed by withGateways
var UniversalResolverReverse [2]abi.Method

func init() {
	UniversalResolverABI = mustParse("universal resolver", universalResolverABIJson)

	UniversalResolverResolve = [2][2]abi.Method{
		{
			mustMethodBySig(UniversalResolverABI, "resolve(bytes,bytes)"),
			mustMethodBySig(UniversalResolverABI, "resolve(bytes,bytes[])"),
		},
		{
			mustMethodBySig(UniversalResolverABI, "resolve(bytes,bytes,string[])"),
			mustMethodBySig(UniversalResolverABI, "resolve(bytes,bytes[],string[])"),
		},
	}
	UniversalResolverReverse = [2]abi.Method{
		mustMethodBySig(UniversalResolverABI, "reverse(bytes)"),
		mustMethodBySig(UniversalResolverABI, "reverse(bytes,string[])"),
	}
}

var universalResolverABIJson = `
[
  {
    "inputs": [{ "internalType": "bytes", "name": "name", "type": "bytes" }],
    "name": "findResolver",
    "outputs": [
      { "internalType": "contract Resolver", "name": "resolver", "type": "address" },
      { "internalType": "bytes32", "name": "node", "type": "bytes32" },
      { "internalType": "uint256", "name": "offset", "type": "uint256" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "name", "type": "bytes" },
      { "internalType": "bytes", "name": "data", "type": "bytes" }
    ],
    "name": "resolve",
    "outputs": [
      { "internalType": "bytes", "name": "data", "type": "bytes" },
      { "internalType": "address", "name": "resolver", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "name", "type": "bytes" },
      { "internalType": "bytes[]", "name": "data", "type": "bytes[]" }
    ],
    "name": "resolve",
    "outputs": [
      {
        "components": [
          { "internalType": "bool", "name": "success", "type": "bool" },
          { "internalType": "bytes", "name": "returnData", "type": "bytes" }
        ],
        "internalType": "struct Result[]",
        "name": "results",
        "type": "tuple[]"
      },
      { "internalType": "address", "name": "resolver", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "name", "type": "bytes" },
      { "internalType": "bytes", "name": "data", "type": "bytes" },
      { "internalType": "string[]", "name": "gateways", "type": "string[]" }
    ],
    "name": "resolve",
    "outputs": [
      { "internalType": "bytes", "name": "data", "type": "bytes" },
      { "internalType": "address", "name": "resolver", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "name", "type": "bytes" },
      { "internalType": "bytes[]", "name": "data", "type": "bytes[]" },
      { "internalType": "string[]", "name": "gateways", "type": "string[]" }
    ],
    "name": "resolve",
    "outputs": [
      {
        "components": [
          { "internalType": "bool", "name": "success", "type": "bool" },
          { "internalType": "bytes", "name": "returnData", "type": "bytes" }
        ],
        "internalType": "struct Result[]",
        "name": "results",
        "type": "tuple[]"
      },
      { "internalType": "address", "name": "resolver", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "bytes", "name": "reverseName", "type": "bytes" }],
    "name": "reverse",
    "outputs": [
      { "internalType": "string", "name": "resolvedName", "type": "string" },
      { "internalType": "address", "name": "resolvedAddress", "type": "address" },
      { "internalType": "address", "name": "reverseResolver", "type": "address" },
      { "internalType": "address", "name": "resolver", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "reverseName", "type": "bytes" },
      { "internalType": "string[]", "name": "gateways", "type": "string[]" }
    ],
    "name": "reverse",
    "outputs": [
      { "internalType": "string", "name": "resolvedName", "type": "string" },
      { "internalType": "address", "name": "resolvedAddress", "type": "address" },
      { "internalType": "address", "name": "reverseResolver", "type": "address" },
      { "internalType": "address", "name": "resolver", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "bytes", "name": "response", "type": "bytes" },
      { "internalType": "bytes", "name": "extraData", "type": "bytes" }
    ],
    "name": "resolveCallback",
    "outputs": [
      { "internalType": "bytes", "name": "", "type": "bytes" },
      { "internalType": "address", "name": "", "type": "address" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  { "inputs": [], "name": "ResolverNotFound", "type": "error" },
  { "inputs": [], "name": "ResolverWildcardNotSupported", "type": "error" },
  { "inputs": [], "name": "ResolverNotContract", "type": "error" },
  {
    "inputs": [{ "internalType": "bytes", "name": "returnData", "type": "bytes" }],
    "name": "ResolverError",
    "type": "error"
  },
  {
    "inputs": [
      {
        "components": [
          { "internalType": "uint16", "name": "status", "type": "uint16" },
          { "internalType": "string", "name": "message", "type": "string" }
        ],
        "internalType": "struct HttpErrorItem[]",
        "name": "errors",
        "type": "tuple[]"
      }
    ],
    "name": "HttpError",
    "type": "error"
  },
  {
    "inputs": [
      { "internalType": "address", "name": "sender", "type": "address" },
      { "internalType": "string[]", "name": "urls", "type": "string[]" },
      { "internalType": "bytes", "name": "callData", "type": "bytes" },
      { "internalType": "bytes4", "name": "callbackFunction", "type": "bytes4" },
      { "internalType": "bytes", "name": "extraData", "type": "bytes" }
    ],
    "name": "OffchainLookup",
    "type": "error"
  }
]
`
