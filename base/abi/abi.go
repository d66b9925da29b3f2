package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

func mustParse(name, raw string) abi.ABI {
	_abi, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("Failed to parse " + name + " abi: " + err.Error())
	}
	return _abi
}

// MethodBySig finds a method by its canonical signature, which is the only
// unambiguous handle on overloaded functions
func MethodBySig(a abi.ABI, sig string) (abi.Method, bool) {
	for _, m := range a.Methods {
		if m.Sig == sig {
			return m, true
		}
	}
	return abi.Method{}, false
}

func mustMethodBySig(a abi.ABI, sig string) abi.Method {
	m, ok := MethodBySig(a, sig)
	if !ok {
		panic("method not found in abi: " + sig)
	}
	return m
}
