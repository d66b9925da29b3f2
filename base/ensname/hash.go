package ensname

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EncodeLabelhash renders a labelhash as the `[<hex>]` placeholder label
func EncodeLabelhash(hash common.Hash) string {
	return "[" + hex.EncodeToString(hash[:]) + "]"
}

// DecodeLabelhash parses a `[<hex>]` placeholder label
func DecodeLabelhash(label string) (common.Hash, bool) {
	if len(label) != 66 || label[0] != '[' || label[65] != ']' {
		return common.Hash{}, false
	}
	b, err := hex.DecodeString(label[1:65])
	if err != nil {
		return common.Hash{}, false
	}
	return common.BytesToHash(b), true
}

// LabelHash hashes one label; placeholder labels yield the hash they carry
func LabelHash(label string) common.Hash {
	if h, ok := DecodeLabelhash(label); ok {
		return h
	}
	return crypto.Keccak256Hash([]byte(label))
}

// NameHash implements the ENSIP-1 namehash over an already normalized name
func NameHash(name string) common.Hash {
	var node common.Hash
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := LabelHash(labels[i])
		node = crypto.Keccak256Hash(node[:], label[:])
	}
	return node
}

// ReverseName returns the addr.reverse name of an address
func ReverseName(address common.Address) string {
	return strings.ToLower(address.Hex()[2:]) + ".addr.reverse"
}
