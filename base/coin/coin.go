// Package coin keeps the registry of coin types an ENS address record can be
// formatted for. The registry is open: callers may Register further coins.
package coin

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const (
	// TypeETH is the SLIP-44 coin type of ether, resolved with addr(bytes32)
	TypeETH uint64 = 60

	// evmBit marks ENSIP-11 coin types derived from an EVM chain id
	evmBit uint64 = 0x80000000
)

var ErrInvalidAddressBytes = errors.New("invalid address bytes")

// Formatter turns the raw bytes stored in a multicoin record into the
// coin's canonical text form
type Formatter struct {
	Type   uint64
	Name   string
	Encode func([]byte) (string, error)
}

type registry struct {
	mu     sync.RWMutex
	byType map[uint64]Formatter
	byName map[string]Formatter
}

var global = &registry{
	byType: map[uint64]Formatter{},
	byName: map[string]Formatter{},
}

// Register adds or replaces a formatter
func Register(f Formatter) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.byType[f.Type] = f
	global.byName[strings.ToLower(f.Name)] = f
}

// ByType looks a formatter up by coin type
func ByType(coinType uint64) (Formatter, bool) {
	global.mu.RLock()
	defer global.mu.RUnlock()
	f, ok := global.byType[coinType]
	return f, ok
}

// ByName looks a formatter up by coin name, case insensitive
func ByName(name string) (Formatter, bool) {
	global.mu.RLock()
	defer global.mu.RUnlock()
	f, ok := global.byName[strings.ToLower(name)]
	return f, ok
}

// Lookup accepts a coin type (numeric types or a decimal string) or a coin name
func Lookup(coin interface{}) (Formatter, bool) {
	switch v := coin.(type) {
	case nil:
		return ByType(TypeETH)
	case uint64:
		return ByType(v)
	case uint32:
		return ByType(uint64(v))
	case int:
		if v < 0 {
			return Formatter{}, false
		}
		return ByType(uint64(v))
	case int64:
		if v < 0 {
			return Formatter{}, false
		}
		return ByType(uint64(v))
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return ByType(n)
		}
		return ByName(v)
	}
	return Formatter{}, false
}

// EVMCoinType returns the ENSIP-11 coin type for an EVM chain id
func EVMCoinType(chainId uint64) uint64 {
	if chainId == 1 {
		return TypeETH
	}
	return evmBit | chainId
}

// Types lists every registered coin type in ascending order
func Types() []uint64 {
	global.mu.RLock()
	defer global.mu.RUnlock()
	types := make([]uint64, 0, len(global.byType))
	for t := range global.byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
