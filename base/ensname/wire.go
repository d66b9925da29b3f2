// Package ensname converts ENS names into their on-chain forms: DNS wire
// packets, namehashes and labelhashes.
package ensname

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// MaxLabelLength is the longest label a length-prefixed DNS label can carry
const MaxLabelLength = 255

var (
	ErrPacketTruncated = errors.New("dns packet truncated")
	ErrPacketTrailing  = errors.New("dns packet has trailing bytes")
)

// Packet encodes name in DNS wire format. Labels over MaxLabelLength bytes
// are replaced by their bracketed labelhash first.
func Packet(name string) []byte {
	name = strings.TrimPrefix(strings.TrimSuffix(name, "."), ".")
	if name == "" {
		return []byte{0}
	}

	labels := strings.Split(name, ".")
	buf := make([]byte, 0, len(name)+2)
	for _, label := range labels {
		if len(label) > MaxLabelLength {
			label = EncodeLabelhash(crypto.Keccak256Hash([]byte(label)))
		}
		buf = append(buf, byte(len(label)))
		buf = append(buf, label...)
	}
	return append(buf, 0)
}

// DecodePacket reverses Packet. Oversized labels come back in their
// bracketed labelhash form.
func DecodePacket(packet []byte) (string, error) {
	labels := []string{}
	off := 0
	for {
		if off >= len(packet) {
			return "", ErrPacketTruncated
		}
		n := int(packet[off])
		off++
		if n == 0 {
			break
		}
		if off+n > len(packet) {
			return "", ErrPacketTruncated
		}
		labels = append(labels, string(packet[off:off+n]))
		off += n
	}
	if off != len(packet) {
		return "", ErrPacketTrailing
	}
	return strings.Join(labels, "."), nil
}
