package ensname

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestPacket(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "root", in: "", want: "0x00"},
		{name: "tld", in: "eth", want: "0x0365746800"},
		{name: "second level", in: "test.eth", want: "0x04746573740365746800"},
		{name: "trailing dot", in: "test.eth.", want: "0x04746573740365746800"},
		{name: "leading dot", in: ".eth", want: "0x0365746800"},
		{name: "leading and trailing dot", in: ".test.eth.", want: "0x04746573740365746800"},
		{name: "lone dot", in: ".", want: "0x00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, hexutil.Encode(Packet(tt.in)))
		})
	}
}

func TestPacket_OversizedLabel(t *testing.T) {
	req := require.New(t)
	long := strings.Repeat("a", 300)
	packet := Packet(long + ".eth")

	// 1 length byte + 66 placeholder bytes + "\x03eth\x00"
	req.Len(packet, 1+66+5)
	req.Equal(byte(66), packet[0])

	decoded, err := DecodePacket(packet)
	req.NoError(err)
	placeholder := EncodeLabelhash(crypto.Keccak256Hash([]byte(long)))
	req.Equal(placeholder+".eth", decoded)
	req.NotContains(decoded, long)
}

func TestPacket_MaxLabelKept(t *testing.T) {
	req := require.New(t)
	label := strings.Repeat("b", MaxLabelLength)
	decoded, err := DecodePacket(Packet(label))
	req.NoError(err)
	req.Equal(label, decoded)
}

func TestDecodePacket_Errors(t *testing.T) {
	_, err := DecodePacket([]byte{3, 'e', 't'})
	require.ErrorIs(t, err, ErrPacketTruncated)

	_, err = DecodePacket([]byte{0, 1})
	require.ErrorIs(t, err, ErrPacketTrailing)

	_, err = DecodePacket(nil)
	require.ErrorIs(t, err, ErrPacketTruncated)
}

func TestNameHash(t *testing.T) {
	req := require.New(t)
	req.Equal(common.Hash{}, NameHash(""))
	req.Equal("0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae", NameHash("eth").Hex())
	req.Equal("0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f", NameHash("foo.eth").Hex())
}

func TestNameHash_EncodedLabel(t *testing.T) {
	req := require.New(t)
	long := strings.Repeat("c", 256)
	placeholder := EncodeLabelhash(crypto.Keccak256Hash([]byte(long)))
	req.Equal(NameHash(long+".eth"), NameHash(placeholder+".eth"))
}

func TestDecodeLabelhash(t *testing.T) {
	req := require.New(t)
	h := crypto.Keccak256Hash([]byte("vitalik"))
	got, ok := DecodeLabelhash(EncodeLabelhash(h))
	req.True(ok)
	req.Equal(h, got)

	_, ok = DecodeLabelhash("[zz]")
	req.False(ok)
	_, ok = DecodeLabelhash("vitalik")
	req.False(ok)
}

func TestReverseName(t *testing.T) {
	addr := common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	require.Equal(t, "3c44cdddb6a900fa2b585dd299e03d12fa4293bc.addr.reverse", ReverseName(addr))
}
