package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	require.Equal(t, byte(0xff), Checksum(nil))
	require.Equal(t, byte(0xff-0x42), Checksum([]byte{0x42}))
	// sum wraps at 8 bits
	require.Equal(t, byte(0xff-0x01), Checksum([]byte{0xff, 0x02}))
}

func TestChecksumSingleByteCorruption(t *testing.T) {
	frame := []byte{Header, 0x05, byte(OpControls), 50, 50, 50, 0}
	sum := Checksum(frame)
	for i := range frame {
		for bit := uint(0); bit < 8; bit++ {
			corrupted := append([]byte(nil), frame...)
			corrupted[i] ^= 1 << bit
			require.NotEqualf(t, sum, Checksum(corrupted), "byte %d bit %d", i, bit)
		}
	}
}

func TestEncodeControls(t *testing.T) {
	raw, err := Encode(OpControls, []byte{50, 50, 50, 0})
	require.NoError(t, err)
	chk := byte(0xff - ((0x42 + 0x05 + 0x20 + 50 + 50 + 50 + 0) % 256))
	require.Equal(t, []byte{0x42, 0x05, 0x20, 50, 50, 50, 0, chk}, raw)

	pkt, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, OpControls, pkt.Opcode)
	require.Equal(t, []byte{50, 50, 50, 0}, pkt.Data)
	require.Equal(t, byte(5), pkt.Length)
	require.Equal(t, Header, pkt.Header)
	require.True(t, pkt.Valid())
}

func TestEncodeNoData(t *testing.T) {
	raw, err := Encode(OpFlightMode, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{Header, 1, byte(OpFlightMode), Checksum([]byte{Header, 1, byte(OpFlightMode)})}, raw)
}

func TestRoundTrip(t *testing.T) {
	for _, op := range DefaultRegistry().Opcodes() {
		for size := 0; size <= MaxPacketDataSize-1; size++ {
			data := make([]byte, size)
			for i := range data {
				data[i] = byte(i*7 + int(op))
			}
			raw, err := Encode(op, data)
			require.NoError(t, err)
			require.Len(t, raw, size+Overhead)
			pkt, err := Decode(raw)
			require.NoError(t, err)
			require.Equal(t, op, pkt.Opcode)
			require.Equal(t, data, pkt.Data)
			require.True(t, pkt.Valid())
		}
	}
}

func TestEncodeTooLarge(t *testing.T) {
	_, err := Encode(OpString, make([]byte, MaxPacketDataSize))
	require.Equal(t, ErrFrameTooLarge, err)
	_, err = EncodePacket(OpString, make([]byte, 100))
	require.Equal(t, ErrFrameTooLarge, err)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		raw  []byte
		err  error
	}{
		{"empty", nil, ErrShortFrame},
		{"short", []byte{Header, 1, 0}, ErrShortFrame},
		{"length too big", []byte{Header, 3, 0, 1, 0}, ErrLengthMismatch},
		{"length too small", []byte{Header, 1, 0, 1, 2, 0}, ErrLengthMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			require.Equal(t, tc.err, err)
		})
	}
}

func TestDecodeDoesNotValidate(t *testing.T) {
	raw := MustEncode(OpWord, 1, 2)
	raw[len(raw)-1]++
	pkt, err := Decode(raw)
	require.NoError(t, err)
	require.False(t, pkt.Valid())
	require.Equal(t, raw[len(raw)-1], pkt.Checksum)
}

func TestPacketWriteTo(t *testing.T) {
	pkt, err := EncodePacket(OpByte, []byte{7})
	require.NoError(t, err)
	var buf bytes.Buffer
	n, err := pkt.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, pkt.Raw, buf.Bytes())
}
