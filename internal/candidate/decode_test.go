package candidate

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packU32(ids ...uint32) []byte {
	out := make([]byte, len(ids)*4)
	for i, id := range ids {
		binary.LittleEndian.PutUint32(out[i*4:], id)
	}
	return out
}

func packU64(ids ...uint64) []byte {
	out := make([]byte, len(ids)*8)
	for i, id := range ids {
		binary.LittleEndian.PutUint64(out[i*8:], id)
	}
	return out
}

func packVarints(ids ...uint64) []byte {
	var out []byte
	buf := make([]byte, binary.MaxVarintLen64)
	for _, id := range ids {
		n := binary.PutUvarint(buf, id)
		out = append(out, buf[:n]...)
	}
	return out
}

func TestDecodeEmptyBlob(t *testing.T) {
	ids, err := DecodeRowIDs(nil, 0)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestDecodePackedU32WithCompanionCount(t *testing.T) {
	blob := packU32(10, 20, 30)
	ids, err := DecodeRowIDs(blob, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 20, 30}, ids)
}

func TestDecodePackedU64WithCompanionCount(t *testing.T) {
	blob := packU64(1_000_000_000, 2_000_000_000)
	ids, err := DecodeRowIDs(blob, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1_000_000_000, 2_000_000_000}, ids)
}

func TestDecodePackedFallsBackOnLengthAlone(t *testing.T) {
	blob := packU64(7, 8, 9)
	ids, err := DecodeRowIDs(blob, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7, 8, 9}, ids)
}

func TestDecodeVarintAbsolute(t *testing.T) {
	// At least one value too large to be a plausible delta, so the whole
	// sequence is treated as absolute row IDs. Blob length (9 bytes) is
	// not a multiple of 4 or 8, so it can't be mistaken for packed ints.
	blob := packVarints(100, 5_000_000, 90_000_000)
	ids, err := DecodeRowIDs(blob, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{100, 5_000_000, 90_000_000}, ids)
}

func TestDecodeVarintDeltaEncoded(t *testing.T) {
	// Five single-byte varints: 5 bytes total, not a multiple of 4 or 8.
	blob := packVarints(100, 5, 3, 40, 2)
	ids, err := DecodeRowIDs(blob, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint64{100, 105, 108, 148, 150}, ids)
}

func TestDecodeTruncatedVarintErrors(t *testing.T) {
	_, err := DecodeRowIDs([]byte{0x80, 0x80, 0x80}, 0)
	assert.Error(t, err)
}
