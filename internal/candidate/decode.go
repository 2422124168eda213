package candidate

import (
	"encoding/binary"
	"fmt"
)

// DecodeError reports a posting-list blob that could not be parsed under
// any of the supported encodings. The engine logs and skips the offending
// key rather than failing the whole query.
type DecodeError struct {
	Len int
	N   int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("candidate: cannot decode posting blob of length %d (n=%d)", e.Len, e.N)
}

// DecodeRowIDs decodes a posting-list blob into its row_id list. The
// offline index loader is free to pick any of several encodings depending
// on how dense a key's postings are, so the decoder applies a priority
// list of heuristics:
//
//  1. If n is known and len(blob) == n*4 (or n*8), the blob is a packed
//     little-endian array of uint32 (or uint64) — the common case for a
//     loader that tracked its own count.
//  2. Otherwise, if the length alone is a clean multiple of 8 or 4, treat
//     it as the same packed layout with a count implied by the length.
//  3. Otherwise, treat the blob as a sequence of LEB128-encoded unsigned
//     varints. If those varints look implausibly small to be row IDs on
//     their own (every value fits in a handful of bits) while their
//     running sum traces a plausible ascending row_id sequence, treat the
//     sequence as delta-encoded against the previous row_id rather than
//     absolute.
func DecodeRowIDs(blob []byte, n int) ([]uint64, error) {
	if len(blob) == 0 {
		return nil, nil
	}

	if n > 0 && len(blob) == n*4 {
		return decodePackedU32(blob), nil
	}
	if n > 0 && len(blob) == n*8 {
		return decodePackedU64(blob), nil
	}
	if len(blob)%8 == 0 {
		return decodePackedU64(blob), nil
	}
	if len(blob)%4 == 0 {
		return decodePackedU32(blob), nil
	}

	raw, err := decodeVarints(blob)
	if err != nil {
		return nil, &DecodeError{Len: len(blob), N: n}
	}
	return resolveDeltas(raw), nil
}

func decodePackedU32(blob []byte) []uint64 {
	out := make([]uint64, len(blob)/4)
	for i := range out {
		out[i] = uint64(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return out
}

func decodePackedU64(blob []byte) []uint64 {
	out := make([]uint64, len(blob)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(blob[i*8:])
	}
	return out
}

// decodeVarints reads a dense run of LEB128 unsigned varints until the
// blob is exhausted. A truncated final varint is an error.
func decodeVarints(blob []byte) ([]uint64, error) {
	var out []uint64
	i := 0
	for i < len(blob) {
		v, n := binary.Uvarint(blob[i:])
		if n <= 0 {
			return nil, fmt.Errorf("candidate: truncated varint at byte %d", i)
		}
		out = append(out, v)
		i += n
	}
	return out, nil
}

// varintDeltaThreshold bounds how large a raw varint value may be while
// still being considered a plausible delta between two row IDs rather than
// a row ID in its own right. Row ID space is large (full roll scale); a
// value this small essentially never occurs as an absolute row ID in the
// corpora this format targets, whereas gaps this small between
// consecutively-assigned IDs are common.
const varintDeltaThreshold = 1 << 16

// resolveDeltas decides whether raw is an absolute row_id list or a
// delta-encoded one and returns the absolute row_id list either way.
func resolveDeltas(raw []uint64) []uint64 {
	if len(raw) <= 1 {
		return raw
	}
	allSmall := true
	for _, v := range raw {
		if v >= varintDeltaThreshold {
			allSmall = false
			break
		}
	}
	if !allSmall {
		return raw
	}

	out := make([]uint64, len(raw))
	out[0] = raw[0]
	for i := 1; i < len(raw); i++ {
		out[i] = out[i-1] + raw[i]
	}
	return out
}
