package ws

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"blockworld/internal/world"
)

// encodeRLE encodes chunk contents as base64(varint pairs). The pairs are
// (block_id, run_len) repeated. Flat terrain compresses to a handful of
// runs, which is why chunks are shipped whole instead of as deltas.
func encodeRLE(ids []world.BlockID) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(ids) {
		b := ids[i]
		run := 1
		for j := i + 1; j < len(ids) && ids[j] == b; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(b))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// decodeRLE decodes exactly one chunk volume of block ids. A payload that
// is short, long or malformed is rejected; the receiver treats that as a
// protocol error, never as a partial chunk.
func decodeRLE(b64 string) ([world.ChunkVolume]world.BlockID, error) {
	var out [world.ChunkVolume]world.BlockID

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return out, err
	}
	w := 0
	for i := 0; i < len(raw); {
		b, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return out, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return out, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if b > 0xFFFF {
			return out, fmt.Errorf("block id too large: %d", b)
		}
		if uint64(w)+run > world.ChunkVolume {
			return out, fmt.Errorf("run overflows chunk volume")
		}
		for k := uint64(0); k < run; k++ {
			out[w] = world.BlockID(b)
			w++
		}
	}
	if w != world.ChunkVolume {
		return out, fmt.Errorf("decoded %d of %d blocks", w, world.ChunkVolume)
	}
	return out, nil
}
