// Package ws carries the synchronization channel over a websocket. Messages
// are JSON envelopes routed by a type field; chunk contents travel as
// run-length encoded varints and the game data definitions travel
// zstd-compressed.
package ws

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"blockworld/internal/gamedata"
	"blockworld/internal/network"
	"blockworld/internal/world"
)

// Message types.
const (
	typeGameData = "GAME_DATA"
	typeChunk    = "CHUNK"
	typeSetPos   = "SET_POS"
)

// baseMessage lets us route JSON messages by type.
type baseMessage struct {
	Type string `json:"type"`
}

type gameDataMsg struct {
	Type string `json:"type"`
	// Defs is zstd-compressed JSON of gamedata.Defs. The receiver rebuilds
	// registries and atlas locally; the built form never hits the wire.
	Defs []byte `json:"defs"`
}

type chunkMsg struct {
	Type   string   `json:"type"`
	Pos    [3]int64 `json:"pos"`
	Blocks string   `json:"blocks"` // base64(varint RLE)
}

type setPosMsg struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

var (
	zstdEnc, _ = zstd.NewWriter(nil)
	zstdDec, _ = zstd.NewReader(nil)
)

func encodeToClient(msg network.ToClient) ([]byte, error) {
	switch m := msg.(type) {
	case network.GameData:
		if m.Data == nil || m.Data.Defs == nil {
			return nil, fmt.Errorf("ws: game data has no definitions to encode")
		}
		raw, err := json.Marshal(m.Data.Defs)
		if err != nil {
			return nil, fmt.Errorf("ws: encode game data: %w", err)
		}
		return json.Marshal(gameDataMsg{
			Type: typeGameData,
			Defs: zstdEnc.EncodeAll(raw, nil),
		})

	case network.ChunkData:
		blocks := m.Chunk.Blocks()
		return json.Marshal(chunkMsg{
			Type:   typeChunk,
			Pos:    [3]int64{m.Chunk.Pos.X, m.Chunk.Pos.Y, m.Chunk.Pos.Z},
			Blocks: encodeRLE(blocks[:]),
		})
	}
	return nil, fmt.Errorf("ws: unsupported server message %T", msg)
}

func decodeToClient(raw []byte) (network.ToClient, error) {
	var base baseMessage
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, fmt.Errorf("ws: bad message: %w", err)
	}
	switch base.Type {
	case typeGameData:
		var m gameDataMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("ws: bad game data message: %w", err)
		}
		defsJSON, err := zstdDec.DecodeAll(m.Defs, nil)
		if err != nil {
			return nil, fmt.Errorf("ws: decompress game data: %w", err)
		}
		var defs gamedata.Defs
		if err := json.Unmarshal(defsJSON, &defs); err != nil {
			return nil, fmt.Errorf("ws: decode game data: %w", err)
		}
		data, err := gamedata.Build(&defs)
		if err != nil {
			return nil, fmt.Errorf("ws: build game data: %w", err)
		}
		return network.GameData{Data: data}, nil

	case typeChunk:
		var m chunkMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("ws: bad chunk message: %w", err)
		}
		blocks, err := decodeRLE(m.Blocks)
		if err != nil {
			return nil, fmt.Errorf("ws: chunk %v: %w", m.Pos, err)
		}
		pos := world.ChunkPos{X: m.Pos[0], Y: m.Pos[1], Z: m.Pos[2]}
		return network.ChunkData{Chunk: world.NewChunkFromBlocks(pos, blocks)}, nil
	}
	return nil, fmt.Errorf("ws: unknown message type %q", base.Type)
}

func encodeToServer(msg network.ToServer) ([]byte, error) {
	switch m := msg.(type) {
	case network.SetPos:
		return json.Marshal(setPosMsg{Type: typeSetPos, X: m.X, Y: m.Y, Z: m.Z})
	}
	return nil, fmt.Errorf("ws: unsupported client message %T", msg)
}

func decodeToServer(raw []byte) (network.ToServer, error) {
	var base baseMessage
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, fmt.Errorf("ws: bad message: %w", err)
	}
	switch base.Type {
	case typeSetPos:
		var m setPosMsg
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("ws: bad set_pos message: %w", err)
		}
		return network.SetPos{X: m.X, Y: m.Y, Z: m.Z}, nil
	}
	return nil, fmt.Errorf("ws: unknown message type %q", base.Type)
}
