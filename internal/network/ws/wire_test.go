package ws

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blockworld/internal/gamedata"
	"blockworld/internal/network"
	"blockworld/internal/world"
)

func TestGameDataRoundTrip(t *testing.T) {
	sent := gamedata.Builtin()

	frame, err := encodeToClient(network.GameData{Data: sent})
	require.NoError(t, err)

	msg, err := decodeToClient(frame)
	require.NoError(t, err)
	gd, ok := msg.(network.GameData)
	require.True(t, ok)

	require.NoError(t, gd.Data.Validate())
	require.Equal(t, sent.Blocks.Len(), gd.Data.Blocks.Len())
	require.Equal(t, sent.Items.Len(), gd.Data.Items.Len())
	require.Equal(t, sent.Meshes, gd.Data.Meshes)
	require.Equal(t, sent.TextureAtlas.Pix, gd.Data.TextureAtlas.Pix)
}

func TestChunkRoundTrip(t *testing.T) {
	c := world.NewChunk(world.ChunkPos{X: -3, Y: 1, Z: 7})
	c.SetBlock(0, 0, 0, 2)
	c.SetBlock(31, 31, 31, 5)

	frame, err := encodeToClient(network.ChunkData{Chunk: c})
	require.NoError(t, err)

	msg, err := decodeToClient(frame)
	require.NoError(t, err)
	cd, ok := msg.(network.ChunkData)
	require.True(t, ok)
	require.Equal(t, c.Pos, cd.Chunk.Pos)
	require.Equal(t, c.Blocks(), cd.Chunk.Blocks())
}

func TestSetPosRoundTrip(t *testing.T) {
	frame, err := encodeToServer(network.SetPos{X: 1.5, Y: -2.25, Z: 64})
	require.NoError(t, err)

	msg, err := decodeToServer(frame)
	require.NoError(t, err)
	require.Equal(t, network.SetPos{X: 1.5, Y: -2.25, Z: 64}, msg)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := decodeToClient([]byte(`{"type":"NOPE"}`))
	require.Error(t, err)
	_, err = decodeToServer([]byte(`{"type":"NOPE"}`))
	require.Error(t, err)
}

func TestEncodeGameDataWithoutDefsFails(t *testing.T) {
	_, err := encodeToClient(network.GameData{Data: &gamedata.Data{}})
	require.Error(t, err)
}
