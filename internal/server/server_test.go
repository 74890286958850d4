package server

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"blockworld/internal/gamedata"
	"blockworld/internal/network"
	"blockworld/internal/world"
)

func newTestServer(t *testing.T) (*GameServer, *network.LocalClient) {
	t.Helper()
	client, endpoint := network.NewLocalPair()
	data := gamedata.Builtin()
	logger := log.New(io.Discard, "", 0)
	return New(endpoint, data, logger, DefaultConfig()), client
}

func drain(c *network.LocalClient) []network.ClientEvent {
	var events []network.ClientEvent
	for {
		ev := c.ReceiveEvent()
		if _, none := ev.(network.NoEvent); none {
			return events
		}
		events = append(events, ev)
	}
}

func TestGameDataSentOnConnect(t *testing.T) {
	srv, client := newTestServer(t)
	srv.Step()

	events := drain(client)
	require.Len(t, events, 2)
	require.IsType(t, network.Connected{}, events[0])
	msg, ok := events[1].(network.ServerMessage)
	require.True(t, ok)
	gd, ok := msg.Msg.(network.GameData)
	require.True(t, ok)
	require.NoError(t, gd.Data.Validate())
}

func TestNoChunksBeforePosition(t *testing.T) {
	srv, client := newTestServer(t)
	srv.Step()
	drain(client)

	srv.Step()
	require.Empty(t, drain(client))
}

func TestChunksStreamAroundPosition(t *testing.T) {
	srv, client := newTestServer(t)
	srv.Step()
	drain(client)

	client.Send(network.SetPos{X: 0.5, Y: 1.0, Z: 0.5})
	total := 0
	var first *world.Chunk
	for i := 0; i < 64; i++ {
		srv.Step()
		for _, ev := range drain(client) {
			msg, ok := ev.(network.ServerMessage)
			require.True(t, ok)
			cd, ok := msg.Msg.(network.ChunkData)
			require.True(t, ok)
			if first == nil {
				first = cd.Chunk
			}
			total++
		}
	}

	side := 2*DefaultConfig().ViewRadius + 1
	require.Equal(t, side*side*side, total)

	// nearest first: the player's own chunk is the first one streamed
	require.Equal(t, world.ChunkPos{X: 0, Y: 0, Z: 0}, first.Pos)
	// surface chunk: grass at world y=0, air above
	grass, ok := srv.data.Blocks.GetIDByName("grass")
	require.True(t, ok)
	require.Equal(t, world.BlockID(grass), first.GetBlock(5, 0, 5))
	require.Equal(t, world.AirBlock, first.GetBlock(5, 1, 5))
}

func TestChunkSendsBoundedPerTick(t *testing.T) {
	srv, client := newTestServer(t)
	srv.Step()
	drain(client)

	client.Send(network.SetPos{X: 0, Y: 0, Z: 0})
	srv.Step()
	require.LessOrEqual(t, len(drain(client)), DefaultConfig().MaxChunkSendsPerTick)
}

func TestChunksNotResent(t *testing.T) {
	srv, client := newTestServer(t)
	srv.Step()
	drain(client)

	client.Send(network.SetPos{X: 0, Y: 0, Z: 0})
	for i := 0; i < 64; i++ {
		srv.Step()
	}
	seen := make(map[world.ChunkPos]bool)
	for _, ev := range drain(client) {
		cd := ev.(network.ServerMessage).Msg.(network.ChunkData)
		require.False(t, seen[cd.Chunk.Pos], "chunk %v sent twice", cd.Chunk.Pos)
		seen[cd.Chunk.Pos] = true
	}

	// standing still adds nothing
	client.Send(network.SetPos{X: 0, Y: 0, Z: 0})
	srv.Step()
	require.Empty(t, drain(client))
}

func TestDisconnectDropsPlayer(t *testing.T) {
	srv, client := newTestServer(t)
	srv.Step()
	require.Len(t, srv.players, 1)

	client.Close()
	srv.Step()
	require.Empty(t, srv.players)
}
