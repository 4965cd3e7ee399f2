package game

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool() *RoomPool {
	p := NewRoomPool(newTestGameConfig(), newTestLogger(), testQuestions, nil)
	p.SetRandFactory(func() *rand.Rand { return rand.New(rand.NewSource(1)) })
	return p
}

func readEnvelopesNonBlocking(c *ClientConn) []Envelope {
	var envs []Envelope
	for {
		select {
		case msg := <-c.send:
			var env Envelope
			if json.Unmarshal(msg, &env) == nil {
				envs = append(envs, env)
			}
		default:
			return envs
		}
	}
}

func findEnvelope(envs []Envelope, eventType string) (Envelope, bool) {
	for i := len(envs) - 1; i >= 0; i-- {
		if envs[i].Type == eventType {
			return envs[i], true
		}
	}
	return Envelope{}, false
}

func mustPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func createRoom(t *testing.T, pool *RoomPool, conn *ClientConn, username string) string {
	t.Helper()
	pool.HandleEnvelope(conn, Identity{}, Envelope{
		Type:    eventPlayerAttemptCreateRoom,
		Payload: mustPayload(t, CreateRoomPayload{Username: username}),
	})
	env, ok := findEnvelope(readEnvelopesNonBlocking(conn), eventPlayerCreateRoomSuccess)
	require.True(t, ok, "no create ack")
	var state RoomStatePayload
	require.NoError(t, json.Unmarshal(env.Payload, &state))
	require.NotEmpty(t, state.RoomCode)
	return state.RoomCode
}

func TestRoomPool_CreateRoom(t *testing.T) {
	pool := newTestPool()
	conn := newTestConn()

	code := createRoom(t, pool, conn, "alice")
	assert.Len(t, code, 4)
	assert.True(t, pool.RoomExists(code))
	assert.Equal(t, 1, pool.RoomCount())
}

func TestRoomPool_CreateRoomWithoutUsername(t *testing.T) {
	pool := newTestPool()
	conn := newTestConn()

	pool.HandleEnvelope(conn, Identity{}, Envelope{
		Type:    eventPlayerAttemptCreateRoom,
		Payload: mustPayload(t, CreateRoomPayload{}),
	})

	env, ok := findEnvelope(readEnvelopesNonBlocking(conn), eventPlayerCreateRoomFailure)
	require.True(t, ok)
	var failure FailurePayload
	require.NoError(t, json.Unmarshal(env.Payload, &failure))
	assert.Equal(t, "Username cannot be empty.", failure.Reason)
	assert.Equal(t, 0, pool.RoomCount())
}

func TestRoomPool_CreateRoomDefaultsToAccountName(t *testing.T) {
	pool := newTestPool()
	conn := newTestConn()

	pool.HandleEnvelope(conn, Identity{UserID: "user-1", DisplayName: "Alice"}, Envelope{
		Type:    eventPlayerAttemptCreateRoom,
		Payload: mustPayload(t, CreateRoomPayload{}),
	})

	env, ok := findEnvelope(readEnvelopesNonBlocking(conn), eventPlayerCreateRoomSuccess)
	require.True(t, ok, "no create ack")
	var state RoomStatePayload
	require.NoError(t, json.Unmarshal(env.Payload, &state))
	assert.Equal(t, "Alice", state.Username)
}

func TestRoomPool_JoinRoomDefaultsToAccountName(t *testing.T) {
	pool := newTestPool()
	creator := newTestConn()
	joiner := newTestConn()
	code := createRoom(t, pool, creator, "alice")

	pool.HandleEnvelope(joiner, Identity{UserID: "user-2", DisplayName: "Bob"}, Envelope{
		Type:    eventPlayerAttemptJoinRoom,
		Payload: mustPayload(t, JoinRoomPayload{RoomCode: code}),
	})

	env, ok := findEnvelope(readEnvelopesNonBlocking(joiner), eventPlayerJoinRoomSuccess)
	require.True(t, ok, "no join ack")
	var state RoomStatePayload
	require.NoError(t, json.Unmarshal(env.Payload, &state))
	assert.Equal(t, "Bob", state.Username)
}

func TestRoomPool_JoinRoom(t *testing.T) {
	pool := newTestPool()
	creator := newTestConn()
	joiner := newTestConn()
	code := createRoom(t, pool, creator, "alice")

	pool.HandleEnvelope(joiner, Identity{}, Envelope{
		Type:    eventPlayerAttemptJoinRoom,
		Payload: mustPayload(t, JoinRoomPayload{Username: "bob", RoomCode: code}),
	})

	envs := readEnvelopesNonBlocking(joiner)
	_, ok := findEnvelope(envs, eventPlayerJoinRoomSuccess)
	assert.True(t, ok)

	// Both were also sent the fresh lobby roster.
	env, ok := findEnvelope(readEnvelopesNonBlocking(creator), eventUpdateLobby)
	require.True(t, ok)
	var lobby RoomStatePayload
	require.NoError(t, json.Unmarshal(env.Payload, &lobby))
	assert.Len(t, lobby.PlayerList, 2)
	assert.True(t, lobby.IsLeader, "the creator leads the room")
}

func TestRoomPool_JoinFailures(t *testing.T) {
	pool := newTestPool()
	creator := newTestConn()
	code := createRoom(t, pool, creator, "alice")

	t.Run("unknown room code", func(t *testing.T) {
		conn := newTestConn()
		pool.HandleEnvelope(conn, Identity{}, Envelope{
			Type:    eventPlayerAttemptJoinRoom,
			Payload: mustPayload(t, JoinRoomPayload{Username: "bob", RoomCode: "ZZZZ"}),
		})
		env, ok := findEnvelope(readEnvelopesNonBlocking(conn), eventPlayerJoinRoomFailure)
		require.True(t, ok)
		var failure FailurePayload
		require.NoError(t, json.Unmarshal(env.Payload, &failure))
		assert.Equal(t, "Room code does not exist: ZZZZ", failure.Reason)
	})

	t.Run("taken username", func(t *testing.T) {
		conn := newTestConn()
		pool.HandleEnvelope(conn, Identity{}, Envelope{
			Type:    eventPlayerAttemptJoinRoom,
			Payload: mustPayload(t, JoinRoomPayload{Username: "alice", RoomCode: code}),
		})
		env, ok := findEnvelope(readEnvelopesNonBlocking(conn), eventPlayerJoinRoomFailure)
		require.True(t, ok)
		var failure FailurePayload
		require.NoError(t, json.Unmarshal(env.Payload, &failure))
		assert.Equal(t, "Username is already taken.", failure.Reason)
	})
}

func TestRoomPool_LeaveRemovesEmptyRoom(t *testing.T) {
	pool := newTestPool()
	conn := newTestConn()
	code := createRoom(t, pool, conn, "alice")

	pool.HandleEnvelope(conn, Identity{}, Envelope{Type: eventPlayerAttemptLeaveRoom})

	_, ok := findEnvelope(readEnvelopesNonBlocking(conn), eventPlayerLeaveRoomSuccess)
	assert.True(t, ok)
	assert.False(t, pool.RoomExists(code))
	assert.Equal(t, 0, pool.RoomCount())
}

func TestRoomPool_LeaveWithoutRoom(t *testing.T) {
	pool := newTestPool()
	conn := newTestConn()

	pool.HandleEnvelope(conn, Identity{}, Envelope{Type: eventPlayerAttemptLeaveRoom})

	env, ok := findEnvelope(readEnvelopesNonBlocking(conn), eventPlayerLeaveRoomFailure)
	require.True(t, ok)
	var failure FailurePayload
	require.NoError(t, json.Unmarshal(env.Payload, &failure))
	assert.Equal(t, "Room does not exist.", failure.Reason)
}

func TestRoomPool_DisconnectKeepsRoomForOthers(t *testing.T) {
	pool := newTestPool()
	creator := newTestConn()
	joiner := newTestConn()
	code := createRoom(t, pool, creator, "alice")
	pool.HandleEnvelope(joiner, Identity{}, Envelope{
		Type:    eventPlayerAttemptJoinRoom,
		Payload: mustPayload(t, JoinRoomPayload{Username: "bob", RoomCode: code}),
	})

	pool.Disconnect(creator)
	assert.True(t, pool.RoomExists(code), "bob is still there")

	// Leadership moved to bob, visible in his next roster frame.
	env, ok := findEnvelope(readEnvelopesNonBlocking(joiner), eventUpdateLobby)
	require.True(t, ok)
	var lobby RoomStatePayload
	require.NoError(t, json.Unmarshal(env.Payload, &lobby))
	assert.True(t, lobby.IsLeader)

	pool.Disconnect(joiner)
	assert.False(t, pool.RoomExists(code))
}

func TestRoomPool_StartGame(t *testing.T) {
	pool := newTestPool()
	creator := newTestConn()
	joiner := newTestConn()
	code := createRoom(t, pool, creator, "alice")
	pool.HandleEnvelope(joiner, Identity{}, Envelope{
		Type:    eventPlayerAttemptJoinRoom,
		Payload: mustPayload(t, JoinRoomPayload{Username: "bob", RoomCode: code}),
	})

	t.Run("non-leader cannot start", func(t *testing.T) {
		pool.HandleEnvelope(joiner, Identity{}, Envelope{Type: eventPlayerAttemptStartGame})
		envs := readEnvelopesNonBlocking(joiner)
		_, inGame := findEnvelope(envs, eventUpdateGame)
		assert.False(t, inGame)
	})

	t.Run("leader starts and everyone gets a game frame", func(t *testing.T) {
		pool.HandleEnvelope(creator, Identity{}, Envelope{Type: eventPlayerAttemptStartGame})

		for _, conn := range []*ClientConn{creator, joiner} {
			_, ok := findEnvelope(readEnvelopesNonBlocking(conn), eventUpdateGame)
			assert.True(t, ok)
		}
	})

	t.Run("in-game events route to the room", func(t *testing.T) {
		// The opening dialog belongs to the absent host, so a client event
		// that nobody may fire changes nothing, while the frame still shows
		// the current phase.
		pool.HandleEnvelope(creator, Identity{}, Envelope{Type: eventHotSeatWalkAway})
		env, ok := findEnvelope(readEnvelopesNonBlocking(creator), eventUpdateGame)
		require.True(t, ok)
		var state ClientState
		require.NoError(t, json.Unmarshal(env.Payload, &state))
		assert.False(t, state.ClientIsShowHost)
	})

	t.Run("leader ends the game", func(t *testing.T) {
		pool.HandleEnvelope(creator, Identity{}, Envelope{Type: eventPlayerAttemptEndGame})
		_, ok := findEnvelope(readEnvelopesNonBlocking(creator), eventUpdateLobby)
		assert.True(t, ok)
	})
}

func TestRoomPool_StartGameAsShowHost(t *testing.T) {
	pool := newTestPool()
	creator := newTestConn()
	joiner := newTestConn()
	code := createRoom(t, pool, creator, "alice")
	pool.HandleEnvelope(joiner, Identity{}, Envelope{
		Type:    eventPlayerAttemptJoinRoom,
		Payload: mustPayload(t, JoinRoomPayload{Username: "bob", RoomCode: code}),
	})

	pool.HandleEnvelope(creator, Identity{}, Envelope{
		Type:    eventPlayerAttemptStartGame,
		Payload: mustPayload(t, StartGamePayload{PlayShowHost: true}),
	})

	env, ok := findEnvelope(readEnvelopesNonBlocking(creator), eventUpdateGame)
	require.True(t, ok)
	var state ClientState
	require.NoError(t, json.Unmarshal(env.Payload, &state))
	assert.True(t, state.ClientIsShowHost)
	require.NotNil(t, state.ShowHostStepDialog)
	assert.NotEmpty(t, state.ShowHostStepDialog.Actions, "a human host gets clickable options")
}

func TestRoomPool_StatsHookRecordsLoggedInPlayers(t *testing.T) {
	pool := newTestPool()
	var started []string
	pool.SetStatsHooks(func(userID string) { started = append(started, userID) }, nil)

	creator := newTestConn()
	joiner := newTestConn()
	pool.HandleEnvelope(creator, Identity{UserID: "user-1"}, Envelope{
		Type:    eventPlayerAttemptCreateRoom,
		Payload: mustPayload(t, CreateRoomPayload{Username: "alice"}),
	})
	env, ok := findEnvelope(readEnvelopesNonBlocking(creator), eventPlayerCreateRoomSuccess)
	require.True(t, ok)
	var state RoomStatePayload
	require.NoError(t, json.Unmarshal(env.Payload, &state))

	// bob plays anonymously, so only alice's account is touched.
	pool.HandleEnvelope(joiner, Identity{}, Envelope{
		Type:    eventPlayerAttemptJoinRoom,
		Payload: mustPayload(t, JoinRoomPayload{Username: "bob", RoomCode: state.RoomCode}),
	})
	pool.HandleEnvelope(creator, Identity{}, Envelope{Type: eventPlayerAttemptStartGame})

	assert.Equal(t, []string{"user-1"}, started)
}

func TestRandRoomCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := randRoomCode()
		if len(code) != 4 {
			t.Fatalf("code %q has length %d, want 4", code, len(code))
		}
		for _, r := range code {
			if r == 'I' || r == 'O' || r == '0' || r == '1' {
				t.Fatalf("code %q contains a confusable character", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("codes do not vary")
	}
}
