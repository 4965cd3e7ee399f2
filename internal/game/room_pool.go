package game

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"log/slog"
	mrand "math/rand"
	"sync"
	"time"
)

const directoryWriteTimeout = 2 * time.Second

// RoomPool owns every room on the server: creation, joining by code, and
// routing of in-game events to the right room.
type RoomPool struct {
	mu     sync.Mutex
	rooms  map[string]*Room
	byConn map[*ClientConn]*Room

	cfg       Config
	log       *slog.Logger
	questions QuestionSource
	directory RoomDirectory
	newRand   func() *mrand.Rand

	// onPayout persists money awards for logged-in players. May be nil.
	onPayout func(userID string, amount int)

	// onGameStarted and onHotSeatWin persist per-player stats. May be nil.
	onGameStarted func(userID string)
	onHotSeatWin  func(userID string)
}

func NewRoomPool(cfg Config, log *slog.Logger, questions QuestionSource, directory RoomDirectory) *RoomPool {
	if directory == nil {
		directory = NoopRoomDirectory{}
	}
	return &RoomPool{
		rooms:     make(map[string]*Room),
		byConn:    make(map[*ClientConn]*Room),
		cfg:       cfg,
		log:       log,
		questions: questions,
		directory: directory,
		newRand: func() *mrand.Rand {
			return mrand.New(mrand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetPayoutHook installs the persistence callback applied to every new room.
func (p *RoomPool) SetPayoutHook(onPayout func(userID string, amount int)) {
	p.onPayout = onPayout
}

// SetStatsHooks installs the persistence callbacks for games played and hot
// seat wins, applied to every new room.
func (p *RoomPool) SetStatsHooks(onGameStarted, onHotSeatWin func(userID string)) {
	p.onGameStarted = onGameStarted
	p.onHotSeatWin = onHotSeatWin
}

// SetRandFactory overrides per-room randomness, for deterministic tests.
func (p *RoomPool) SetRandFactory(newRand func() *mrand.Rand) {
	p.newRand = newRand
}

func (p *RoomPool) RoomCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rooms)
}

func (p *RoomPool) RoomExists(code string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.rooms[code]
	return ok
}

// ListRooms returns the directory view of all rooms.
func (p *RoomPool) ListRooms(ctx context.Context) ([]RoomInfo, error) {
	return p.directory.List(ctx)
}

// Identity is what the websocket layer learned from the login token. Both
// fields are empty for anonymous players.
type Identity struct {
	UserID      string
	DisplayName string
}

// HandleEnvelope routes one inbound frame: lobby events are handled here,
// everything else goes to the sender's room.
func (p *RoomPool) HandleEnvelope(conn *ClientConn, id Identity, env Envelope) {
	switch env.Type {
	case eventPlayerAttemptCreateRoom:
		p.playerAttemptCreateRoom(conn, id, env.Payload)
	case eventPlayerAttemptJoinRoom:
		p.playerAttemptJoinRoom(conn, id, env.Payload)
	case eventPlayerAttemptLeaveRoom:
		p.playerAttemptLeaveRoom(conn)
	case eventPlayerAttemptStartGame:
		p.playerAttemptStartGame(conn, env.Payload)
	case eventPlayerAttemptEndGame:
		p.playerAttemptEndGame(conn)
	default:
		p.mu.Lock()
		room := p.byConn[conn]
		p.mu.Unlock()
		if room == nil {
			return
		}
		room.HandleGameEvent(conn, env.Type, env.Payload)
	}
}

// Disconnect drops the connection from its room, removing the room when it
// empties out.
func (p *RoomPool) Disconnect(conn *ClientConn) {
	p.mu.Lock()
	room := p.byConn[conn]
	delete(p.byConn, conn)
	p.mu.Unlock()
	if room == nil {
		return
	}
	if room.Leave(conn) {
		p.removeRoom(room.Code())
	} else {
		p.publishRoom(room)
	}
}

func (p *RoomPool) playerAttemptCreateRoom(conn *ClientConn, id Identity, payload json.RawMessage) {
	var data CreateRoomPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &data); err != nil {
			sendEnvelope(conn, NewEnvelope(eventPlayerCreateRoomFailure,
				FailurePayload{Reason: "Username cannot be empty."}))
			return
		}
	}
	if data.Username == "" {
		// Logged-in players fall back to their account name.
		data.Username = id.DisplayName
	}
	if data.Username == "" {
		sendEnvelope(conn, NewEnvelope(eventPlayerCreateRoomFailure,
			FailurePayload{Reason: "Username cannot be empty."}))
		return
	}

	room := p.reserveNewRoom()
	if reason, ok := room.Join(conn, data.Username, id.UserID); !ok {
		p.removeRoom(room.Code())
		sendEnvelope(conn, NewEnvelope(eventPlayerCreateRoomFailure,
			FailurePayload{Reason: reason}))
		return
	}

	p.mu.Lock()
	p.byConn[conn] = room
	p.mu.Unlock()
	p.publishRoom(room)
	p.log.Info("room created", "room", room.Code(), "username", data.Username)
	sendEnvelope(conn, NewEnvelope(eventPlayerCreateRoomSuccess, RoomStatePayload{
		Username: data.Username,
		RoomCode: room.Code(),
		IsLeader: true,
	}))
}

func (p *RoomPool) playerAttemptJoinRoom(conn *ClientConn, id Identity, payload json.RawMessage) {
	var data JoinRoomPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		sendEnvelope(conn, NewEnvelope(eventPlayerJoinRoomFailure,
			FailurePayload{Reason: "Username cannot be empty."}))
		return
	}
	if data.Username == "" {
		data.Username = id.DisplayName
	}
	if data.Username == "" {
		sendEnvelope(conn, NewEnvelope(eventPlayerJoinRoomFailure,
			FailurePayload{Reason: "Username cannot be empty."}))
		return
	}

	p.mu.Lock()
	room := p.rooms[data.RoomCode]
	p.mu.Unlock()
	if room == nil {
		sendEnvelope(conn, NewEnvelope(eventPlayerJoinRoomFailure,
			FailurePayload{Reason: "Room code does not exist: " + data.RoomCode}))
		return
	}

	if reason, ok := room.Join(conn, data.Username, id.UserID); !ok {
		sendEnvelope(conn, NewEnvelope(eventPlayerJoinRoomFailure,
			FailurePayload{Reason: reason}))
		return
	}

	p.mu.Lock()
	p.byConn[conn] = room
	p.mu.Unlock()
	p.publishRoom(room)
	sendEnvelope(conn, NewEnvelope(eventPlayerJoinRoomSuccess, RoomStatePayload{
		Username: data.Username,
		RoomCode: room.Code(),
	}))
}

func (p *RoomPool) playerAttemptLeaveRoom(conn *ClientConn) {
	p.mu.Lock()
	room := p.byConn[conn]
	delete(p.byConn, conn)
	p.mu.Unlock()
	if room == nil {
		sendEnvelope(conn, NewEnvelope(eventPlayerLeaveRoomFailure,
			FailurePayload{Reason: "Room does not exist."}))
		return
	}

	if room.Leave(conn) {
		p.removeRoom(room.Code())
	} else {
		p.publishRoom(room)
	}
	sendEnvelope(conn, NewEnvelope(eventPlayerLeaveRoomSuccess, FailurePayload{}))
}

func (p *RoomPool) playerAttemptStartGame(conn *ClientConn, payload json.RawMessage) {
	p.mu.Lock()
	room := p.byConn[conn]
	p.mu.Unlock()
	if room == nil {
		return
	}

	var data StartGamePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &data); err != nil {
			return
		}
	}
	options := Options{}
	if data.PlayShowHost {
		r := room
		r.mu.Lock()
		if leader := r.players.GetByConn(conn); leader != nil {
			options.ShowHostUsername = leader.Username
		}
		r.mu.Unlock()
	}

	if _, ok := room.StartGame(conn, options); ok {
		p.publishRoom(room)
	}
}

func (p *RoomPool) playerAttemptEndGame(conn *ClientConn) {
	p.mu.Lock()
	room := p.byConn[conn]
	p.mu.Unlock()
	if room == nil {
		return
	}
	if _, ok := room.EndGame(conn); ok {
		p.publishRoom(room)
	}
}

// reserveNewRoom creates a room under a fresh code.
func (p *RoomPool) reserveNewRoom() *Room {
	p.mu.Lock()
	defer p.mu.Unlock()

	code := randRoomCode()
	for _, taken := p.rooms[code]; taken; _, taken = p.rooms[code] {
		code = randRoomCode()
	}

	room := NewRoom(code, p.cfg, p.newRand(), p.log, p.questions)
	if p.onPayout != nil {
		onPayout := p.onPayout
		room.game.SetPayoutHook(func(pl *Player, amount int) {
			if pl.UserID != "" {
				onPayout(pl.UserID, amount)
			}
		})
	}
	if p.onGameStarted != nil || p.onHotSeatWin != nil {
		started, won := p.onGameStarted, p.onHotSeatWin
		room.game.SetStatsHooks(func(players []*Player) {
			if started == nil {
				return
			}
			for _, pl := range players {
				if pl.UserID != "" {
					started(pl.UserID)
				}
			}
		}, func(pl *Player) {
			if won != nil && pl.UserID != "" {
				won(pl.UserID)
			}
		})
	}
	p.rooms[code] = room
	return room
}

func (p *RoomPool) removeRoom(code string) {
	p.mu.Lock()
	room := p.rooms[code]
	delete(p.rooms, code)
	p.mu.Unlock()
	if room == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), directoryWriteTimeout)
	defer cancel()
	if err := p.directory.Delete(ctx, code); err != nil {
		p.log.Warn("room directory delete failed", "room", code, "error", err)
	}
	p.log.Info("room removed", "room", code)
}

func (p *RoomPool) publishRoom(room *Room) {
	ctx, cancel := context.WithTimeout(context.Background(), directoryWriteTimeout)
	defer cancel()
	err := p.directory.Save(ctx, RoomInfo{
		Code:        room.Code(),
		PlayerCount: room.PlayerCount(),
		InGame:      room.InGame(),
	})
	if err != nil {
		p.log.Warn("room directory save failed", "room", room.Code(), "error", err)
	}
}

func randRoomCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}

func sendEnvelope(conn *ClientConn, env Envelope) {
	if conn == nil {
		return
	}
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case conn.send <- data:
	default:
	}
}
