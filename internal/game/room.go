package game

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"sync"
)

// Room is one lobby and, once started, one running session. The room mutex
// serializes everything: lobby changes, client events and timer callbacks.
type Room struct {
	code string
	mu   sync.Mutex

	players *PlayerMap
	game    *GameServer

	leaderUsername string
	log            *slog.Logger
}

func NewRoom(code string, cfg Config, rng *rand.Rand, log *slog.Logger, questions QuestionSource) *Room {
	players := NewPlayerMap()
	r := &Room{
		code:    code,
		players: players,
		game:    NewGameServer(players, cfg, rng, log, questions),
		log:     log.With("room", code),
	}
	// Timer callbacks re-enter the game under the room lock and push the
	// resulting state out, exactly like a client-driven event. The token
	// lets the game drop callbacks that fired just before their timer was
	// cancelled and were stuck waiting on the lock.
	r.game.SetDispatch(func(event string, token uint64) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.game.HandleTimedEvent(event, token)
		r.broadcastLocked()
	})
	return r
}

func (r *Room) Code() string {
	return r.code
}

// SetPayoutHook forwards money awards for persistence.
func (r *Room) SetPayoutHook(onPayout func(p *Player, amount int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game.SetPayoutHook(onPayout)
}

// Join adds a player. The first player to join leads the room. Returns a
// human-readable reason when the join is refused.
func (r *Room) Join(conn *ClientConn, username, userID string) (reason string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if username == "" {
		return "Username cannot be empty.", false
	}
	if r.players.Contains(username) {
		return "Username is already taken.", false
	}
	if r.game.InGame() {
		return "Game is already in progress.", false
	}

	p := NewPlayer(conn, username)
	p.UserID = userID
	r.players.Put(p)
	if r.leaderUsername == "" {
		r.leaderUsername = username
	}
	r.log.Info("player joined", "username", username)
	r.broadcastLocked()
	return "", true
}

// Leave removes the player behind conn. Reports whether the room is now
// empty; an in-game leaver's session keeps running without them.
func (r *Room) Leave(conn *ClientConn) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players.GetByConn(conn)
	if p == nil {
		return r.players.Count() == 0
	}
	r.players.Remove(p.Username)
	r.log.Info("player left", "username", p.Username)

	if p.Username == r.leaderUsername {
		r.leaderUsername = ""
		if list := r.players.List(); len(list) > 0 {
			r.leaderUsername = list[0].Username
		}
	}
	r.broadcastLocked()
	return r.players.Count() == 0
}

// StartGame begins a session at the leader's request.
func (r *Room) StartGame(conn *ClientConn, options Options) (reason string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players.GetByConn(conn)
	if p == nil || p.Username != r.leaderUsername {
		return "Only the room leader can start the game.", false
	}
	if r.game.InGame() {
		return "Game is already in progress.", false
	}
	if !r.game.OptionsAreValid(options) {
		return "A show host needs at least one other player.", false
	}

	r.log.Info("game starting", "players", r.players.Count(),
		"showHost", options.ShowHostUsername)
	r.game.StartGame(options)
	r.broadcastLocked()
	return "", true
}

// EndGame tears the session down and returns everyone to the lobby.
func (r *Room) EndGame(conn *ClientConn) (reason string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players.GetByConn(conn)
	if p == nil || p.Username != r.leaderUsername {
		return "Only the room leader can end the game.", false
	}
	if !r.game.InGame() {
		return "No game is in progress.", false
	}

	r.game.EndGame()
	r.players.Do(func(pl *Player) { pl.Reset(); pl.IsShowHost = false; pl.IsHotSeatPlayer = false })
	r.log.Info("game ended")
	r.broadcastLocked()
	return "", true
}

// HandleGameEvent runs one in-game client event and pushes fresh snapshots.
func (r *Room) HandleGameEvent(conn *ClientConn, event string, payload json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players.GetByConn(conn)
	if p == nil {
		return
	}
	r.game.HandleEvent(p, event, payload)
	r.broadcastLocked()
}

func (r *Room) InGame() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.InGame()
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.players.Count()
}

// lobbyStateLocked describes the room to one player while no game runs.
func (r *Room) lobbyStateLocked(p *Player) RoomStatePayload {
	list := []CompressedPlayer{}
	for _, pl := range r.players.List() {
		list = append(list, pl.toCompressed(""))
	}
	return RoomStatePayload{
		Username:   p.Username,
		RoomCode:   r.code,
		IsLeader:   p.Username == r.leaderUsername,
		PlayerList: list,
		InGame:     r.game.InGame(),
	}
}

// broadcastLocked sends every connected player their own view: a redacted
// game snapshot mid-session, the lobby roster otherwise.
func (r *Room) broadcastLocked() {
	if r.game.InGame() {
		event := r.game.CurrentSocketEvent()
		state := r.game.State()
		r.players.Do(func(p *Player) {
			snapshot := state.ToCompressedClientState(p, event)
			r.sendLocked(p, NewEnvelope(eventUpdateGame, snapshot))
		})
		return
	}
	r.players.Do(func(p *Player) {
		r.sendLocked(p, NewEnvelope(eventUpdateLobby, r.lobbyStateLocked(p)))
	})
}

func (r *Room) sendLocked(p *Player, env Envelope) {
	if p.conn == nil {
		return
	}
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case p.conn.send <- data:
	default:
		// Slow client; drop the frame rather than block the room.
	}
}
