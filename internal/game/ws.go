package game

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sandervrielink/millionaire-1/internal/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // MVP
}

// ClientConn wraps one websocket connection with a buffered outbound queue.
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.ws.Close()
	})
}

// Server is the websocket and REST surface of the room pool.
type Server struct {
	pool      *RoomPool
	jwtSecret []byte
}

func NewServer(pool *RoomPool, jwtSecret []byte) *Server {
	return &Server{pool: pool, jwtSecret: jwtSecret}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/rooms", s.handleListRooms)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	infos, err := s.pool.ListRooms(r.Context())
	if err != nil {
		http.Error(w, "failed to list rooms", http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []RoomInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": infos})
}

// handleWS upgrades the connection and pumps frames to the room pool. A JWT
// is optional: anonymous players can play, logged-in players get their
// winnings persisted and their account name as the default lobby username.
// /ws?token=xxx
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	var id Identity
	if token := r.URL.Query().Get("token"); token != "" {
		claims, err := auth.Verify(s.jwtSecret, token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		id = Identity{UserID: claims.UserID, DisplayName: claims.Username}
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	cc := &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}

	// writer loop
	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-cc.send:
				if !ok {
					return
				}
				_ = ws.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				_ = ws.WriteMessage(websocket.PingMessage, []byte{})
			}
		}
	}()

	// reader loop
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		s.pool.HandleEnvelope(cc, id, env)
	}

	// disconnect
	s.pool.Disconnect(cc)
	cc.Close()
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
