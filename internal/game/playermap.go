package game

import "sort"

// PlayerMap is the per-room player registry: username -> player plus a
// reverse connection index. Not safe for concurrent use on its own; the
// owning room's lock guards it.
type PlayerMap struct {
	players map[string]*Player
	byConn  map[*ClientConn]string
}

func NewPlayerMap() *PlayerMap {
	return &PlayerMap{
		players: make(map[string]*Player),
		byConn:  make(map[*ClientConn]string),
	}
}

func (m *PlayerMap) Put(p *Player) {
	m.players[p.Username] = p
	if p.conn != nil {
		m.byConn[p.conn] = p.Username
	}
}

func (m *PlayerMap) Remove(username string) {
	p, ok := m.players[username]
	if !ok {
		return
	}
	if p.conn != nil {
		delete(m.byConn, p.conn)
	}
	delete(m.players, username)
}

func (m *PlayerMap) Contains(username string) bool {
	_, ok := m.players[username]
	return ok
}

func (m *PlayerMap) GetByUsername(username string) *Player {
	return m.players[username]
}

func (m *PlayerMap) GetByConn(conn *ClientConn) *Player {
	username, ok := m.byConn[conn]
	if !ok {
		return nil
	}
	return m.players[username]
}

func (m *PlayerMap) Count() int {
	return len(m.players)
}

func (m *PlayerMap) CountExcludingShowHost() int {
	n := 0
	for _, p := range m.players {
		if !p.IsShowHost {
			n++
		}
	}
	return n
}

// List returns all players in stable (username) order.
func (m *PlayerMap) List() []*Player {
	list := make([]*Player, 0, len(m.players))
	for _, p := range m.players {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list
}

func (m *PlayerMap) ListExcludingShowHost() []*Player {
	list := m.List()
	filtered := list[:0]
	for _, p := range list {
		if !p.IsShowHost {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Contestants returns players that are neither hosting nor in the hot seat.
func (m *PlayerMap) Contestants() []*Player {
	var list []*Player
	for _, p := range m.List() {
		if p.IsContestant() {
			list = append(list, p)
		}
	}
	return list
}

func (m *PlayerMap) Do(f func(*Player)) {
	for _, p := range m.players {
		f(p)
	}
}
