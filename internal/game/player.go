package game

import "time"

// Player is one connected participant in a room. All mutation happens under
// the owning room's lock.
type Player struct {
	conn *ClientConn

	// UserID is set when the connection presented a valid token; winnings
	// are persisted for such players. Empty for anonymous play.
	UserID   string
	Username string
	Money    int

	FastestFingerChoices []Choice
	FastestFingerScore   int
	FastestFingerTime    time.Time

	HotSeatChoice *Choice
	HotSeatTime   time.Time

	IsShowHost      bool
	IsHotSeatPlayer bool
}

func NewPlayer(conn *ClientConn, username string) *Player {
	return &Player{conn: conn, Username: username}
}

// ChooseFastestFinger appends choice to the player's fastest finger ordering.
// Duplicate slots, invalid slots and picks past the fourth are ignored. The
// fourth accepted pick stamps the player's completion time for tie-breaking.
func (p *Player) ChooseFastestFinger(choice Choice) {
	if !choice.Valid() || p.HasAlreadyChosenFastestFinger(choice) || !p.HasFastestFingerChoicesLeft() {
		return
	}
	p.FastestFingerChoices = append(p.FastestFingerChoices, choice)
	if len(p.FastestFingerChoices) == NumChoices {
		p.FastestFingerTime = time.Now()
	}
}

// ChooseHotSeat records the player's current answer to the hot seat question.
// Re-choosing the same slot is a no-op; a changed answer refreshes the
// timestamp used for speed bonuses and lifeline timing windows.
func (p *Player) ChooseHotSeat(choice Choice) {
	if !choice.Valid() {
		return
	}
	if p.HotSeatChoice != nil && *p.HotSeatChoice == choice {
		return
	}
	c := choice
	p.HotSeatChoice = &c
	p.HotSeatTime = time.Now()
}

func (p *Player) HasFastestFingerChoicesLeft() bool {
	return len(p.FastestFingerChoices) < NumChoices
}

func (p *Player) HasAlreadyChosenFastestFinger(choice Choice) bool {
	for _, c := range p.FastestFingerChoices {
		if c == choice {
			return true
		}
	}
	return false
}

// IsContestant reports whether the player is neither hosting nor in the hot
// seat.
func (p *Player) IsContestant() bool {
	return !p.IsShowHost && !p.IsHotSeatPlayer
}

// ClearAllAnswers wipes answers of both question types.
func (p *Player) ClearAllAnswers() {
	p.FastestFingerChoices = nil
	p.FastestFingerTime = time.Time{}
	p.HotSeatChoice = nil
	p.HotSeatTime = time.Time{}
}

// Reset returns the player to base stats at the start of a ladder round.
func (p *Player) Reset() {
	p.Money = 0
	p.FastestFingerScore = 0
	p.ClearAllAnswers()
}

func (p *Player) toCompressed(clickAction string) CompressedPlayer {
	return CompressedPlayer{
		Username:    p.Username,
		Money:       p.Money,
		IsShowHost:  p.IsShowHost,
		IsHotSeat:   p.IsHotSeatPlayer,
		ClickAction: clickAction,
	}
}
