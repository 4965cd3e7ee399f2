package game

import (
	"math/rand"
	"sort"
	"time"
)

// FastestFingerQuestion is the qualifying round question: contestants order
// all four choices, fastest correct ordering wins the hot seat.
type FastestFingerQuestion struct {
	Text           string
	OrderedChoices [NumChoices]string
	// ShuffledChoices is the display permutation, fixed at construction.
	ShuffledChoices [NumChoices]string

	// RevealedChoices grows as display slots are revealed to clients.
	RevealedChoices []string
	// RevealedAnswers grows as the correct ordering is revealed, one
	// canonical rank at a time.
	RevealedAnswers []RevealedAnswer

	// StartTime marks the opening of the answer window.
	StartTime time.Time

	players *PlayerMap
}

// RevealedAnswer is one revealed rank of the correct ordering: the answer
// text and the display slot it lives in.
type RevealedAnswer struct {
	Text   string `json:"text"`
	Choice Choice `json:"choice"`
}

// FastestFingerResult is one player's final score line.
type FastestFingerResult struct {
	Username  string `json:"username"`
	Score     int    `json:"score"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// FastestFingerResults ranks all non-host players; the first entry is the hot
// seat nominee.
type FastestFingerResults struct {
	PlayerResults []FastestFingerResult
	HotSeatPlayer *Player
}

func NewFastestFingerQuestion(content QuestionContent, players *PlayerMap, rng *rand.Rand) *FastestFingerQuestion {
	q := &FastestFingerQuestion{
		Text:           content.Text,
		OrderedChoices: content.OrderedChoices,
		players:        players,
	}
	perm := rng.Perm(NumChoices)
	for i, j := range perm {
		q.ShuffledChoices[i] = content.OrderedChoices[j]
	}
	return q
}

// RevealChoice reveals the next display slot. Idempotent past full reveal.
func (q *FastestFingerQuestion) RevealChoice() {
	if len(q.RevealedChoices) >= NumChoices {
		return
	}
	q.RevealedChoices = append(q.RevealedChoices, q.ShuffledChoices[len(q.RevealedChoices)])
}

func (q *FastestFingerQuestion) RevealAllChoices() {
	for len(q.RevealedChoices) < NumChoices {
		q.RevealChoice()
	}
}

func (q *FastestFingerQuestion) AllChoicesRevealed() bool {
	return len(q.RevealedChoices) >= NumChoices
}

// MarkStartTime opens the answer window.
func (q *FastestFingerQuestion) MarkStartTime() {
	q.StartTime = time.Now()
}

// AllPlayersDone reports whether every non-host player has a full ordering.
func (q *FastestFingerQuestion) AllPlayersDone() bool {
	players := q.players.ListExcludingShowHost()
	if len(players) == 0 {
		return false
	}
	for _, p := range players {
		if p.HasFastestFingerChoicesLeft() {
			return false
		}
	}
	return true
}

// RevealAnswer reveals the next unrevealed rank of the correct ordering.
// Idempotent once all four are out.
func (q *FastestFingerQuestion) RevealAnswer() {
	rank := len(q.RevealedAnswers)
	if rank >= NumChoices {
		return
	}
	q.RevealedAnswers = append(q.RevealedAnswers, RevealedAnswer{
		Text:   q.OrderedChoices[rank],
		Choice: q.displaySlotOf(q.OrderedChoices[rank]),
	})
}

func (q *FastestFingerQuestion) AllAnswersRevealed() bool {
	return len(q.RevealedAnswers) >= NumChoices
}

// ScoreForChoices counts picks that match the correct ordering: pick i scores
// when the display slot picked at position i holds the answer ranked i.
func (q *FastestFingerQuestion) ScoreForChoices(choices []Choice) int {
	score := 0
	for i, c := range choices {
		if i >= NumChoices || !c.Valid() {
			break
		}
		if q.ShuffledChoices[c] == q.OrderedChoices[i] {
			score++
		}
	}
	return score
}

// GetResults scores and ranks every non-host player: score descending, then
// completion time ascending. Ties on both leave the earlier submitter first.
func (q *FastestFingerQuestion) GetResults() FastestFingerResults {
	players := q.players.ListExcludingShowHost()
	for _, p := range players {
		p.FastestFingerScore = q.ScoreForChoices(p.FastestFingerChoices)
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].FastestFingerScore != players[j].FastestFingerScore {
			return players[i].FastestFingerScore > players[j].FastestFingerScore
		}
		ti, tj := players[i].FastestFingerTime, players[j].FastestFingerTime
		switch {
		case ti.IsZero():
			return false
		case tj.IsZero():
			return true
		default:
			return ti.Before(tj)
		}
	})

	results := FastestFingerResults{}
	for _, p := range players {
		var elapsed int64
		if !p.FastestFingerTime.IsZero() && !q.StartTime.IsZero() {
			elapsed = p.FastestFingerTime.Sub(q.StartTime).Milliseconds()
		}
		results.PlayerResults = append(results.PlayerResults, FastestFingerResult{
			Username:  p.Username,
			Score:     p.FastestFingerScore,
			ElapsedMs: elapsed,
		})
	}
	if len(players) > 0 {
		results.HotSeatPlayer = players[0]
	}
	return results
}

func (q *FastestFingerQuestion) toCompressed(madeChoices []Choice) *QuestionView {
	return &QuestionView{
		Text:            q.Text,
		RevealedChoices: append([]string(nil), q.RevealedChoices...),
		MadeChoices:     append([]Choice(nil), madeChoices...),
	}
}

func (q *FastestFingerQuestion) displaySlotOf(text string) Choice {
	for i, c := range q.ShuffledChoices {
		if c == text {
			return Choice(i)
		}
	}
	return Choice(-1)
}
