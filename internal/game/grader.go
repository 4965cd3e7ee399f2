package game

import "time"

// Outcome is the hot seat result of one ladder question.
type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeIncorrect
	OutcomeWalkedAway
)

// HotSeatQuestionGrader combines the question, the hot seat player's final
// choice, active lifeline effects and the walk-away flag into the final
// outcome, and separately scores every contestant's own answer for partial
// instant payout.
type HotSeatQuestionGrader struct {
	question *HotSeatQuestion
	players  *PlayerMap

	HotSeatPlayerChoice *Choice
	WalkingAway         bool

	FiftyFifty     *FiftyFiftyLifeline
	PhoneAFriend   *PhoneAFriendLifeline
	AskTheAudience *AskTheAudienceLifeline
}

func newHotSeatQuestionGrader(q *HotSeatQuestion, players *PlayerMap) *HotSeatQuestionGrader {
	return &HotSeatQuestionGrader{question: q, players: players}
}

// Outcome resolves the hot seat result.
func (g *HotSeatQuestionGrader) Outcome() Outcome {
	if g.WalkingAway {
		return OutcomeWalkedAway
	}
	if g.HotSeatPlayerChoice != nil && g.question.AnswerIsCorrect(*g.HotSeatPlayerChoice) {
		return OutcomeCorrect
	}
	return OutcomeIncorrect
}

// Grade runs the contestant scoring pass: every contestant with a correct
// answer earns a tenth of the rung value, the fastest of them an extra half
// share on top. A phoned friend instead trades that guaranteed share for
// 2x confidence of it. Independent of the hot seat outcome.
func (g *HotSeatQuestionGrader) Grade() {
	base := PayoutForIndex(g.question.QuestionIndex) / 10
	if base <= 0 {
		return
	}

	var fastest *Player
	var fastestTime time.Time
	for _, p := range g.players.Contestants() {
		if p.HotSeatChoice == nil || !g.question.AnswerIsCorrect(*p.HotSeatChoice) {
			continue
		}
		if fastest == nil || p.HotSeatTime.Before(fastestTime) {
			fastest = p
			fastestTime = p.HotSeatTime
		}
	}

	for _, p := range g.players.Contestants() {
		if p.HotSeatChoice == nil {
			continue
		}
		correct := g.question.AnswerIsCorrect(*p.HotSeatChoice)
		payout := 0
		if g.PhoneAFriend != nil && g.PhoneAFriend.Friend == p {
			payout = g.PhoneAFriend.friendPayout(base, correct)
		} else if correct {
			payout = base
		}
		if correct && p == fastest {
			payout += base / 2
		}
		p.Money += payout
	}
}
