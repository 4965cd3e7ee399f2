package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrader_Outcome(t *testing.T) {
	pm := NewPlayerMap()
	q := NewHotSeatQuestion(hsContent, 0, pm, rand.New(rand.NewSource(1)))
	correct := q.CorrectChoice()
	wrong := ChoiceA
	if wrong == correct {
		wrong = ChoiceB
	}

	g := q.Grader
	assert.Equal(t, OutcomeIncorrect, g.Outcome(), "no choice counts as incorrect")

	g.HotSeatPlayerChoice = &correct
	assert.Equal(t, OutcomeCorrect, g.Outcome())

	g.HotSeatPlayerChoice = &wrong
	assert.Equal(t, OutcomeIncorrect, g.Outcome())

	g.WalkingAway = true
	assert.Equal(t, OutcomeWalkedAway, g.Outcome(), "walking away trumps the choice")
}

func TestGrader_Grade(t *testing.T) {
	pm := NewPlayerMap()
	hotSeat := NewPlayer(nil, "hotseat")
	hotSeat.IsHotSeatPlayer = true
	fast := NewPlayer(nil, "fast")
	slow := NewPlayer(nil, "slow")
	wrongP := NewPlayer(nil, "wrong")
	silent := NewPlayer(nil, "silent")
	for _, p := range []*Player{hotSeat, fast, slow, wrongP, silent} {
		pm.Put(p)
	}

	// Rung 9 is $32,000: base share $3,200, speed bonus $1,600.
	q := NewHotSeatQuestion(hsContent, 9, pm, rand.New(rand.NewSource(1)))
	correct := q.CorrectChoice()
	wrong := ChoiceA
	if wrong == correct {
		wrong = ChoiceB
	}

	now := time.Now()
	c := correct
	fast.HotSeatChoice = &c
	fast.HotSeatTime = now
	c2 := correct
	slow.HotSeatChoice = &c2
	slow.HotSeatTime = now.Add(time.Second)
	w := wrong
	wrongP.HotSeatChoice = &w
	wrongP.HotSeatTime = now

	q.Grader.Grade()

	assert.Equal(t, 3200+1600, fast.Money)
	assert.Equal(t, 3200, slow.Money)
	assert.Equal(t, 0, wrongP.Money)
	assert.Equal(t, 0, silent.Money)
	assert.Equal(t, 0, hotSeat.Money, "the hot seat player is paid by the ladder, not here")
}

func TestGrader_GradePhonedFriend(t *testing.T) {
	pm := NewPlayerMap()
	friend := NewPlayer(nil, "friend")
	pm.Put(friend)

	q := NewHotSeatQuestion(hsContent, 9, pm, rand.New(rand.NewSource(1)))
	correct := q.CorrectChoice()

	phone := NewPhoneAFriendLifeline(rand.New(rand.NewSource(1)))
	phone.StartForQuestion(q)
	phone.PickFriend(friend)
	phone.SetFriendChoice(correct)
	phone.SetFriendConfidence(0.75)

	c := correct
	friend.HotSeatChoice = &c
	friend.HotSeatTime = time.Now()

	q.Grader.Grade()

	// 2 * 0.75 * $3,200 stake instead of the flat share, plus the speed
	// bonus the friend still earned as the only correct contestant.
	assert.Equal(t, 4800+1600, friend.Money)
}

func TestGrader_GradePhonedFriendWrong(t *testing.T) {
	pm := NewPlayerMap()
	friend := NewPlayer(nil, "friend")
	pm.Put(friend)

	q := NewHotSeatQuestion(hsContent, 9, pm, rand.New(rand.NewSource(1)))
	correct := q.CorrectChoice()
	wrong := ChoiceA
	if wrong == correct {
		wrong = ChoiceB
	}

	phone := NewPhoneAFriendLifeline(rand.New(rand.NewSource(1)))
	phone.StartForQuestion(q)
	phone.PickFriend(friend)
	phone.SetFriendChoice(wrong)
	phone.SetFriendConfidence(0.9)

	w := wrong
	friend.HotSeatChoice = &w

	q.Grader.Grade()
	assert.Equal(t, 0, friend.Money, "a wrong phoned answer loses the stake")
}

func TestGrader_GradeBelowFirstRungPaysNothing(t *testing.T) {
	pm := NewPlayerMap()
	p := NewPlayer(nil, "p")
	pm.Put(p)

	q := NewHotSeatQuestion(hsContent, -1, pm, rand.New(rand.NewSource(1)))
	c := q.CorrectChoice()
	p.HotSeatChoice = &c

	q.Grader.Grade()
	assert.Equal(t, 0, p.Money)
}
