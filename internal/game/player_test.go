package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayer_ChooseFastestFinger(t *testing.T) {
	p := NewPlayer(nil, "alice")

	p.ChooseFastestFinger(ChoiceB)
	p.ChooseFastestFinger(ChoiceB) // duplicate, ignored
	p.ChooseFastestFinger(Choice(7))
	assert.Equal(t, []Choice{ChoiceB}, p.FastestFingerChoices)
	assert.True(t, p.FastestFingerTime.IsZero())

	p.ChooseFastestFinger(ChoiceA)
	p.ChooseFastestFinger(ChoiceD)
	p.ChooseFastestFinger(ChoiceC)
	assert.Equal(t, []Choice{ChoiceB, ChoiceA, ChoiceD, ChoiceC}, p.FastestFingerChoices)
	assert.False(t, p.FastestFingerTime.IsZero(), "fourth pick stamps completion time")

	// No fifth pick.
	p.ChooseFastestFinger(ChoiceA)
	assert.Len(t, p.FastestFingerChoices, NumChoices)
}

func TestPlayer_ChooseHotSeat(t *testing.T) {
	p := NewPlayer(nil, "alice")

	p.ChooseHotSeat(Choice(-1))
	assert.Nil(t, p.HotSeatChoice)

	p.ChooseHotSeat(ChoiceC)
	if p.HotSeatChoice == nil || *p.HotSeatChoice != ChoiceC {
		t.Fatalf("HotSeatChoice=%v want C", p.HotSeatChoice)
	}
	first := p.HotSeatTime

	// Same slot again keeps the original timestamp.
	p.ChooseHotSeat(ChoiceC)
	assert.Equal(t, first, p.HotSeatTime)

	// A changed answer refreshes it.
	p.ChooseHotSeat(ChoiceA)
	assert.Equal(t, ChoiceA, *p.HotSeatChoice)
	assert.False(t, p.HotSeatTime.Before(first))
}

func TestPlayer_RolesAndReset(t *testing.T) {
	p := NewPlayer(nil, "alice")
	assert.True(t, p.IsContestant())

	p.IsShowHost = true
	assert.False(t, p.IsContestant())
	p.IsShowHost = false
	p.IsHotSeatPlayer = true
	assert.False(t, p.IsContestant())

	p.Money = 500
	p.ChooseHotSeat(ChoiceA)
	p.ChooseFastestFinger(ChoiceB)
	p.Reset()
	assert.Equal(t, 0, p.Money)
	assert.Nil(t, p.HotSeatChoice)
	assert.Empty(t, p.FastestFingerChoices)
}
