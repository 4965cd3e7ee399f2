package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ffContent = QuestionContent{
	Text:           "Order these",
	OrderedChoices: [NumChoices]string{"first", "second", "third", "fourth"},
}

func TestFastestFingerQuestion_Reveal(t *testing.T) {
	q := NewFastestFingerQuestion(ffContent, NewPlayerMap(), rand.New(rand.NewSource(1)))

	assert.Empty(t, q.RevealedChoices)
	q.RevealChoice()
	assert.Equal(t, []string{q.ShuffledChoices[0]}, q.RevealedChoices)

	q.RevealAllChoices()
	require.True(t, q.AllChoicesRevealed())
	assert.Equal(t, q.ShuffledChoices[:], q.RevealedChoices)

	// Past full reveal it stays put.
	q.RevealChoice()
	assert.Len(t, q.RevealedChoices, NumChoices)
}

func TestFastestFingerQuestion_RevealAnswer(t *testing.T) {
	q := NewFastestFingerQuestion(ffContent, NewPlayerMap(), rand.New(rand.NewSource(1)))

	q.RevealAnswer()
	require.Len(t, q.RevealedAnswers, 1)
	assert.Equal(t, "first", q.RevealedAnswers[0].Text)
	assert.Equal(t, "first", q.ShuffledChoices[q.RevealedAnswers[0].Choice])

	for i := 0; i < NumChoices; i++ {
		q.RevealAnswer()
	}
	require.True(t, q.AllAnswersRevealed())
	assert.Len(t, q.RevealedAnswers, NumChoices)
}

func TestFastestFingerQuestion_ScoreForChoices(t *testing.T) {
	q := NewFastestFingerQuestion(ffContent, NewPlayerMap(), rand.New(rand.NewSource(1)))

	perfect := make([]Choice, 0, NumChoices)
	for rank := 0; rank < NumChoices; rank++ {
		for c := ChoiceA; c <= ChoiceD; c++ {
			if q.ShuffledChoices[c] == q.OrderedChoices[rank] {
				perfect = append(perfect, c)
			}
		}
	}

	assert.Equal(t, 4, q.ScoreForChoices(perfect))
	assert.Equal(t, 0, q.ScoreForChoices(nil))

	// Reversing a perfect ordering can keep at most the middle picks lined
	// up, never the outer two.
	reversed := []Choice{perfect[3], perfect[2], perfect[1], perfect[0]}
	assert.Less(t, q.ScoreForChoices(reversed), 3)
}

func TestFastestFingerQuestion_GetResults(t *testing.T) {
	pm := NewPlayerMap()
	alice := NewPlayer(nil, "alice")
	bob := NewPlayer(nil, "bob")
	host := NewPlayer(nil, "host")
	host.IsShowHost = true
	pm.Put(alice)
	pm.Put(bob)
	pm.Put(host)

	q := NewFastestFingerQuestion(ffContent, pm, rand.New(rand.NewSource(1)))
	q.MarkStartTime()

	perfect := make([]Choice, 0, NumChoices)
	for rank := 0; rank < NumChoices; rank++ {
		for c := ChoiceA; c <= ChoiceD; c++ {
			if q.ShuffledChoices[c] == q.OrderedChoices[rank] {
				perfect = append(perfect, c)
			}
		}
	}

	// Both perfect; bob finished later.
	alice.FastestFingerChoices = perfect
	alice.FastestFingerTime = q.StartTime.Add(2 * time.Second)
	bob.FastestFingerChoices = perfect
	bob.FastestFingerTime = q.StartTime.Add(5 * time.Second)

	results := q.GetResults()
	require.Len(t, results.PlayerResults, 2, "the host is not ranked")
	assert.Equal(t, "alice", results.PlayerResults[0].Username)
	assert.Equal(t, 4, results.PlayerResults[0].Score)
	assert.Equal(t, int64(2000), results.PlayerResults[0].ElapsedMs)
	require.NotNil(t, results.HotSeatPlayer)
	assert.Equal(t, alice, results.HotSeatPlayer)

	// A higher score beats a faster time.
	alice.FastestFingerChoices = []Choice{perfect[1], perfect[0], perfect[2], perfect[3]}
	results = q.GetResults()
	assert.Equal(t, bob, results.HotSeatPlayer)
}

func TestFastestFingerQuestion_AllPlayersDone(t *testing.T) {
	pm := NewPlayerMap()
	q := NewFastestFingerQuestion(ffContent, pm, rand.New(rand.NewSource(1)))
	assert.False(t, q.AllPlayersDone(), "an empty room is never done")

	alice := NewPlayer(nil, "alice")
	pm.Put(alice)
	assert.False(t, q.AllPlayersDone())

	alice.FastestFingerChoices = []Choice{ChoiceA, ChoiceB, ChoiceC, ChoiceD}
	assert.True(t, q.AllPlayersDone())
}
