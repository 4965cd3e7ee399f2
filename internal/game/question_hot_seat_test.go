package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hsContent = QuestionContent{
	Text:           "Pick the right one",
	OrderedChoices: [NumChoices]string{"right", "wrong 1", "wrong 2", "wrong 3"},
}

func TestHotSeatQuestion_CorrectChoice(t *testing.T) {
	q := NewHotSeatQuestion(hsContent, 3, NewPlayerMap(), rand.New(rand.NewSource(1)))

	correct := q.CorrectChoice()
	require.True(t, correct.Valid())
	assert.Equal(t, "right", q.ShuffledChoices[correct])

	assert.True(t, q.AnswerIsCorrect(correct))
	for c := ChoiceA; c <= ChoiceD; c++ {
		if c != correct {
			assert.False(t, q.AnswerIsCorrect(c))
		}
	}
	assert.False(t, q.AnswerIsCorrect(Choice(-1)))
}

func TestHotSeatQuestion_ShuffleIsPermutation(t *testing.T) {
	q := NewHotSeatQuestion(hsContent, 0, NewPlayerMap(), rand.New(rand.NewSource(42)))

	seen := map[string]bool{}
	for _, c := range q.ShuffledChoices {
		seen[c] = true
	}
	assert.Len(t, seen, NumChoices)
}

func TestHotSeatQuestion_RevealChoice(t *testing.T) {
	q := NewHotSeatQuestion(hsContent, 0, NewPlayerMap(), rand.New(rand.NewSource(1)))

	for i := 1; i <= NumChoices; i++ {
		q.RevealChoice()
		assert.Len(t, q.RevealedChoices, i)
	}
	assert.True(t, q.AllChoicesRevealed())
	q.RevealChoice()
	assert.Len(t, q.RevealedChoices, NumChoices)
}

func TestHotSeatQuestion_ToCompressedRedaction(t *testing.T) {
	q := NewHotSeatQuestion(hsContent, 0, NewPlayerMap(), rand.New(rand.NewSource(1)))
	q.RevealAllChoices()
	made := ChoiceB

	view := q.toCompressed(&made, false)
	require.NotNil(t, view.MadeChoice)
	assert.Equal(t, ChoiceB, *view.MadeChoice)
	assert.Nil(t, view.CorrectChoice, "correct slot stays hidden until revealed")

	view = q.toCompressed(nil, true)
	assert.Nil(t, view.MadeChoice)
	require.NotNil(t, view.CorrectChoice)
	assert.Equal(t, q.CorrectChoice(), *view.CorrectChoice)
}
