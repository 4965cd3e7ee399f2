package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiftyFifty_Activate(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		q := NewHotSeatQuestion(hsContent, 0, NewPlayerMap(), rng)
		l := NewFiftyFiftyLifeline(rng)

		l.Activate(q)

		require.True(t, l.Used)
		require.Len(t, l.ExcludedChoices, 2)
		correct := q.CorrectChoice()
		assert.False(t, l.IsExcluded(correct), "seed %d eliminated the correct slot", seed)
		assert.NotEqual(t, l.ExcludedChoices[0], l.ExcludedChoices[1])
		assert.Same(t, l, q.Grader.FiftyFifty)
	}
}

func TestFiftyFifty_SingleUse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q1 := NewHotSeatQuestion(hsContent, 0, NewPlayerMap(), rng)
	q2 := NewHotSeatQuestion(hsContent, 1, NewPlayerMap(), rng)
	l := NewFiftyFiftyLifeline(rng)

	l.Activate(q1)
	first := append([]Choice(nil), l.ExcludedChoices...)

	l.Activate(q2)
	assert.Equal(t, first, l.ExcludedChoices, "second activation is a no-op")
	assert.Nil(t, q2.Grader.FiftyFifty)

	btn := l.ToCompressedHotSeatActionButton(true)
	assert.True(t, btn.Used)
	assert.False(t, btn.Available)
}

func TestFiftyFifty_ResultsPerQuestionIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := NewHotSeatQuestion(hsContent, 3, NewPlayerMap(), rng)
	l := NewFiftyFiftyLifeline(rng)

	assert.False(t, l.IsActiveForQuestionIndex(3))
	assert.False(t, l.HasResultsForQuestionIndex(3))

	l.Activate(q)

	assert.True(t, l.IsActiveForQuestionIndex(3))
	assert.True(t, l.HasResultsForQuestionIndex(3))
	assert.False(t, l.IsActiveForQuestionIndex(4), "spent on another question")
	assert.False(t, l.HasResultsForQuestionIndex(4))
	assert.Equal(t, l.ExcludedChoices, l.GetResults())

	q.RevealAllChoices()
	view := q.toCompressed(nil, false)
	assert.Equal(t, l.ExcludedChoices, view.EliminatedChoices)
}

func TestPhoneAFriend_HumanFlow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	q := NewHotSeatQuestion(hsContent, 2, NewPlayerMap(), rng)
	friend := NewPlayer(nil, "friend")
	l := NewPhoneAFriendLifeline(rng)

	assert.False(t, l.WaitingForChoiceFromPlayer(friend))

	l.StartForQuestion(q)
	l.PickFriend(friend)
	require.True(t, l.WaitingForChoiceFromPlayer(friend))
	assert.False(t, l.WaitingForChoiceFromPlayer(NewPlayer(nil, "other")),
		"nobody may answer in the friend's stead")
	assert.True(t, l.IsActiveForQuestionIndex(2))
	assert.False(t, l.HasResultsForQuestionIndex(2))

	l.SetFriendChoice(ChoiceC)
	assert.False(t, l.WaitingForChoiceFromPlayer(friend))
	require.True(t, l.WaitingForConfidenceFromPlayer(friend))

	l.SetFriendConfidence(1.7) // clamped
	require.True(t, l.HasResultsForQuestionIndex(2))
	assert.False(t, l.IsActiveForQuestionIndex(2))

	results := l.GetResults()
	require.NotNil(t, results)
	assert.Equal(t, "friend", results.FriendName)
	assert.Equal(t, ChoiceC, results.Choice)
	assert.Equal(t, 1.0, results.Confidence)
}

func TestPhoneAFriend_AIRespectsFiftyFifty(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		q := NewHotSeatQuestion(hsContent, 0, NewPlayerMap(), rng)

		ff := NewFiftyFiftyLifeline(rng)
		ff.Activate(q)

		l := NewPhoneAFriendLifeline(rng)
		l.StartForQuestion(q)
		l.PickAIFriend()

		results := l.GetResults()
		require.NotNil(t, results, "seed %d", seed)
		assert.Equal(t, StrAIFriendName, results.FriendName)
		assert.False(t, ff.IsExcluded(results.Choice),
			"seed %d suggested an eliminated slot", seed)
		assert.GreaterOrEqual(t, results.Confidence, 0.1)
		assert.LessOrEqual(t, results.Confidence, 1.0)
	}
}

func TestAskTheAudience_Tally(t *testing.T) {
	pm := NewPlayerMap()
	voter := NewPlayer(nil, "voter")
	absent := NewPlayer(nil, "absent")
	pm.Put(voter)
	pm.Put(absent)

	rng := rand.New(rand.NewSource(1))
	q := NewHotSeatQuestion(hsContent, 0, pm, rng)
	l := NewAskTheAudienceLifeline(pm, rng)

	l.StartForQuestion(q)
	require.True(t, l.WaitingForContestants())

	c := q.CorrectChoice()
	voter.HotSeatChoice = &c
	assert.True(t, l.WaitingForContestants(), "absent still owes a vote")

	l.PopulateAllAnswerBuckets()
	assert.False(t, l.WaitingForContestants())
	require.True(t, l.HasResultsForQuestionIndex(0))

	results := l.GetResults()
	require.NotNil(t, results)
	sumC, sumA := 0, 0
	for i := range results.ContestantPercents {
		sumC += results.ContestantPercents[i]
		sumA += results.AudiencePercents[i]
	}
	assert.Equal(t, 100, sumC)
	assert.Equal(t, 100, sumA)
	assert.GreaterOrEqual(t, results.ContestantPercents[c], 50,
		"the real vote went to the correct slot")
}

func TestAskTheAudience_EliminatedSlotsGetNoSimulatedVotes(t *testing.T) {
	pm := NewPlayerMap()
	rng := rand.New(rand.NewSource(7))
	q := NewHotSeatQuestion(hsContent, 0, pm, rng)

	ff := NewFiftyFiftyLifeline(rng)
	ff.Activate(q)

	l := NewAskTheAudienceLifeline(pm, rng)
	l.StartForQuestion(q)
	l.PopulateAllAnswerBuckets()

	results := l.GetResults()
	require.NotNil(t, results)
	for _, c := range ff.ExcludedChoices {
		assert.Equal(t, 0, results.AudiencePercents[c])
	}
}
