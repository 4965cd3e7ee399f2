package game

import "math/rand"

// simulatedAudienceSize is how many studio-audience votes are synthesized.
const simulatedAudienceSize = 100

// AskTheAudienceLifeline opens a voting window for the contestants and
// synthesizes a studio audience on top. Results are two percentage
// distributions over the four slots, each summing to 100.
type AskTheAudienceLifeline struct {
	Used bool

	question      *HotSeatQuestion
	questionIndex int

	contestantPercents [NumChoices]int
	audiencePercents   [NumChoices]int
	tallied            bool

	players *PlayerMap
	rng     *rand.Rand
}

// AskTheAudienceResults carries both distributions, in percent.
type AskTheAudienceResults struct {
	ContestantPercents [NumChoices]int `json:"contestantPercents"`
	AudiencePercents   [NumChoices]int `json:"audiencePercents"`
}

func NewAskTheAudienceLifeline(players *PlayerMap, rng *rand.Rand) *AskTheAudienceLifeline {
	return &AskTheAudienceLifeline{questionIndex: -1, players: players, rng: rng}
}

// StartForQuestion activates the voting window and registers the lifeline on
// the grader.
func (l *AskTheAudienceLifeline) StartForQuestion(q *HotSeatQuestion) {
	if l.Used {
		return
	}
	l.Used = true
	l.question = q
	l.questionIndex = q.QuestionIndex
	q.Grader.AskTheAudience = l
}

// WaitingForContestants is true until every contestant has cast a vote (their
// current hot seat choice counts as the vote).
func (l *AskTheAudienceLifeline) WaitingForContestants() bool {
	if l.tallied {
		return false
	}
	for _, p := range l.players.Contestants() {
		if p.HotSeatChoice == nil {
			return true
		}
	}
	return false
}

// PopulateAllAnswerBuckets closes the window and tallies. Contestants who
// never voted get a simulated, plausibility-weighted vote so nobody is left
// un-voted in the final tally; the studio audience is fully simulated.
// Slots eliminated by fifty-fifty draw zero simulated votes.
func (l *AskTheAudienceLifeline) PopulateAllAnswerBuckets() {
	if l.tallied {
		return
	}
	l.tallied = true

	var contestantVotes [NumChoices]int
	total := 0
	for _, p := range l.players.Contestants() {
		choice := l.simulateVote()
		if p.HotSeatChoice != nil {
			choice = *p.HotSeatChoice
		}
		contestantVotes[choice]++
		total++
	}
	l.contestantPercents = toPercents(contestantVotes, total)

	var audienceVotes [NumChoices]int
	for i := 0; i < simulatedAudienceSize; i++ {
		audienceVotes[l.simulateVote()]++
	}
	l.audiencePercents = toPercents(audienceVotes, simulatedAudienceSize)
}

func (l *AskTheAudienceLifeline) HasResultsForQuestionIndex(questionIndex int) bool {
	return l.Used && l.questionIndex == questionIndex && l.tallied
}

func (l *AskTheAudienceLifeline) IsActiveForQuestionIndex(questionIndex int) bool {
	return l.Used && l.questionIndex == questionIndex && !l.tallied
}

func (l *AskTheAudienceLifeline) GetResults() *AskTheAudienceResults {
	if !l.tallied {
		return nil
	}
	return &AskTheAudienceResults{
		ContestantPercents: l.contestantPercents,
		AudiencePercents:   l.audiencePercents,
	}
}

func (l *AskTheAudienceLifeline) ToCompressedHotSeatActionButton(available bool) ActionButton {
	return ActionButton{
		Used:        l.Used,
		SocketEvent: eventHotSeatUseAskTheAudience,
		Available:   available && !l.Used,
	}
}

// simulateVote draws one vote, weighted 4:1 toward the correct slot against
// each surviving incorrect slot. Eliminated slots never receive votes.
func (l *AskTheAudienceLifeline) simulateVote() Choice {
	correct := l.question.CorrectChoice()
	ff := l.question.Grader.FiftyFifty

	var weights [NumChoices]int
	totalWeight := 0
	for c := ChoiceA; c <= ChoiceD; c++ {
		w := 1
		if c == correct {
			w = 4
		}
		if ff != nil && ff.IsExcluded(c) {
			w = 0
		}
		weights[c] = w
		totalWeight += w
	}

	n := l.rng.Intn(totalWeight)
	for c := ChoiceA; c <= ChoiceD; c++ {
		n -= weights[c]
		if n < 0 {
			return c
		}
	}
	return correct
}

// toPercents converts vote counts to percentages summing to exactly 100 (the
// remainder from integer division goes to the largest bucket).
func toPercents(votes [NumChoices]int, total int) [NumChoices]int {
	var percents [NumChoices]int
	if total == 0 {
		return percents
	}
	sum := 0
	largest := 0
	for i, v := range votes {
		percents[i] = v * 100 / total
		sum += percents[i]
		if v > votes[largest] {
			largest = i
		}
	}
	percents[largest] += 100 - sum
	return percents
}
