package game

import "math/rand"

// FiftyFiftyLifeline eliminates two incorrect display slots, never the
// correct one. Usable at most once per round.
type FiftyFiftyLifeline struct {
	Used bool
	// ExcludedChoices are the two eliminated display slots; undefined until
	// activation.
	ExcludedChoices []Choice

	questionIndex int
	rng           *rand.Rand
}

func NewFiftyFiftyLifeline(rng *rand.Rand) *FiftyFiftyLifeline {
	return &FiftyFiftyLifeline{questionIndex: -1, rng: rng}
}

// Activate picks 2 of the 3 incorrect slots uniformly at random, marks them
// eliminated and registers the lifeline on the question's grader so the
// elimination feeds contestant and audience logic.
func (l *FiftyFiftyLifeline) Activate(q *HotSeatQuestion) {
	if l.Used {
		return
	}
	l.Used = true
	l.questionIndex = q.QuestionIndex

	correct := q.CorrectChoice()
	var incorrect []Choice
	for c := ChoiceA; c <= ChoiceD; c++ {
		if c != correct {
			incorrect = append(incorrect, c)
		}
	}
	l.rng.Shuffle(len(incorrect), func(i, j int) {
		incorrect[i], incorrect[j] = incorrect[j], incorrect[i]
	})
	l.ExcludedChoices = incorrect[:2]

	q.Grader.FiftyFifty = l
}

// IsActiveForQuestionIndex reports whether the lifeline was spent on the
// question at index.
func (l *FiftyFiftyLifeline) IsActiveForQuestionIndex(index int) bool {
	return l.Used && l.questionIndex == index
}

// HasResultsForQuestionIndex reports whether eliminations exist for the
// question at index. Fifty-fifty resolves instantly, so results exist from
// the moment of activation.
func (l *FiftyFiftyLifeline) HasResultsForQuestionIndex(index int) bool {
	return l.IsActiveForQuestionIndex(index) && len(l.ExcludedChoices) > 0
}

// GetResults returns the eliminated display slots.
func (l *FiftyFiftyLifeline) GetResults() []Choice {
	return append([]Choice(nil), l.ExcludedChoices...)
}

func (l *FiftyFiftyLifeline) IsExcluded(choice Choice) bool {
	for _, c := range l.ExcludedChoices {
		if c == choice {
			return true
		}
	}
	return false
}

func (l *FiftyFiftyLifeline) ToCompressedHotSeatActionButton(available bool) ActionButton {
	return ActionButton{
		Used:        l.Used,
		SocketEvent: eventHotSeatUseFiftyFifty,
		Available:   available && !l.Used,
	}
}
