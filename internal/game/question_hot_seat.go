package game

import "math/rand"

// HotSeatQuestion is one rung of the money ladder. OrderedChoices[0] is the
// correct answer; ShuffledChoices is the display permutation fixed at
// construction.
type HotSeatQuestion struct {
	Text            string
	OrderedChoices  [NumChoices]string
	ShuffledChoices [NumChoices]string

	RevealedChoices []string
	QuestionIndex   int

	// The host may see the correct answer before the table does, so the two
	// reveal flags are tracked independently.
	CorrectChoiceRevealedForShowHost bool
	CorrectChoiceRevealedForAll      bool

	Grader *HotSeatQuestionGrader
}

func NewHotSeatQuestion(content QuestionContent, questionIndex int, players *PlayerMap, rng *rand.Rand) *HotSeatQuestion {
	q := &HotSeatQuestion{
		Text:           content.Text,
		OrderedChoices: content.OrderedChoices,
		QuestionIndex:  questionIndex,
	}
	perm := rng.Perm(NumChoices)
	for i, j := range perm {
		q.ShuffledChoices[i] = content.OrderedChoices[j]
	}
	q.Grader = newHotSeatQuestionGrader(q, players)
	return q
}

// RevealChoice reveals the next display slot. Idempotent past full reveal.
func (q *HotSeatQuestion) RevealChoice() {
	if len(q.RevealedChoices) >= NumChoices {
		return
	}
	q.RevealedChoices = append(q.RevealedChoices, q.ShuffledChoices[len(q.RevealedChoices)])
}

func (q *HotSeatQuestion) RevealAllChoices() {
	for len(q.RevealedChoices) < NumChoices {
		q.RevealChoice()
	}
}

// AllChoicesRevealed gates when hot seat and contestant input becomes legal.
func (q *HotSeatQuestion) AllChoicesRevealed() bool {
	return len(q.RevealedChoices) >= NumChoices
}

// CorrectChoice is the display slot holding the correct answer.
func (q *HotSeatQuestion) CorrectChoice() Choice {
	for i, c := range q.ShuffledChoices {
		if c == q.OrderedChoices[0] {
			return Choice(i)
		}
	}
	return Choice(-1)
}

func (q *HotSeatQuestion) AnswerIsCorrect(choice Choice) bool {
	return choice.Valid() && q.ShuffledChoices[choice] == q.OrderedChoices[0]
}

// toCompressed emits only what the given viewer may see: their own recorded
// choice and the correct slot only when their reveal flag is set.
func (q *HotSeatQuestion) toCompressed(madeChoice *Choice, showCorrectChoice bool) *QuestionView {
	view := &QuestionView{
		Text:            q.Text,
		RevealedChoices: append([]string(nil), q.RevealedChoices...),
	}
	if madeChoice != nil {
		c := *madeChoice
		view.MadeChoice = &c
	}
	if showCorrectChoice {
		c := q.CorrectChoice()
		view.CorrectChoice = &c
	}
	if q.Grader.FiftyFifty != nil && q.Grader.FiftyFifty.HasResultsForQuestionIndex(q.QuestionIndex) {
		view.EliminatedChoices = q.Grader.FiftyFifty.GetResults()
	}
	return view
}
