package game

import "math/rand"

// PhoneAFriendLifeline lets the hot seat player phone one contestant (or a
// simulated friend when nobody else is around) for a suggested answer and a
// confidence value in [0,1].
type PhoneAFriendLifeline struct {
	Used bool

	// Friend is the phoned contestant; nil when the AI friend answers.
	Friend *Player

	question      *HotSeatQuestion
	questionIndex int

	friendChoice     *Choice
	friendConfidence *float64

	rng *rand.Rand
}

// PhoneAFriendResults is the broadcastable payload once the friend has
// answered.
type PhoneAFriendResults struct {
	FriendName string  `json:"friendName"`
	Choice     Choice  `json:"choice"`
	Confidence float64 `json:"confidence"`
}

func NewPhoneAFriendLifeline(rng *rand.Rand) *PhoneAFriendLifeline {
	return &PhoneAFriendLifeline{questionIndex: -1, rng: rng}
}

// StartForQuestion activates the lifeline against the given question and
// registers it on the grader. The friend is picked afterwards, by the hot
// seat player or the AI fallback.
func (l *PhoneAFriendLifeline) StartForQuestion(q *HotSeatQuestion) {
	if l.Used {
		return
	}
	l.Used = true
	l.question = q
	l.questionIndex = q.QuestionIndex
	q.Grader.PhoneAFriend = l
}

// PickFriend selects the human contestant to phone.
func (l *PhoneAFriendLifeline) PickFriend(p *Player) {
	l.Friend = p
}

// PickAIFriend simulates a friend: the suggestion is biased toward the
// correct slot but not guaranteed, and never an eliminated slot.
func (l *PhoneAFriendLifeline) PickAIFriend() {
	l.Friend = nil

	correct := l.question.CorrectChoice()
	choice := correct
	if l.rng.Float64() >= 0.75 {
		var wrong []Choice
		for c := ChoiceA; c <= ChoiceD; c++ {
			if c == correct {
				continue
			}
			if ff := l.question.Grader.FiftyFifty; ff != nil && ff.IsExcluded(c) {
				continue
			}
			wrong = append(wrong, c)
		}
		if len(wrong) > 0 {
			choice = wrong[l.rng.Intn(len(wrong))]
		}
	}

	var confidence float64
	if choice == correct {
		confidence = 0.5 + l.rng.Float64()*0.5
	} else {
		confidence = 0.1 + l.rng.Float64()*0.5
	}

	l.friendChoice = &choice
	l.friendConfidence = &confidence
}

// SetFriendChoice records the phoned contestant's suggested slot.
func (l *PhoneAFriendLifeline) SetFriendChoice(choice Choice) {
	if !choice.Valid() {
		return
	}
	c := choice
	l.friendChoice = &c
}

// SetFriendConfidence records the phoned contestant's self-reported
// confidence, clamped to [0,1].
func (l *PhoneAFriendLifeline) SetFriendConfidence(confidence float64) {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	c := confidence
	l.friendConfidence = &c
}

// WaitingForChoiceFromPlayer reports whether the lifeline still needs a slot
// suggestion from this specific player. Nobody may answer in the friend's
// stead.
func (l *PhoneAFriendLifeline) WaitingForChoiceFromPlayer(p *Player) bool {
	return l.Used && l.Friend == p && p != nil && l.friendChoice == nil
}

func (l *PhoneAFriendLifeline) WaitingForConfidenceFromPlayer(p *Player) bool {
	return l.Used && l.Friend == p && p != nil && l.friendChoice != nil && l.friendConfidence == nil
}

// IsActiveForQuestionIndex is true only mid-lifeline: activated for this rung
// and results not yet complete.
func (l *PhoneAFriendLifeline) IsActiveForQuestionIndex(questionIndex int) bool {
	return l.Used && l.questionIndex == questionIndex && !l.hasResults()
}

func (l *PhoneAFriendLifeline) HasResultsForQuestionIndex(questionIndex int) bool {
	return l.Used && l.questionIndex == questionIndex && l.hasResults()
}

func (l *PhoneAFriendLifeline) GetResults() *PhoneAFriendResults {
	if !l.hasResults() {
		return nil
	}
	name := StrAIFriendName
	if l.Friend != nil {
		name = l.Friend.Username
	}
	return &PhoneAFriendResults{
		FriendName: name,
		Choice:     *l.friendChoice,
		Confidence: *l.friendConfidence,
	}
}

func (l *PhoneAFriendLifeline) ToCompressedHotSeatActionButton(available bool) ActionButton {
	return ActionButton{
		Used:        l.Used,
		SocketEvent: eventHotSeatUsePhoneAFriend,
		Available:   available && !l.Used,
	}
}

// friendPayout is the phoned friend's risk/reward stake: double-or-nothing
// scaled by confidence instead of the flat contestant share.
func (l *PhoneAFriendLifeline) friendPayout(base int, correct bool) int {
	if l.friendConfidence == nil || !correct {
		return 0
	}
	return int(2 * *l.friendConfidence * float64(base))
}

func (l *PhoneAFriendLifeline) hasResults() bool {
	return l.friendChoice != nil && l.friendConfidence != nil
}
