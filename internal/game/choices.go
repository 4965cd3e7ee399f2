package game

// Choice is one of the four answer slots shown to players.
type Choice int

const (
	ChoiceA Choice = iota
	ChoiceB
	ChoiceC
	ChoiceD
)

// NumChoices answer slots per question, and the max fastest finger picks.
const NumChoices = 4

func (c Choice) Valid() bool {
	return c >= ChoiceA && c <= ChoiceD
}

func (c Choice) Letter() string {
	if !c.Valid() {
		return "?"
	}
	return string(rune('A' + int(c)))
}
