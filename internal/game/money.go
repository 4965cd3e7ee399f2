package game

// Payouts money values per ladder rung (0 = $100, 14 = $1 million).
var Payouts = [15]int{
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 16000, 32000,
	64000, 125000, 250000, 500000, 1000000,
}

var MoneyStrings = [15]string{
	"$100", "$200", "$300", "$500", "$1,000",
	"$2,000", "$4,000", "$8,000", "$16,000", "$32,000",
	"$64,000", "$125,000", "$250,000", "$500,000", "$1,000,000",
}

var safeHavens = []int{4, 14}

// SafeHavenIndex returns the greatest safe-haven rung not exceeding
// questionIndex, or -1 when no haven has been reached yet.
func SafeHavenIndex(questionIndex int) int {
	haven := -1
	for _, h := range safeHavens {
		if h <= questionIndex {
			haven = h
		}
	}
	return haven
}

// PayoutForIndex returns the dollar amount for a ladder rung; rungs below 0
// pay nothing.
func PayoutForIndex(questionIndex int) int {
	if questionIndex < 0 || questionIndex >= len(Payouts) {
		return 0
	}
	return Payouts[questionIndex]
}

func MoneyStringForIndex(questionIndex int) string {
	if questionIndex < 0 || questionIndex >= len(MoneyStrings) {
		return "$0"
	}
	return MoneyStrings[questionIndex]
}
