package game

import (
	"context"
	"math/rand"
)

// QuestionContent is raw question material before a round-scoped question
// object is built from it. OrderedChoices[0] is the correct answer for hot
// seat questions; for fastest finger it is the full correctness ranking.
type QuestionContent struct {
	Text           string
	OrderedChoices [NumChoices]string
}

// QuestionSource supplies question material. The production implementation is
// backed by Postgres; the builtin source keeps games playable without one.
type QuestionSource interface {
	FastestFinger(ctx context.Context) (QuestionContent, error)
	// HotSeat returns material suited to the given ladder rung (0..14).
	HotSeat(ctx context.Context, questionIndex int) (QuestionContent, error)
}

type builtinQuestionSource struct {
	rng *rand.Rand
}

// NewBuiltinQuestionSource returns a source drawing from a small embedded
// bank, mostly useful for development and tests.
func NewBuiltinQuestionSource(rng *rand.Rand) QuestionSource {
	return &builtinQuestionSource{rng: rng}
}

func (s *builtinQuestionSource) FastestFinger(context.Context) (QuestionContent, error) {
	bank := builtinFastestFingerBank
	return bank[s.rng.Intn(len(bank))], nil
}

func (s *builtinQuestionSource) HotSeat(_ context.Context, questionIndex int) (QuestionContent, error) {
	bank := builtinHotSeatBank
	return bank[(questionIndex+s.rng.Intn(len(bank)))%len(bank)], nil
}

// fallbackQuestionSource tries primary and falls back to the builtin bank, so
// a flaky or empty question store never stalls a running game.
type fallbackQuestionSource struct {
	primary  QuestionSource
	fallback QuestionSource
}

func NewFallbackQuestionSource(primary, fallback QuestionSource) QuestionSource {
	return &fallbackQuestionSource{primary: primary, fallback: fallback}
}

func (s *fallbackQuestionSource) FastestFinger(ctx context.Context) (QuestionContent, error) {
	if q, err := s.primary.FastestFinger(ctx); err == nil {
		return q, nil
	}
	return s.fallback.FastestFinger(ctx)
}

func (s *fallbackQuestionSource) HotSeat(ctx context.Context, questionIndex int) (QuestionContent, error) {
	if q, err := s.primary.HotSeat(ctx, questionIndex); err == nil {
		return q, nil
	}
	return s.fallback.HotSeat(ctx, questionIndex)
}

var builtinFastestFingerBank = []QuestionContent{
	{
		Text:           "Put these planets in order of distance from the sun, closest first.",
		OrderedChoices: [NumChoices]string{"Mercury", "Venus", "Earth", "Mars"},
	},
	{
		Text:           "Put these historical events in chronological order, earliest first.",
		OrderedChoices: [NumChoices]string{"Fall of Rome", "Magna Carta", "French Revolution", "Moon landing"},
	},
	{
		Text:           "Put these numbers in ascending order.",
		OrderedChoices: [NumChoices]string{"A baker's dozen", "A score", "A gross", "A myriad"},
	},
	{
		Text:           "Order these units of length from shortest to longest.",
		OrderedChoices: [NumChoices]string{"Inch", "Foot", "Yard", "Furlong"},
	},
}

var builtinHotSeatBank = []QuestionContent{
	{
		Text:           "What is the capital of France?",
		OrderedChoices: [NumChoices]string{"Paris", "Lyon", "Marseille", "Nice"},
	},
	{
		Text:           "Which planet is known as the Red Planet?",
		OrderedChoices: [NumChoices]string{"Mars", "Venus", "Jupiter", "Saturn"},
	},
	{
		Text:           "How many strings does a standard violin have?",
		OrderedChoices: [NumChoices]string{"Four", "Five", "Six", "Seven"},
	},
	{
		Text:           "Which element has the chemical symbol 'Au'?",
		OrderedChoices: [NumChoices]string{"Gold", "Silver", "Aluminium", "Argon"},
	},
	{
		Text:           "Who painted the Mona Lisa?",
		OrderedChoices: [NumChoices]string{"Leonardo da Vinci", "Michelangelo", "Raphael", "Donatello"},
	},
}
