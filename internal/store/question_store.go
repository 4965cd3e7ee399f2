package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sandervrielink/millionaire-1/internal/game"
)

var ErrNoQuestions = errors.New("no questions available")

const (
	questionKindFastestFinger = "fastest_finger"
	questionKindHotSeat       = "hot_seat"
)

// QuestionStore serves question material from Postgres. Choices are stored
// in correctness order, so rows map directly onto game.QuestionContent.
type QuestionStore struct {
	db *pgxpool.Pool
}

func NewQuestionStore(db *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{db: db}
}

var _ game.QuestionSource = (*QuestionStore)(nil)

func (s *QuestionStore) FastestFinger(ctx context.Context) (game.QuestionContent, error) {
	return s.pickRandom(ctx, `
		SELECT text, choices
		FROM questions
		WHERE kind=$1
		ORDER BY random()
		LIMIT 1
	`, questionKindFastestFinger)
}

func (s *QuestionStore) HotSeat(ctx context.Context, questionIndex int) (game.QuestionContent, error) {
	q, err := s.pickRandom(ctx, `
		SELECT text, choices
		FROM questions
		WHERE kind=$1 AND difficulty=$2
		ORDER BY random()
		LIMIT 1
	`, questionKindHotSeat, difficultyForIndex(questionIndex))
	if errors.Is(err, ErrNoQuestions) {
		// thin tier, take anything rather than stall the game
		return s.pickRandom(ctx, `
			SELECT text, choices
			FROM questions
			WHERE kind=$1
			ORDER BY random()
			LIMIT 1
		`, questionKindHotSeat)
	}
	return q, err
}

func (s *QuestionStore) pickRandom(ctx context.Context, sql string, args ...any) (game.QuestionContent, error) {
	var (
		text    string
		choices []string
	)
	err := s.db.QueryRow(ctx, sql, args...).Scan(&text, &choices)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.QuestionContent{}, ErrNoQuestions
	}
	if err != nil {
		return game.QuestionContent{}, err
	}
	if len(choices) != game.NumChoices {
		return game.QuestionContent{}, fmt.Errorf("question %q has %d choices, want %d", text, len(choices), game.NumChoices)
	}

	q := game.QuestionContent{Text: text}
	copy(q.OrderedChoices[:], choices)
	return q, nil
}

// difficultyForIndex buckets the 15 money ladder rungs into three tiers.
func difficultyForIndex(questionIndex int) int {
	switch {
	case questionIndex < 5:
		return 1
	case questionIndex < 10:
		return 2
	default:
		return 3
	}
}
