package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerStats struct {
	UserID        string
	GamesPlayed   int
	HotSeatWins   int
	TotalWinnings int
	BiggestWin    int
	UpdatedAt     time.Time
}

type LeaderboardEntry struct {
	DisplayName   string
	TotalWinnings int
	BiggestWin    int
}

type StatsStore struct {
	db *pgxpool.Pool
}

func NewStatsStore(db *pgxpool.Pool) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) InitForUser(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (user_id, games_played, hot_seat_wins, total_winnings, biggest_win)
		VALUES ($1, 0, 0, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}

func (s *StatsStore) Get(ctx context.Context, userID string) (PlayerStats, error) {
	var st PlayerStats
	err := s.db.QueryRow(ctx, `
		SELECT user_id, games_played, hot_seat_wins, total_winnings, biggest_win, updated_at
		FROM player_stats
		WHERE user_id=$1
	`, userID).Scan(&st.UserID, &st.GamesPlayed, &st.HotSeatWins, &st.TotalWinnings, &st.BiggestWin, &st.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// missing stats are not fatal, treat as zeros
		return PlayerStats{UserID: userID}, nil
	}
	if err != nil {
		return PlayerStats{}, err
	}
	return st, nil
}

// AddWinnings credits a payout to the player's lifetime totals. The upsert
// keeps anonymous lobby players (no account) from failing the write.
func (s *StatsStore) AddWinnings(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return nil
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (user_id, games_played, hot_seat_wins, total_winnings, biggest_win)
		VALUES ($1, 0, 0, $2, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			total_winnings = player_stats.total_winnings + EXCLUDED.total_winnings,
			biggest_win    = GREATEST(player_stats.biggest_win, EXCLUDED.biggest_win),
			updated_at     = now()
	`, userID, amount)
	return err
}

func (s *StatsStore) RecordGamePlayed(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (user_id, games_played, hot_seat_wins, total_winnings, biggest_win)
		VALUES ($1, 1, 0, 0, 0)
		ON CONFLICT (user_id) DO UPDATE SET
			games_played = player_stats.games_played + 1,
			updated_at   = now()
	`, userID)
	return err
}

func (s *StatsStore) RecordHotSeatWin(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (user_id, games_played, hot_seat_wins, total_winnings, biggest_win)
		VALUES ($1, 0, 1, 0, 0)
		ON CONFLICT (user_id) DO UPDATE SET
			hot_seat_wins = player_stats.hot_seat_wins + 1,
			updated_at    = now()
	`, userID)
	return err
}

func (s *StatsStore) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT u.display_name, ps.total_winnings, ps.biggest_win
		FROM player_stats ps
		JOIN users u ON u.id = ps.user_id
		ORDER BY ps.total_winnings DESC, ps.biggest_win DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.DisplayName, &e.TotalWinnings, &e.BiggestWin); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
