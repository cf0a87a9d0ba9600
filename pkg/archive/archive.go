// Package archive stores a summary of every finished match
// Rooms themselves are never persisted, the archive is a record of results.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"stackandsteal-server/pkg/db"
)

// Match is the summary of a finished match
type Match struct {
	ID           int64     `json:"id"`
	RoomID       string    `json:"roomId"`
	WinnerSeatID string    `json:"winnerSeatId"`
	WinnerName   string    `json:"winnerName"`
	SeatIDs      []string  `json:"seatIds"`
	DisplayNames []string  `json:"displayNames"`
	FinalStacks  []int64   `json:"finalStacks"`
	Turns        int       `json:"turns"`
	StartedAt    time.Time `json:"startedAt"`
	FinishedAt   time.Time `json:"finishedAt"`
}

// Recorder records finished matches
type Recorder interface {
	RecordMatch(ctx context.Context, m *Match) error
}

// Store is a PostgreSQL backed Recorder
type Store struct {
	db *sql.DB
}

var _ Recorder = (*Store)(nil)

// NewStore returns a store for the database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const matchColumns = `
	id,
	room_id,
	winner_seat_id,
	winner_name,
	seat_ids,
	display_names,
	final_stacks,
	turns,
	started_at,
	finished_at`

// RecordMatch inserts the match and sets its ID
func (s *Store) RecordMatch(ctx context.Context, m *Match) error {
	if len(m.SeatIDs) != len(m.FinalStacks) || len(m.SeatIDs) != len(m.DisplayNames) {
		return errors.New("seat IDs, display names and final stacks must be the same length")
	}

	const query = `
INSERT INTO matches (room_id, winner_seat_id, winner_name, seat_ids, display_names, final_stacks, turns, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

	row := s.db.QueryRowContext(ctx, query,
		m.RoomID,
		m.WinnerSeatID,
		m.WinnerName,
		pq.Array(m.SeatIDs),
		pq.Array(m.DisplayNames),
		pq.Array(m.FinalStacks),
		m.Turns,
		m.StartedAt,
		m.FinishedAt)

	return row.Scan(&m.ID)
}

// RecentMatches returns the most recently finished matches
func (s *Store) RecentMatches(ctx context.Context, limit int) ([]*Match, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be greater than zero")
	}

	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY finished_at DESC, id DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*Match, 0, limit)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}

		matches = append(matches, m)
	}

	return matches, rows.Err()
}

func scanMatch(row db.Scanner) (*Match, error) {
	var m Match
	if err := row.Scan(
		&m.ID,
		&m.RoomID,
		&m.WinnerSeatID,
		&m.WinnerName,
		pq.Array(&m.SeatIDs),
		pq.Array(&m.DisplayNames),
		pq.Array(&m.FinalStacks),
		&m.Turns,
		&m.StartedAt,
		&m.FinishedAt,
	); err != nil {
		return nil, err
	}

	return &m, nil
}
