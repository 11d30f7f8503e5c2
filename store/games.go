package store

import (
	"fmt"
	"time"

	"conquest/experiments/metrics"
)

// SaveGame stores a finished game and the metrics of its turns.
func (db *DB) SaveGame(experiment string, game metrics.GameRecord, moves []metrics.MoveRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO games (id, experiment, seats, starting_player, winner, leader, started_at, ended_at, duration_ns, total_moves, rounds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, game.ID, experiment, game.Seats.String(), game.StartingPlayer, game.Winner, game.Leader,
		game.StartTime.UTC(), game.EndTime.UTC(), int64(game.Duration), game.TotalMoves, game.Rounds)
	if err != nil {
		return fmt.Errorf("failed to insert game %s: %w", game.ID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO moves (game_id, step, player, attacks, duration_ns, depth, combinations, pruned, infeasible, defects, timed_out)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range moves {
		_, err := stmt.Exec(game.ID, m.Step, m.Player, m.Attacks, int64(m.Duration), m.Depth,
			m.Combinations, m.Pruned, m.Infeasible, m.Defects, m.TimedOut)
		if err != nil {
			return fmt.Errorf("failed to insert move %d of game %s: %w", m.Step, game.ID, err)
		}
	}

	return tx.Commit()
}

// ListGames retrieves the games of an experiment in the order they ended.
func (db *DB) ListGames(experiment string) ([]metrics.GameRecord, error) {
	rows, err := db.conn.Query(`
		SELECT id, seats, starting_player, winner, leader, started_at, ended_at, duration_ns, total_moves, rounds
		FROM games WHERE experiment = ?
		ORDER BY ended_at ASC, id ASC
	`, experiment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []metrics.GameRecord{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// GetMoves retrieves the turns of a game in play order.
func (db *DB) GetMoves(gameID string) ([]metrics.MoveRecord, error) {
	rows, err := db.conn.Query(`
		SELECT step, player, attacks, duration_ns, depth, combinations, pruned, infeasible, defects, timed_out
		FROM moves WHERE game_id = ?
		ORDER BY step ASC
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moves := []metrics.MoveRecord{}
	for rows.Next() {
		m := metrics.MoveRecord{Game: gameID}
		var duration int64
		if err := rows.Scan(&m.Step, &m.Player, &m.Attacks, &duration, &m.Depth,
			&m.Combinations, &m.Pruned, &m.Infeasible, &m.Defects, &m.TimedOut); err != nil {
			return nil, err
		}
		m.Duration = time.Duration(duration)
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Wins counts the games of an experiment won by each player ID.
func (db *DB) Wins(experiment string) (map[int]int, error) {
	rows, err := db.conn.Query(`
		SELECT winner, COUNT(*) FROM games WHERE experiment = ? GROUP BY winner
	`, experiment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wins := map[int]int{}
	for rows.Next() {
		var winner, count int
		if err := rows.Scan(&winner, &count); err != nil {
			return nil, err
		}
		wins[winner] = count
	}
	return wins, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (metrics.GameRecord, error) {
	var g metrics.GameRecord
	var seats string
	var duration int64
	if err := row.Scan(&g.ID, &seats, &g.StartingPlayer, &g.Winner, &g.Leader,
		&g.StartTime, &g.EndTime, &duration, &g.TotalMoves, &g.Rounds); err != nil {
		return g, err
	}
	g.Duration = time.Duration(duration)
	var err error
	g.Seats, err = metrics.ParseSeats(seats)
	if err != nil {
		return g, fmt.Errorf("game %s: %w", g.ID, err)
	}
	return g, nil
}
