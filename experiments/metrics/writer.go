package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type GameRecord struct {
	Seats Seats
	GameMetric
}

// Seats holds the AgentConfig.ID playing each seat, player 1 first.
type Seats []int

func (s Seats) String() string {
	ids := make([]string, len(s))
	for i, id := range s {
		ids[i] = strconv.Itoa(id)
	}
	return strings.Join(ids, ";")
}

// Agent returns the AgentConfig.ID of a player, or 0 when the seat is unknown.
func (s Seats) Agent(player int) int {
	if player < 1 || player > len(s) {
		return 0
	}
	return s[player-1]
}

// ParseSeats reads the format written by Seats.String.
func ParseSeats(text string) (Seats, error) {
	seats := Seats{}
	if text == "" {
		return seats, nil
	}
	for _, field := range strings.Split(text, ";") {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid seat %q: %w", field, err)
		}
		seats = append(seats, id)
	}
	return seats, nil
}

type MoveRecord struct {
	Game string // GameMetric.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a folder named by the current timestamp under dir/name.
func NewWriter(dir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "kind", "budget", "max_depth"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			config.Budget.String(),
			strconv.Itoa(config.MaxDepth),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "seats", "starting_player", "winner", "leader", "start_time", "end_time", "duration", "total_moves", "rounds"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ID,
			record.Seats.String(),
			strconv.Itoa(record.StartingPlayer),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.Leader),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Rounds),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "attacks", "duration", "depth", "combinations", "pruned", "infeasible", "defects", "timed_out"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.Game,
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Attacks),
			record.Duration.String(),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Combinations),
			strconv.Itoa(record.Pruned),
			strconv.Itoa(record.Infeasible),
			strconv.Itoa(record.Defects),
			strconv.FormatBool(record.TimedOut),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
