package odds

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrEmptyTable = errors.New("odds table has no rows")

// CSVTable serves precomputed rows of "defenders,attackers". Further columns are
// ignored. Defender counts past the last row are answered by the fallback table.
type CSVTable struct {
	needed   map[int]int
	maxRow   int
	fallback Table
}

// LoadCSV reads a table, skipping a header row if present. fallback may be nil,
// in which case the last row is extrapolated one attacker per defender.
func LoadCSV(r io.Reader, fallback Table) (*CSVTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0
	reader.TrimLeadingSpace = true

	t := &CSVTable{needed: make(map[int]int), fallback: fallback}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read odds row: %w", err)
		}
		line++
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: need defenders and attackers", line)
		}
		defenders, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("invalid defenders on line %d: %w", line, err)
		}
		attackers, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid attackers on line %d: %w", line, err)
		}
		if defenders < 1 || attackers < 1 {
			return nil, fmt.Errorf("line %d: troop counts must be positive", line)
		}
		t.needed[defenders] = attackers
		t.maxRow = max(t.maxRow, defenders)
	}
	if len(t.needed) == 0 {
		return nil, ErrEmptyTable
	}
	return t, nil
}

func (t *CSVTable) TroopsNeeded(defenders int) int {
	if defenders <= 0 {
		return 1
	}
	if n, ok := t.needed[defenders]; ok {
		return n
	}
	if t.fallback != nil {
		return t.fallback.TroopsNeeded(defenders)
	}
	if defenders > t.maxRow {
		return t.needed[t.maxRow] + defenders - t.maxRow
	}
	// Gaps take the next row up
	for d := defenders + 1; d <= t.maxRow; d++ {
		if n, ok := t.needed[d]; ok {
			return n
		}
	}
	return defenders + 1
}

// Write dumps a table for defenders 1..rows in the format LoadCSV reads. Dice
// tables also get the capture probability and expected losses of each row.
func Write(w io.Writer, table Table, rows int) error {
	dice, _ := table.(*DiceTable)
	header := []string{"defenders", "attackers"}
	if dice != nil {
		header = append(header, "capture_probability", "expected_losses")
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write odds header: %w", err)
	}
	for d := 1; d <= rows; d++ {
		attackers := table.TroopsNeeded(d)
		row := []string{strconv.Itoa(d), strconv.Itoa(attackers)}
		if dice != nil {
			row = append(row,
				strconv.FormatFloat(dice.CaptureProbability(attackers, d), 'f', 4, 64),
				strconv.FormatFloat(dice.ExpectedLosses(attackers, d), 'f', 4, 64))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write odds row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
