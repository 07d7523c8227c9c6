package stats

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"differenzler/game"
)

// CSVSink appends one row per scored round:
// game_id, round, name1, points1, ..., name4, points4
type CSVSink struct {
	path string
	mu   sync.Mutex
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Record(_ context.Context, rec game.RoundRecord) error {
	row := make([]string, 0, 2+2*len(rec.Scores))
	row = append(row, rec.GameID, strconv.Itoa(rec.Round))
	for _, sc := range rec.Scores {
		row = append(row, sc.Participant, strconv.Itoa(sc.Points))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err = w.Write(row); err != nil {
		_ = f.Close()
		return err
	}
	w.Flush()
	if err = w.Error(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Row one parsed record line.
type Row struct {
	GameID string
	Round  int
	Scores []game.Score
}

// ReadAll parses every row written by CSVSink, e.g. for offline statistics.
func ReadAll(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		round, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, err
		}
		row := Row{GameID: rec[0], Round: round}
		for i := 2; i+1 < len(rec); i += 2 {
			pts, err := strconv.Atoi(rec[i+1])
			if err != nil {
				return nil, err
			}
			row.Scores = append(row.Scores, game.Score{Participant: rec[i], Points: pts})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
