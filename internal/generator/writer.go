package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"

	"github.com/skyroutes/planner/backend/internal/ingest"
)

type csvRow struct {
	From     string  `csv:"from"`
	To       string  `csv:"to"`
	Airline  string  `csv:"airline"`
	Duration float64 `csv:"duration"`
	Cost     float64 `csv:"cost"`
	Layovers int     `csv:"layovers"`
}

// WriteDataset serializes the network into connections.csv and
// flight_routes.metta under the provided directory, the two dataset formats
// the ingestion loader understands.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeCSV(filepath.Join(dir, "connections.csv"), dataset); err != nil {
		return err
	}
	return writeKnowledgeBase(filepath.Join(dir, "flight_routes.metta"), dataset)
}

func writeCSV(path string, dataset Dataset) error {
	rows := make([]csvRow, 0, len(dataset.Connections))
	for _, conn := range dataset.Connections {
		rows = append(rows, csvRow{
			From:     string(conn.Origin),
			To:       string(conn.Destination),
			Airline:  conn.Carrier,
			Duration: conn.DurationHours,
			Cost:     conn.CostAmount,
			Layovers: conn.Layovers,
		})
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeKnowledgeBase(path string, dataset Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	for _, conn := range dataset.Connections {
		if _, err := fmt.Fprintln(file, ingest.FormatFact(conn)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
