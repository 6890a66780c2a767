package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/skyroutes/planner/backend/internal/domain"
)

// csvConnection maps the dataset CSV header onto a connection record.
type csvConnection struct {
	From     string  `csv:"from"`
	To       string  `csv:"to"`
	Airline  string  `csv:"airline"`
	Duration float64 `csv:"duration"`
	Cost     float64 `csv:"cost"`
	Layovers int     `csv:"layovers"`
}

// ParseCSV decodes a connection dataset. The first line must be a header
// matching the csv tags; rows with empty endpoints are skipped.
func ParseCSV(r io.Reader) ([]domain.Connection, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("create csv decoder: %w", err)
	}

	var rows []csvConnection
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode connection csv: %w", err)
	}

	conns := make([]domain.Connection, 0, len(rows))
	for _, row := range rows {
		if row.From == "" || row.To == "" {
			continue
		}
		conns = append(conns, domain.Connection{
			Origin:        domain.LocationID(row.From),
			Destination:   domain.LocationID(row.To),
			Carrier:       row.Airline,
			DurationHours: row.Duration,
			CostAmount:    row.Cost,
			Layovers:      row.Layovers,
		})
	}
	return conns, nil
}
