// Package ingest populates the route graph at boot. Connection facts come
// from a symbolic knowledge-base text file, a CSV dataset, or the symbolic
// store itself, layered over a built-in sample dataset so the service always
// starts with a routable graph.
package ingest

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/skyroutes/planner/backend/internal/domain"
)

// factPattern matches well-formed flight-route facts:
//
//	(flight-route "Toronto" "NewYork" "AirCanada" (duration 1.5) (cost 220) (layovers 0))
//
// Atom quoting is optional.
var factPattern = regexp.MustCompile(
	`\(flight-route\s+"?([\w-]+)"?\s+"?([\w-]+)"?\s+"?([\w-]+)"?\s+` +
		`\(duration\s+([0-9.]+)\)\s+\(cost\s+([0-9.]+)\)\s+\(layovers\s+([0-9]+)\)\s*\)`)

// ParseKnowledgeBase extracts flight-route facts from a symbolic knowledge
// base. Each line is matched against the fact grammar first; lines that
// mention flight-route but do not parse fall back to a tolerant token
// extractor. Malformed lines are skipped, never fatal.
func ParseKnowledgeBase(r io.Reader) ([]domain.Connection, error) {
	var conns []domain.Connection
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if !strings.Contains(line, "flight-route") {
			continue
		}
		if conn, ok := parseFactLine(line); ok {
			conns = append(conns, conn)
			continue
		}
		if conn, ok := extractFactTokens(line); ok {
			conns = append(conns, conn)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return conns, nil
}

func parseFactLine(line string) (domain.Connection, bool) {
	m := factPattern.FindStringSubmatch(line)
	if m == nil {
		return domain.Connection{}, false
	}
	duration, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return domain.Connection{}, false
	}
	cost, err := strconv.ParseFloat(m[5], 64)
	if err != nil {
		return domain.Connection{}, false
	}
	layovers, err := strconv.Atoi(m[6])
	if err != nil {
		return domain.Connection{}, false
	}
	return domain.Connection{
		Origin:        domain.LocationID(m[1]),
		Destination:   domain.LocationID(m[2]),
		Carrier:       m[3],
		DurationHours: duration,
		CostAmount:    cost,
		Layovers:      layovers,
	}, true
}

// extractFactTokens is the plain-text fallback: strip parentheses and quotes,
// split on whitespace, and read the six fields positionally, skipping the
// attribute keywords.
func extractFactTokens(line string) (domain.Connection, bool) {
	cleaned := strings.NewReplacer("(", " ", ")", " ", `"`, " ").Replace(line)
	fields := strings.Fields(cleaned)

	var values []string
	for _, f := range fields {
		switch f {
		case "flight-route", "duration", "cost", "layovers":
			continue
		}
		values = append(values, f)
	}
	if len(values) != 6 {
		return domain.Connection{}, false
	}

	duration, err := strconv.ParseFloat(values[3], 64)
	if err != nil {
		return domain.Connection{}, false
	}
	cost, err := strconv.ParseFloat(values[4], 64)
	if err != nil {
		return domain.Connection{}, false
	}
	layovers, err := strconv.Atoi(values[5])
	if err != nil {
		return domain.Connection{}, false
	}
	return domain.Connection{
		Origin:        domain.LocationID(values[0]),
		Destination:   domain.LocationID(values[1]),
		Carrier:       values[2],
		DurationHours: duration,
		CostAmount:    cost,
		Layovers:      layovers,
	}, true
}

// FormatFact renders a connection as a flight-route fact, the shape pushed
// into the symbolic knowledge base by ingestion tooling.
func FormatFact(conn domain.Connection) string {
	var b strings.Builder
	b.WriteString(`(flight-route "`)
	b.WriteString(string(conn.Origin))
	b.WriteString(`" "`)
	b.WriteString(string(conn.Destination))
	b.WriteString(`" "`)
	b.WriteString(conn.Carrier)
	b.WriteString(`" (duration `)
	b.WriteString(strconv.FormatFloat(conn.DurationHours, 'f', -1, 64))
	b.WriteString(`) (cost `)
	b.WriteString(strconv.FormatFloat(conn.CostAmount, 'f', -1, 64))
	b.WriteString(`) (layovers `)
	b.WriteString(strconv.Itoa(conn.Layovers))
	b.WriteString(`))`)
	return b.String()
}
