package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/siqr/internal/engine"
)

var csvHeader = []string{
	"day", "susceptible", "infected", "quarantined", "recovered", "active",
	"new_exposed", "new_quarantined", "new_recovered", "expired",
}

// WriteCSV writes one row per day.
func WriteCSV(w io.Writer, days []engine.DayReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(csvHeader))
	for _, d := range days {
		c := d.Counts
		for i, v := range []int{
			d.Day, c.Susceptible, c.Infected, c.Quarantined, c.Recovered, c.Active(),
			d.NewExposed, d.NewQuarantined, d.NewRecovered, d.Expired,
		} {
			row[i] = strconv.Itoa(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv day %d: %w", d.Day, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
