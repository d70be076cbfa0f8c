package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteText prints s with English digit grouping.
func WriteText(w io.Writer, s Summary) error {
	p := message.NewPrinter(language.English)

	lines := []struct {
		label string
		value string
	}{
		{"Seed", strconv.FormatUint(s.Seed, 10)},
		{"Days simulated", p.Sprintf("%d", s.Days)},
		{"Peak active (I+Q)", p.Sprintf("%d on day %d", s.Peak, s.PeakDay)},
		{"Final recovered or quarantined", p.Sprintf("%d", s.FinalRecoveredOrQuarantined)},
		{"Reproduction number (R0)", formatRatio(p, s.R0)},
		{"Final S/I/Q/R", p.Sprintf("%d / %d / %d / %d",
			s.Final.Susceptible, s.Final.Infected, s.Final.Quarantined, s.Final.Recovered)},
		{"Digest", s.Digest},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-32s%s\n", l.label+":", l.value); err != nil {
			return err
		}
	}
	return nil
}

func formatRatio(p *message.Printer, r Ratio) string {
	f := float64(r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return p.Sprintf("%.2f", f)
}
