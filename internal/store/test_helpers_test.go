package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/siqr/internal/engine"
	"github.com/roach88/siqr/internal/model"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testParams() model.Parameters {
	return model.Parameters{
		PopulationSize:         200,
		InitialInfected:        5,
		NumDays:                20,
		ProbInfectedRecovery:   0.133333,
		ProbQuarantineRecovery: 0.133333,
		NumContacts:            10,
		ProbInfection:          0.05,
		QuarantineDays:         14,
		ProbQuarantine:         0.1,
		Propagation:            model.PropagationLive,
		Expiry:                 model.ExpiryRecover,
	}
}

// createTestDay creates a day report whose counts sum to 100.
func createTestDay(day, infected, quarantined int) engine.DayReport {
	return engine.DayReport{
		Day:            day,
		NewExposed:     infected / 2,
		NewQuarantined: quarantined / 2,
		Counts: model.Counts{
			Susceptible: 100 - infected - quarantined,
			Infected:    infected,
			Quarantined: quarantined,
		},
	}
}
