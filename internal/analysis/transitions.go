package analysis

import (
	"somnoseg/domain/sleep"
	"somnoseg/internal/errors"
)

// TransitionMatrix counts directed stage changes between consecutive
// samples. Counts[from][to] is zero on the diagonal since a same-stage pair
// is not a transition.
type TransitionMatrix struct {
	Counts map[sleep.Stage]map[sleep.Stage]int
	Total  int
}

// CountTransitions scans a stage sequence for stage changes.
func CountTransitions(stages []sleep.Stage) (*TransitionMatrix, error) {
	if len(stages) == 0 {
		return nil, errors.WithCode(errors.CodeInvalidInput, sleep.ErrNoData)
	}

	m := &TransitionMatrix{Counts: make(map[sleep.Stage]map[sleep.Stage]int)}
	for _, from := range []sleep.Stage{sleep.Wake, sleep.NREM, sleep.REM} {
		m.Counts[from] = make(map[sleep.Stage]int)
	}

	for i := 1; i < len(stages); i++ {
		from, to := stages[i-1], stages[i]
		if from == to {
			continue
		}
		m.Counts[from][to]++
		m.Total++
	}
	return m, nil
}

// Percent returns the share of one transition type among all transitions,
// as a percentage. Zero total yields zero.
func (m *TransitionMatrix) Percent(from, to sleep.Stage) float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Counts[from][to]) / float64(m.Total) * 100
}
