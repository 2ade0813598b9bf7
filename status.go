package atf

import "time"

// StatusEntry is one point in a TuningStatus history: the moment a new
// minimum cost was recorded, the configuration that achieved it, and the
// cost itself.
type StatusEntry struct {
	Timestamp     time.Time
	Configuration *Configuration
	Cost          float64
}

// TuningStatus tracks a run's progress: how many configurations have been
// evaluated (valid or not), and a history of the successive best costs
// found. History always starts with a sentinel entry of cost maxCost recorded
// at the run's start, so evaluations_required_to_find_best and min_cost are
// always well-defined even before the first real evaluation lands.
type TuningStatus struct {
	StartTime time.Time

	Evaluated int
	Invalid   int
	Valid     int

	History []StatusEntry

	evaluationsAtLastImprovement int
}

// NewTuningStatus starts a fresh status with the required sentinel initial
// history entry.
func NewTuningStatus(start time.Time) *TuningStatus {
	return &TuningStatus{
		StartTime: start,
		History:   []StatusEntry{{Timestamp: start, Cost: maxCost}},
	}
}

// MinCost returns the best (lowest) cost recorded so far.
func (s *TuningStatus) MinCost() float64 {
	return s.History[len(s.History)-1].Cost
}

// BestConfiguration returns the configuration that achieved MinCost, or nil
// before any real evaluation has landed.
func (s *TuningStatus) BestConfiguration() *Configuration {
	return s.History[len(s.History)-1].Configuration
}

// EvaluationsRequiredToFindBest returns how many evaluations preceded (and
// including) the one that produced the current best cost.
func (s *TuningStatus) EvaluationsRequiredToFindBest() int {
	return s.evaluationsAtLastImprovement
}

// recordEvaluation is called once per cost-function invocation. If cost
// strictly improves the running minimum, a new history entry is appended
// and the evaluations-to-find-best counter is updated.
func (s *TuningStatus) recordEvaluation(now time.Time, cfg *Configuration, cost float64, valid bool) {
	s.Evaluated++
	if valid {
		s.Valid++
	} else {
		s.Invalid++
	}
	if cost < s.MinCost() {
		s.History = append(s.History, StatusEntry{Timestamp: now, Configuration: cfg, Cost: cost})
		s.evaluationsAtLastImprovement = s.Evaluated
	}
}
