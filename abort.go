package atf

import "time"

// AbortCondition decides, given the current TuningStatus, whether a tuning
// run should stop. Conditions compose via And/Or, mirroring the Predicate
// combinators used by inter-parameter constraints.
type AbortCondition func(status *TuningStatus) bool

// AndAbort returns an AbortCondition satisfied only once every condition is
// satisfied.
func AndAbort(conds ...AbortCondition) AbortCondition {
	return func(s *TuningStatus) bool {
		for _, c := range conds {
			if !c(s) {
				return false
			}
		}
		return true
	}
}

// OrAbort returns an AbortCondition satisfied as soon as any condition is.
func OrAbort(conds ...AbortCondition) AbortCondition {
	return func(s *TuningStatus) bool {
		for _, c := range conds {
			if c(s) {
				return true
			}
		}
		return false
	}
}

// Evaluations aborts once the total number of evaluations (valid or not)
// reaches n.
func Evaluations(n int) AbortCondition {
	return func(s *TuningStatus) bool { return s.Evaluated >= n }
}

// ValidEvaluations aborts once the number of valid evaluations reaches n.
func ValidEvaluations(n int) AbortCondition {
	return func(s *TuningStatus) bool { return s.Valid >= n }
}

// Duration aborts once the run has been going for at least d, measured from
// TuningStatus.StartTime.
func Duration(d time.Duration) AbortCondition {
	return func(s *TuningStatus) bool { return time.Since(s.StartTime) >= d }
}

// TargetCost aborts once the best cost found so far is at or below target.
func TargetCost(target float64) AbortCondition {
	return func(s *TuningStatus) bool { return s.MinCost() <= target }
}

// SpeedupPlateau aborts once improvement over the trailing window has
// flattened: the ratio of the best cost found d ago to the best cost found
// now falls below threshold (close to 1 means little recent progress).
func SpeedupPlateau(d time.Duration, threshold float64) AbortCondition {
	return func(s *TuningStatus) bool {
		cutoff := time.Now().Add(-d)
		costAtCutoff := maxCost
		for _, e := range s.History {
			if e.Timestamp.After(cutoff) {
				break
			}
			costAtCutoff = e.Cost
		}
		now := s.MinCost()
		if now <= 0 || costAtCutoff == maxCost {
			return false
		}
		speedup := costAtCutoff / now
		return speedup < threshold
	}
}
