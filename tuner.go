package atf

import "fmt"

// Tuner is the user-facing chainable builder over an ExplorationEngine.
// Call TuningParameters once per G-group, pick a technique with
// SearchTechnique (or an index technique via SearchIndexTechnique), then
// either Tune for a batch run or drive GetConfiguration/ReportCost/MakeStep
// for stepping.
//
// Usage:
//
//	status, err := NewTuner().
//	    TuningParameters(G(blockSize, unroll)).
//	    SearchTechnique(NewSimulatedAnnealing()).
//	    LogFile("run.csv").
//	    Tune(func(cfg *Configuration) (float64, bool) {
//	        return benchmark(cfg), true
//	    })
type Tuner struct {
	groups []Group
	engine ExplorationEngine
}

// NewTuner starts an empty builder.
func NewTuner() *Tuner { return &Tuner{} }

// TuningParameters registers one or more G-groups, appended to whatever was
// registered by earlier calls.
func (t *Tuner) TuningParameters(groups ...Group) *Tuner {
	t.groups = append(t.groups, groups...)
	return t
}

// SearchTechnique selects a coordinate-form technique. Mutually exclusive
// with SearchIndexTechnique; the later call wins.
func (t *Tuner) SearchTechnique(tech CoordinateTechnique) *Tuner {
	t.engine.CoordTechnique = tech
	t.engine.IndexTechnique = nil
	return t
}

// SearchIndexTechnique selects an index-form technique.
func (t *Tuner) SearchIndexTechnique(tech IndexTechnique) *Tuner {
	t.engine.IndexTechnique = tech
	t.engine.CoordTechnique = nil
	return t
}

// AbortCondition sets the stopping rule for batch Tune. Unset, the engine
// defaults to Evaluations(|S|).
func (t *Tuner) AbortCondition(cond AbortCondition) *Tuner {
	t.engine.Abort = cond
	return t
}

// AbortOnError makes the engine terminate a batch Tune immediately on the
// first invalid configuration, rather than merely recording it.
func (t *Tuner) AbortOnError(v bool) *Tuner {
	t.engine.AbortOnErr = v
	return t
}

// Silent suppresses progress-channel updates (cosmetic; has no effect
// unless Progress was also set).
func (t *Tuner) Silent(v bool) *Tuner {
	t.engine.Silent = v
	return t
}

// Progress sets a channel to receive an EngineProgress after every
// evaluation. Pass nil (the default) for no updates.
func (t *Tuner) Progress(ch chan<- EngineProgress) *Tuner {
	t.engine.ProgressChan = ch
	return t
}

// LogFile sets the CSV tuning-log path. Unset, the engine derives a default
// name from the run's start time.
func (t *Tuner) LogFile(path string) *Tuner {
	t.engine.LogFilePath = path
	return t
}

func (t *Tuner) ensureSpace() error {
	if t.engine.Space != nil {
		return nil
	}
	if len(t.groups) == 0 {
		return fmt.Errorf("%w: Tuner: TuningParameters must be called before Tune/GetConfiguration", ErrInternal)
	}
	space, err := NewSearchSpace(t.groups...)
	if err != nil {
		return err
	}
	t.engine.Space = space
	return nil
}

// Tune runs a full batch tuning session and returns the final status.
func (t *Tuner) Tune(fn CostFunc) (*TuningStatus, error) {
	if err := t.ensureSpace(); err != nil {
		return nil, err
	}
	return t.engine.Tune(fn)
}

// GetConfiguration pulls the next configuration to evaluate in stepping
// mode.
func (t *Tuner) GetConfiguration() (*Configuration, error) {
	if err := t.ensureSpace(); err != nil {
		return nil, err
	}
	return t.engine.GetConfiguration()
}

// ReportCost completes the stepping round begun by the last
// GetConfiguration.
func (t *Tuner) ReportCost(cfg *Configuration, cost float64, ok bool) error {
	return t.engine.ReportCost(cfg, cost, ok)
}

// MakeStep runs one GetConfiguration/fn/ReportCost round and returns the
// recorded cost.
func (t *Tuner) MakeStep(fn CostFunc) (float64, error) {
	if err := t.ensureSpace(); err != nil {
		return 0, err
	}
	return t.engine.MakeStep(fn)
}

// FinishStepping ends the current stepping session, finalizing the
// technique and closing the CSV log.
func (t *Tuner) FinishStepping() { t.engine.FinishStepping() }

// GetTuningStatus exposes the status accumulated so far, usable mid-run.
func (t *Tuner) GetTuningStatus() *TuningStatus { return t.engine.GetTuningStatus() }

// SpaceSize reports |S| for the configured search space, mainly useful for
// choosing an Evaluations abort bound relative to the space size.
func (t *Tuner) SpaceSize() (BigInt, error) {
	if err := t.ensureSpace(); err != nil {
		return BigInt{}, err
	}
	return t.engine.Space.Size(), nil
}
