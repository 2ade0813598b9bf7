package atf

import (
	"fmt"
	"time"
)

// CostFunc evaluates a Configuration and returns its cost plus whether the
// evaluation succeeded. A failed evaluation (ok == false) is recorded as the
// sentinel maxCost and reported to the technique as worst-possible, per the
// invalid-cost-handling contract.
type CostFunc func(cfg *Configuration) (cost float64, ok bool)

// EngineProgress is a snapshot handed down a channel after every
// evaluation, for callers that want to render live progress instead of
// reading TuningStatus after the fact.
type EngineProgress struct {
	Evaluated  int
	Invalid    int
	MinCost    float64
	LastCost   float64
	LastConfig *Configuration
}

// mode tracks which lifecycle an ExplorationEngine is currently committed
// to: batch tuning and stepping are mutually exclusive within a run, and
// stepping itself enforces strict get/report alternation.
type engineMode int

const (
	modeIdle engineMode = iota
	modeBatch
	modeStepping
)

// ExplorationEngine owns a SearchSpace, at most one search technique
// (coordinate-form or index-form, mutually exclusive), an optional
// AbortCondition, and a TuningStatus. It runs either a batch tune() loop or
// a stepping get_configuration()/report_cost() alternation, never both in
// the same run.
type ExplorationEngine struct {
	Space *SearchSpace

	CoordTechnique CoordinateTechnique
	IndexTechnique IndexTechnique

	Abort       AbortCondition
	AbortOnErr  bool
	Silent      bool
	LogFilePath string

	// ProgressChan, when non-nil and Silent is false, receives an
	// EngineProgress after every evaluation. Nil (the default) means no
	// progress updates.
	ProgressChan chan<- EngineProgress

	status *TuningStatus
	log    *csvTuningLog

	mode engineMode

	// stepping state
	pendingCoord []float64
	pendingIndex BigInt
	awaitingCost bool
	lastGetNext  time.Duration
}

func (e *ExplorationEngine) usesCoordinate() bool { return e.CoordTechnique != nil }

// ensureDefaultTechnique installs ExhaustiveIndex when neither technique was
// configured.
func (e *ExplorationEngine) ensureDefaultTechnique() {
	if e.CoordTechnique == nil && e.IndexTechnique == nil {
		e.IndexTechnique = NewExhaustiveIndex()
	}
}

func (e *ExplorationEngine) ensureAbort() AbortCondition {
	if e.Abort != nil {
		return e.Abort
	}
	return Evaluations(mustInt(e.Space.Size()))
}

// mustInt narrows a BigInt size to an int for the default Evaluations(|S|)
// abort condition, saturating at MaxInt rather than failing when the space
// is larger than fits in a machine word -- a saturated default abort bound
// is still a correct (if generous) stopping point.
func mustInt(b BigInt) int {
	n, err := b.ToInt64()
	if err != nil {
		return int(^uint(0) >> 1)
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

func (e *ExplorationEngine) openLog() error {
	if e.log != nil {
		return nil
	}
	path := e.LogFilePath
	if path == "" {
		path = DefaultLogFilename(e.status.StartTime)
	}
	names := make([]string, len(e.Space.Parameters()))
	for i, p := range e.Space.Parameters() {
		names[i] = p.Name
	}
	log, err := newCSVTuningLog(path, names)
	if err != nil {
		return err
	}
	e.log = log
	return nil
}

func (e *ExplorationEngine) closeLog() {
	if e.log != nil {
		e.log.Close()
		e.log = nil
	}
}

func (e *ExplorationEngine) initTechnique() {
	if e.usesCoordinate() {
		e.CoordTechnique.Initialize(e.Space.Dimensions())
	} else {
		e.IndexTechnique.Initialize(e.Space.Size())
	}
}

func (e *ExplorationEngine) finalizeTechnique() {
	if e.usesCoordinate() {
		e.CoordTechnique.Finalize()
	} else {
		e.IndexTechnique.Finalize()
	}
}

// evaluateOne translates a proposal to a Configuration, applies it to live
// parameter storage, invokes fn, records it in TuningStatus and the CSV log,
// and returns the cost and success flag.
func (e *ExplorationEngine) evaluateOne(cfg *Configuration, fn CostFunc, getNext time.Duration) (float64, bool, error) {
	cfg.Apply()

	t0 := time.Now()
	cost, ok := fn(cfg)
	costFnDur := time.Since(t0)
	if !ok || cost < 0 {
		cost = maxCost
		ok = false
	}

	now := time.Now()
	t1 := time.Now()
	e.status.recordEvaluation(now, cfg, cost, ok)
	if err := e.openLog(); err != nil {
		return cost, ok, err
	}
	if err := e.log.appendRow(now, cfg, cost, timing{GetNext: getNext, CostFn: costFnDur, Report: time.Since(t1)}); err != nil {
		return cost, ok, err
	}

	if e.ProgressChan != nil && !e.Silent {
		e.ProgressChan <- EngineProgress{
			Evaluated:  e.status.Evaluated,
			Invalid:    e.status.Invalid,
			MinCost:    e.status.MinCost(),
			LastCost:   cost,
			LastConfig: cfg,
		}
	}
	return cost, ok, nil
}

// Tune runs the batch lifecycle to completion: propose a batch, evaluate
// every member in proposal order, report the batch back, repeat until the
// abort condition fires. It is an error to call Tune while a stepping run is
// in progress.
func (e *ExplorationEngine) Tune(fn CostFunc) (*TuningStatus, error) {
	if e.mode == modeStepping {
		return nil, fmt.Errorf("%w: Tune: stepping session already in progress", ErrProtocol)
	}
	e.mode = modeBatch
	defer func() { e.mode = modeIdle }()

	e.ensureDefaultTechnique()
	e.status = NewTuningStatus(time.Now())
	defer e.closeLog()
	defer e.finalizeTechnique()

	e.initTechnique()
	abort := e.ensureAbort()

	for !abort(e.status) {
		if err := e.runBatchOnce(fn); err != nil {
			return e.status, err
		}
	}
	return e.status, nil
}

func (e *ExplorationEngine) runBatchOnce(fn CostFunc) error {
	if e.usesCoordinate() {
		t0 := time.Now()
		batch := e.CoordTechnique.NextCoordinates()
		getNext := time.Since(t0)
		results := make([]CoordinateCost, 0, len(batch))
		for _, coord := range batch {
			cfg, err := e.Space.GetByCoordinates(coord)
			if err != nil {
				return err
			}
			cost, ok, err := e.evaluateOne(cfg, fn, getNext)
			if err != nil {
				return err
			}
			results = append(results, CoordinateCost{Coord: coord, Cost: cost})
			if !ok && e.AbortOnErr {
				e.CoordTechnique.ReportCosts(results)
				return fmt.Errorf("%w: Tune: aborting on invalid configuration", ErrInvalidConfig)
			}
		}
		e.CoordTechnique.ReportCosts(results)
		return nil
	}

	t0 := time.Now()
	batch := e.IndexTechnique.NextIndices()
	getNext := time.Since(t0)
	results := make([]IndexCost, 0, len(batch))
	for _, idx := range batch {
		cfg, err := e.Space.GetByIndex(idx)
		if err != nil {
			return err
		}
		cost, ok, err := e.evaluateOne(cfg, fn, getNext)
		if err != nil {
			return err
		}
		results = append(results, IndexCost{Index: idx, Cost: cost})
		if !ok && e.AbortOnErr {
			e.IndexTechnique.ReportCosts(results)
			return fmt.Errorf("%w: Tune: aborting on invalid configuration", ErrInvalidConfig)
		}
	}
	e.IndexTechnique.ReportCosts(results)
	return nil
}

// GetConfiguration begins (or continues) a stepping session: the host pulls
// one Configuration, evaluates it however it likes, and must call
// ReportCost exactly once before the next GetConfiguration. Calling it twice
// in a row without an intervening ReportCost fails with ErrProtocol, as does
// calling it while a batch Tune is in progress.
func (e *ExplorationEngine) GetConfiguration() (*Configuration, error) {
	if e.mode == modeBatch {
		return nil, fmt.Errorf("%w: GetConfiguration: batch tune already in progress", ErrProtocol)
	}
	if e.mode == modeIdle {
		e.mode = modeStepping
		e.ensureDefaultTechnique()
		e.status = NewTuningStatus(time.Now())
		e.initTechnique()
		if err := e.openLog(); err != nil {
			return nil, err
		}
	}
	if e.awaitingCost {
		return nil, fmt.Errorf("%w: GetConfiguration: ReportCost must be called before the next GetConfiguration", ErrProtocol)
	}

	t0 := time.Now()
	var cfg *Configuration
	var err error
	if e.usesCoordinate() {
		coord := e.CoordTechnique.NextCoordinates()[0]
		e.pendingCoord = coord
		cfg, err = e.Space.GetByCoordinates(coord)
	} else {
		idx := e.IndexTechnique.NextIndices()[0]
		e.pendingIndex = idx
		cfg, err = e.Space.GetByIndex(idx)
	}
	if err != nil {
		return nil, err
	}
	e.lastGetNext = time.Since(t0)
	cfg.Apply()
	e.awaitingCost = true
	return cfg, nil
}

// ReportCost completes the stepping round started by the last
// GetConfiguration. Calling it without a pending GetConfiguration fails with
// ErrProtocol.
func (e *ExplorationEngine) ReportCost(cfg *Configuration, cost float64, ok bool) error {
	if !e.awaitingCost {
		return fmt.Errorf("%w: ReportCost: no pending GetConfiguration", ErrProtocol)
	}
	if !ok || cost < 0 {
		cost = maxCost
		ok = false
	}
	t0 := time.Now()
	now := time.Now()
	e.status.recordEvaluation(now, cfg, cost, ok)
	if err := e.log.appendRow(now, cfg, cost, timing{GetNext: e.lastGetNext, Report: time.Since(t0)}); err != nil {
		return err
	}
	if e.ProgressChan != nil && !e.Silent {
		e.ProgressChan <- EngineProgress{
			Evaluated: e.status.Evaluated, Invalid: e.status.Invalid,
			MinCost: e.status.MinCost(), LastCost: cost, LastConfig: cfg,
		}
	}
	if e.usesCoordinate() {
		e.CoordTechnique.ReportCosts([]CoordinateCost{{Coord: e.pendingCoord, Cost: cost}})
	} else {
		e.IndexTechnique.ReportCosts([]IndexCost{{Index: e.pendingIndex, Cost: cost}})
	}
	e.awaitingCost = false
	return nil
}

// MakeStep combines GetConfiguration, fn, and ReportCost into a single call,
// returning the cost it recorded.
func (e *ExplorationEngine) MakeStep(fn CostFunc) (float64, error) {
	cfg, err := e.GetConfiguration()
	if err != nil {
		return 0, err
	}
	cost, ok := fn(cfg)
	if err := e.ReportCost(cfg, cost, ok); err != nil {
		return 0, err
	}
	return cost, nil
}

// FinishStepping ends a stepping session: finalizes the technique and
// closes the log. The engine returns to modeIdle and may start a fresh Tune
// or stepping session afterward.
func (e *ExplorationEngine) FinishStepping() {
	if e.mode != modeStepping {
		return
	}
	e.finalizeTechnique()
	e.closeLog()
	e.mode = modeIdle
	e.awaitingCost = false
}

// GetTuningStatus exposes the current status, usable mid-stepping.
func (e *ExplorationEngine) GetTuningStatus() *TuningStatus { return e.status }
