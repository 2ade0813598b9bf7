package atf

import "fmt"

// TpValue pairs a bound Value with a back-pointer to the declaring
// TuningParameter, so that a Configuration can both be read by name and
// have its bindings pushed back into live parameter storage.
type TpValue struct {
	Value Value
	Param *TuningParameter
}

// Configuration is an ordered mapping from parameter name to TpValue,
// preserving declaration order across groups. It is the payload handed to
// the cost callable.
type Configuration struct {
	order  []string
	values map[string]TpValue
}

func newConfiguration(capacity int) *Configuration {
	return &Configuration{order: make([]string, 0, capacity), values: make(map[string]TpValue, capacity)}
}

func (c *Configuration) add(p *TuningParameter, v Value) {
	if _, exists := c.values[p.Name]; !exists {
		c.order = append(c.order, p.Name)
	}
	c.values[p.Name] = TpValue{Value: v, Param: p}
}

// Names returns parameter names in declaration order.
func (c *Configuration) Names() []string { return c.order }

// Get returns the bound value for name, if present.
func (c *Configuration) Get(name string) (TpValue, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Len reports the number of bound parameters.
func (c *Configuration) Len() int { return len(c.order) }

// Apply writes every binding back into its parameter's live storage. The
// search-space lookups already do this as they walk each tree, so Apply is
// only needed when a Configuration was constructed or copied independently
// of a fresh lookup (e.g. replaying a configuration from TuningStatus
// history).
func (c *Configuration) Apply() {
	for _, name := range c.order {
		tv := c.values[name]
		tv.Param.setCurrent(tv.Value)
	}
}

// Values returns the bound values in declaration order.
func (c *Configuration) Values() []Value {
	out := make([]Value, len(c.order))
	for i, name := range c.order {
		out[i] = c.values[name].Value
	}
	return out
}

// SearchSpace is the product, across an ordered list of Groups, of each
// group's constrained Tree. Configurations are addressed either by a single
// BigInt index in [0, Size()) or by a coordinate vector in (0,1]^D, where D
// is the total number of parameters across all groups.
type SearchSpace struct {
	trees  []*Tree
	params []*TuningParameter // all parameters, group order then declaration order
}

// NewSearchSpace builds one Tree per group (sequentially; see BuildSearchSpaceParallel
// for the optional per-group parallel variant) and assembles the overall space.
func NewSearchSpace(groups ...Group) (*SearchSpace, error) {
	ss := &SearchSpace{}
	for _, g := range groups {
		tree, err := BuildTree([]*TuningParameter(g))
		if err != nil {
			return nil, err
		}
		ss.trees = append(ss.trees, tree)
		ss.params = append(ss.params, g...)
	}
	if len(ss.trees) == 0 {
		return nil, fmt.Errorf("%w: NewSearchSpace: at least one group required", ErrInternal)
	}
	return ss, nil
}

// BuildSearchSpaceParallel builds each group's Tree concurrently. It is
// correct only because groups do not share parameters (each TuningParameter
// is declared exactly once, so predicate closures reading a different
// group's parameter cannot race) and because, within a group, BuildTree is
// itself strictly sequential. Use this when group construction is the
// dominant cost, e.g. many independent groups with expensive ranges.
func BuildSearchSpaceParallel(groups ...Group) (*SearchSpace, error) {
	ss := &SearchSpace{}
	trees := make([]*Tree, len(groups))
	errs := make([]error, len(groups))
	done := make(chan int, len(groups))
	for i, g := range groups {
		go func(i int, g Group) {
			trees[i], errs[i] = BuildTree([]*TuningParameter(g))
			done <- i
		}(i, g)
	}
	for range groups {
		<-done
	}
	for i, err := range errs {
		if err != nil {
			return nil, err
		}
		ss.trees = append(ss.trees, trees[i])
		ss.params = append(ss.params, groups[i]...)
	}
	if len(ss.trees) == 0 {
		return nil, fmt.Errorf("%w: BuildSearchSpaceParallel: at least one group required", ErrInternal)
	}
	return ss, nil
}

// Size returns |S|, the product of every group's tree size.
func (ss *SearchSpace) Size() BigInt {
	size := BigIntOne()
	for _, t := range ss.trees {
		size = size.Mul(t.Size())
	}
	return size
}

// Dimensions returns D, the total number of declared parameters across all
// groups -- the dimensionality a coordinate technique is initialized with.
func (ss *SearchSpace) Dimensions() int { return len(ss.params) }

// Parameters returns every declared parameter, group order then declaration
// order -- the same order a Configuration exposes.
func (ss *SearchSpace) Parameters() []*TuningParameter { return ss.params }

// MaxChilds reports the largest fan-out at the given layer of the given
// group's tree.
func (ss *SearchSpace) MaxChilds(group, layer int) (int, error) {
	if group < 0 || group >= len(ss.trees) {
		return 0, fmt.Errorf("%w: MaxChilds: group %d out of [0,%d)", ErrOutOfRange, group, len(ss.trees))
	}
	return ss.trees[group].MaxChilds(layer)
}

func (ss *SearchSpace) buildConfiguration(bindingsPerTree [][]Value) *Configuration {
	cfg := newConfiguration(len(ss.params))
	for ti, bindings := range bindingsPerTree {
		params := ss.trees[ti].params
		for j, v := range bindings {
			cfg.add(params[j], v)
		}
	}
	return cfg
}

// GetByIndex decomposes i into one per-tree leaf index (high-order tree
// first: i = sum_k iK * prod_{j>k} |T_j|) and returns the resulting
// Configuration. Precondition: i < Size(); violating it fails with
// ErrOutOfRange.
func (ss *SearchSpace) GetByIndex(i BigInt) (*Configuration, error) {
	if i.Lt(BigIntZero()) || i.Gte(ss.Size()) {
		return nil, fmt.Errorf("%w: GetByIndex: index %s out of [0,%s)", ErrOutOfRange, i, ss.Size())
	}
	suffix := make([]BigInt, len(ss.trees))
	suffix[len(ss.trees)-1] = BigIntOne()
	for k := len(ss.trees) - 2; k >= 0; k-- {
		suffix[k] = suffix[k+1].Mul(ss.trees[k+1].Size())
	}
	bindings := make([][]Value, len(ss.trees))
	remaining := i
	for k := 0; k < len(ss.trees); k++ {
		q, err := remaining.Div(suffix[k])
		if err != nil {
			return nil, err
		}
		iK, err := q.Mod(ss.trees[k].Size())
		if err != nil {
			return nil, err
		}
		leafIdx, err := iK.ToInt64()
		if err != nil {
			return nil, err
		}
		b, err := ss.trees[k].ByIndex(leafIdx)
		if err != nil {
			return nil, err
		}
		bindings[k] = b
	}
	return ss.buildConfiguration(bindings), nil
}

// GetByCoordinates maps a D-vector in (0,1]^D to a Configuration by
// partitioning c across groups (in declaration order) and descending each
// group's tree per-layer. Every coordinate must lie in (0,1]; otherwise
// fails with ErrOutOfRange.
func (ss *SearchSpace) GetByCoordinates(c []float64) (*Configuration, error) {
	if len(c) != len(ss.params) {
		return nil, fmt.Errorf("%w: GetByCoordinates: expected %d coordinates, got %d", ErrInternal, len(ss.params), len(c))
	}
	bindings := make([][]Value, len(ss.trees))
	offset := 0
	for ti, t := range ss.trees {
		n := t.NumParams()
		b, err := t.ByCoordinates(c[offset : offset+n])
		if err != nil {
			return nil, err
		}
		bindings[ti] = b
		offset += n
	}
	return ss.buildConfiguration(bindings), nil
}

// GetByChildIndices maps one child index per parameter (flattened across
// groups in declaration order) to a Configuration.
func (ss *SearchSpace) GetByChildIndices(idx []int) (*Configuration, error) {
	if len(idx) != len(ss.params) {
		return nil, fmt.Errorf("%w: GetByChildIndices: expected %d indices, got %d", ErrInternal, len(ss.params), len(idx))
	}
	bindings := make([][]Value, len(ss.trees))
	offset := 0
	for ti, t := range ss.trees {
		n := t.NumParams()
		b, err := t.ByChildIndices(idx[offset : offset+n])
		if err != nil {
			return nil, err
		}
		bindings[ti] = b
		offset += n
	}
	return ss.buildConfiguration(bindings), nil
}

// CoordinateOf returns a coordinate vector that selects the same
// Configuration GetByIndex(i) would, using each node's 1-based child index
// over its parent's fan-out. Used to test the index/coordinate addressing
// agreement invariant.
func (ss *SearchSpace) CoordinateOf(i BigInt) ([]float64, error) {
	if i.Lt(BigIntZero()) || i.Gte(ss.Size()) {
		return nil, fmt.Errorf("%w: CoordinateOf: index %s out of [0,%s)", ErrOutOfRange, i, ss.Size())
	}
	suffix := make([]BigInt, len(ss.trees))
	suffix[len(ss.trees)-1] = BigIntOne()
	for k := len(ss.trees) - 2; k >= 0; k-- {
		suffix[k] = suffix[k+1].Mul(ss.trees[k+1].Size())
	}
	coords := make([]float64, 0, len(ss.params))
	remaining := i
	for k := 0; k < len(ss.trees); k++ {
		q, err := remaining.Div(suffix[k])
		if err != nil {
			return nil, err
		}
		iK, err := q.Mod(ss.trees[k].Size())
		if err != nil {
			return nil, err
		}
		leafIdx, err := iK.ToInt64()
		if err != nil {
			return nil, err
		}
		c, err := ss.trees[k].coordinateOfLeaf(leafIdx)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c...)
	}
	return coords, nil
}
