package params

import (
	"fmt"
	"math"
	"sort"
)

// Graph owns every parameter of a model and the dependency edges between them.
//
// Parameters live in an arena addressed by index; edges are index lists
// stored on each entry. The graph is not safe for concurrent use: callers
// that share it must hold one lock around every edit and recompute pair.
type Graph struct {
	params []*Parameter
	byName map[string]int
	order  []int // derived parameters in topological order
}

// Builder collects parameters before the dependency graph is resolved
type Builder struct {
	params []*Parameter
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add registers a parameter. Edges are resolved by Build.
func (b *Builder) Add(p Parameter) *Builder {
	param := p
	param.inputs = nil
	param.dependents = nil
	b.params = append(b.params, &param)
	return b
}

// Build resolves rule inputs to arena indices, records reverse edges and
// orders the derived parameters so that every input precedes its dependents.
// Each call copies the registered parameters, so graphs built from one
// builder share no state.
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{
		params: make([]*Parameter, len(b.params)),
		byName: make(map[string]int, len(b.params)),
	}

	for i, src := range b.params {
		if _, exists := g.byName[src.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateParameter, src.Name)
		}
		p := *src
		p.index = i
		p.inputs = nil
		p.dependents = nil
		g.params[i] = &p
		g.byName[p.Name] = i
	}

	for _, p := range g.params {
		if p.Rule == nil {
			continue
		}
		for _, name := range p.Rule.Inputs() {
			j, ok := g.byName[name]
			if !ok {
				return nil, fmt.Errorf("input of %q: %w", p.Name, &UnknownError{Name: name})
			}
			p.inputs = append(p.inputs, j)
			g.params[j].dependents = append(g.params[j].dependents, p.index)
		}
	}

	order, err := g.topoOrder()
	if err != nil {
		return nil, err
	}
	g.order = order

	return g, nil
}

// topoOrder runs Kahn's algorithm over the derived parameters. Ties are
// broken by declaration order so the pass is deterministic.
func (g *Graph) topoOrder() ([]int, error) {
	pending := make([]int, len(g.params))
	for i, p := range g.params {
		pending[i] = len(p.inputs)
	}

	var ready []int
	for i := range g.params {
		if pending[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, len(g.params))
	visited := 0
	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		visited++
		if g.params[i].Rule != nil {
			order = append(order, i)
		}
		for _, d := range g.params[i].dependents {
			pending[d]--
			if pending[d] == 0 {
				ready = append(ready, d)
			}
		}
		sort.Ints(ready)
	}

	if visited != len(g.params) {
		var names []string
		for i, n := range pending {
			if n > 0 {
				names = append(names, g.params[i].Name)
			}
		}
		return nil, &CycleError{Names: names}
	}

	return order, nil
}

// Len returns the number of parameters
func (g *Graph) Len() int {
	return len(g.params)
}

// Lookup returns the parameter registered under name
func (g *Graph) Lookup(name string) (*Parameter, bool) {
	i, ok := g.byName[name]
	if !ok {
		return nil, false
	}
	return g.params[i], true
}

func (g *Graph) get(name string) (*Parameter, error) {
	p, ok := g.Lookup(name)
	if !ok {
		return nil, &UnknownError{Name: name}
	}
	return p, nil
}

// V returns the value of name, or NaN when it is not registered.
// It satisfies Values for derivation rules.
func (g *Graph) V(name string) float64 {
	if i, ok := g.byName[name]; ok {
		return g.params[i].Value
	}
	return math.NaN()
}

// Value returns the current value of name
func (g *Graph) Value(name string) (float64, error) {
	p, err := g.get(name)
	if err != nil {
		return 0, err
	}
	return p.Value, nil
}

// SetValue overwrites the stored value. Bounds are advisory and not enforced.
func (g *Graph) SetValue(name string, value float64) error {
	p, err := g.get(name)
	if err != nil {
		return err
	}
	p.Value = value
	return nil
}

// Percent returns the value of name mapped onto [0, 1]
func (g *Graph) Percent(name string) (float64, error) {
	p, err := g.get(name)
	if err != nil {
		return 0, err
	}
	return p.Percent(), nil
}

// SetPercent maps percent linearly onto the bounds of name and stores it
func (g *Graph) SetPercent(name string, percent float64) error {
	p, err := g.get(name)
	if err != nil {
		return err
	}
	p.SetPercent(percent)
	return nil
}

// SetPrecision changes the display precision only
func (g *Graph) SetPrecision(name string, precision int) error {
	p, err := g.get(name)
	if err != nil {
		return err
	}
	p.Precision = precision
	return nil
}

// RecomputeAll evaluates every derivation once, in dependency order
func (g *Graph) RecomputeAll() {
	for _, i := range g.order {
		p := g.params[i]
		p.Value = p.Rule.Derive(g)
	}
}

// Inputs returns the names name is derived from
func (g *Graph) Inputs(name string) ([]string, error) {
	p, err := g.get(name)
	if err != nil {
		return nil, err
	}
	return g.names(p.inputs), nil
}

// Dependents returns every parameter that must be recomputed when name
// changes, in recompute order.
func (g *Graph) Dependents(name string) ([]string, error) {
	p, err := g.get(name)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	stack := append([]int(nil), p.dependents...)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[i] {
			continue
		}
		seen[i] = true
		stack = append(stack, g.params[i].dependents...)
	}

	var out []string
	for _, i := range g.order {
		if seen[i] {
			out = append(out, g.params[i].Name)
		}
	}
	return out, nil
}

// Order returns the derived parameter names in recompute order
func (g *Graph) Order() []string {
	return g.names(g.order)
}

// All returns every parameter in declaration order
func (g *Graph) All() []*Parameter {
	out := make([]*Parameter, len(g.params))
	copy(out, g.params)
	return out
}

// Group returns the parameters of one display group in declaration order
func (g *Graph) Group(group Group) []*Parameter {
	var out []*Parameter
	for _, p := range g.params {
		if p.Group == group {
			out = append(out, p)
		}
	}
	return out
}

// Clone copies values and precisions. Topology and rules are shared.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		params: make([]*Parameter, len(g.params)),
		byName: g.byName,
		order:  g.order,
	}
	for i, p := range g.params {
		cp := *p
		c.params[i] = &cp
	}
	return c
}

// CopyValuesFrom overwrites values and precisions with those of src.
// Both graphs must come from the same Builder topology.
func (g *Graph) CopyValuesFrom(src *Graph) {
	for i, p := range src.params {
		if i >= len(g.params) {
			return
		}
		g.params[i].Value = p.Value
		g.params[i].Precision = p.Precision
	}
}

func (g *Graph) names(idx []int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = g.params[i].Name
	}
	return out
}
