package params

import (
	"fmt"
	"strconv"
)

// Group is the display group a parameter belongs to
type Group int

const (
	Driver Group = iota
	Passive
	Enclosure
	Constant
)

var groupNames = [...]string{"driver", "passive", "enclosure", "constant"}

func (g Group) String() string {
	if g < 0 || int(g) >= len(groupNames) {
		return "unknown"
	}
	return groupNames[g]
}

// ParseGroup returns the group with the given display name
func ParseGroup(s string) (Group, bool) {
	for i, name := range groupNames {
		if name == s {
			return Group(i), true
		}
	}
	return 0, false
}

// Groups lists every display group in display order
func Groups() []Group {
	return []Group{Driver, Passive, Enclosure, Constant}
}

// Values is the read-only view of the graph handed to derivation rules
type Values interface {
	V(name string) float64
}

// Rule derives a parameter value from other parameters
type Rule interface {
	Inputs() []string
	Derive(v Values) float64
}

// Parameter is a single named physical quantity
type Parameter struct {
	Name      string
	Unit      string
	Value     float64
	Min       float64
	Max       float64
	Precision int
	Group     Group
	Rule      Rule

	index      int
	inputs     []int
	dependents []int
}

// Derived reports whether the parameter is computed from other parameters
func (p *Parameter) Derived() bool {
	return p.Rule != nil
}

// Percent maps the current value onto [0, 1] relative to Min and Max.
// Values outside the bounds map outside [0, 1].
func (p *Parameter) Percent() float64 {
	return (p.Value - p.Min) / (p.Max - p.Min)
}

// SetPercent stores Min + percent*(Max-Min)
func (p *Parameter) SetPercent(percent float64) {
	p.Value = p.Min + percent*(p.Max-p.Min)
}

// InRange reports whether the value lies within the display bounds
func (p *Parameter) InRange() bool {
	return p.Value >= p.Min && p.Value <= p.Max
}

// FormatValue renders the value with the display precision
func (p *Parameter) FormatValue() string {
	prec := p.Precision
	if prec < 0 {
		prec = 0
	}
	return strconv.FormatFloat(p.Value, 'f', prec, 64)
}

// Format renders the value with its unit
func (p *Parameter) Format() string {
	if p.Unit == "" {
		return p.FormatValue()
	}
	return fmt.Sprintf("%s %s", p.FormatValue(), p.Unit)
}
