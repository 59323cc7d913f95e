package detector

import (
	"errors"
	"fmt"

	"slope-monitor/internal/model"
)

type PolicyKind string

const (
	PolicyDirect PolicyKind = "direct"
	PolicyChain  PolicyKind = "chain"
)

var (
	ErrUnknownPolicy = errors.New("unknown calibration policy")
)

// Policy selects the calibration table a sensor should move to, given the
// table it is on, the severity just computed and the severity it reported.
type Policy interface {
	Kind() PolicyKind
	Target(current int, computed, reported model.Severity) (int, bool)
}

// DirectMapping maps each severity to a fixed table id.
type DirectMapping struct {
	Tables map[model.Severity]int
}

func DefaultDirectMapping() DirectMapping {
	return DirectMapping{Tables: map[model.Severity]int{
		model.SeverityAlert:   1,
		model.SeverityCaution: 2,
		model.SeverityNormal:  8,
	}}
}

func (p DirectMapping) Kind() PolicyKind { return PolicyDirect }

func (p DirectMapping) Target(_ int, computed, _ model.Severity) (int, bool) {
	table, ok := p.Tables[computed]
	return table, ok
}

// ChainStep walks one step along an ordered table chain: forward when the
// computed severity is above the reported one, backward when it is below.
type ChainStep struct {
	Chain []int
}

func DefaultChainStep() ChainStep {
	return ChainStep{Chain: []int{0, 4, 5, 8, 9}}
}

func (p ChainStep) Kind() PolicyKind { return PolicyChain }

func (p ChainStep) Target(current int, computed, reported model.Severity) (int, bool) {
	pos := -1
	for i, table := range p.Chain {
		if table == current {
			pos = i
			break
		}
	}
	if pos < 0 {
		return 0, false
	}
	switch {
	case computed > reported && pos+1 < len(p.Chain):
		return p.Chain[pos+1], true
	case computed < reported && pos > 0:
		return p.Chain[pos-1], true
	default:
		return 0, false
	}
}

func NewPolicy(kind PolicyKind, tables map[model.Severity]int, chain []int) (Policy, error) {
	switch kind {
	case PolicyDirect, "":
		p := DefaultDirectMapping()
		if len(tables) > 0 {
			p.Tables = tables
		}
		return p, nil
	case PolicyChain:
		p := DefaultChainStep()
		if len(chain) > 0 {
			p.Chain = chain
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, kind)
	}
}
