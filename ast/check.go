package ast

import "fmt"

// Check inspects a rewritten program and reports what is wrong with it.
// Checks never edit the tree.
type Check interface {
	Name() string
	Check(prog *Program) error
}

// CheckFunc is a Check backed by a function.
type CheckFunc struct {
	N string
	F func(*Program) error
}

func (c CheckFunc) Name() string              { return c.N }
func (c CheckFunc) Check(prog *Program) error { return c.F(prog) }

// CheckChain runs checks in order. The first failure wins and is
// prefixed with the name of the check that produced it.
type CheckChain []Check

func (cc CheckChain) Run(prog *Program) error {
	for _, c := range cc {
		if err := c.Check(prog); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
	}
	return nil
}
