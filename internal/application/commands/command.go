package commands

import (
	"errors"
	"fmt"

	"bookmarked/internal/application"
	"bookmarked/internal/domain"
)

// Command is a reversible edit of a document expressed purely in terms of addresses.
// Execute and Unexecute either succeed completely or leave the document untouched;
// a failure means the command was kept past an edit that invalidated its addresses.
type Command interface {
	// Name is a short human-readable label, e.g. for an undo menu
	Name() string
	Execute() error
	Unexecute() error
	// AffectedAncestor returns the nearest folder whose subtree the command changes
	AffectedAncestor() domain.Address
}

// placement is the one reversible primitive under both create and delete.
// insert puts node at at; remove takes the node at at back out and keeps it.
// Running one after the other restores the document exactly.
type placement struct {
	at   domain.Address
	node *domain.Node
}

func (p *placement) insert(ed *Editor) error {
	if p.at.IsRoot() {
		return &domain.AddressError{Op: "insert", Address: p.at, Err: domain.ErrStructuralViolation}
	}
	if p.node == nil {
		return fmt.Errorf("insert at %s: %w: nothing to insert", p.at, application.ErrInvalidOperation)
	}
	if err := ed.Insert(p.at.Parent(), p.at.Position(), p.node); err != nil {
		return err
	}

	got, err := ed.Document().AddressOf(p.node)
	if err != nil {
		return err
	}
	if !got.Equal(p.at) {
		return fmt.Errorf("%w: inserted at %s, expected %s", domain.ErrStructuralViolation, got, p.at)
	}
	return nil
}

func (p *placement) remove(ed *Editor) error {
	n, err := ed.Remove(p.at)
	if err != nil {
		return err
	}
	p.node = n
	return nil
}

// Macro runs an ordered list of commands as one.
// Execute runs them in order and Unexecute in reverse order. If a sub-command
// fails, the ones already applied are rolled back before the error is returned.
type Macro struct {
	name string
	cmds []Command
}

// NewMacro creates a macro from sub-commands
func NewMacro(name string, cmds ...Command) *Macro {
	return &Macro{name: name, cmds: cmds}
}

// Add appends a sub-command
func (m *Macro) Add(c Command) {
	m.cmds = append(m.cmds, c)
}

// Len returns the number of sub-commands
func (m *Macro) Len() int {
	return len(m.cmds)
}

// Commands returns the sub-commands in execution order
func (m *Macro) Commands() []Command {
	return m.cmds
}

func (m *Macro) Name() string {
	return m.name
}

func (m *Macro) Execute() error {
	for i, c := range m.cmds {
		if err := c.Execute(); err != nil {
			rollback := err
			for j := i - 1; j >= 0; j-- {
				if uerr := m.cmds[j].Unexecute(); uerr != nil {
					rollback = errors.Join(rollback, uerr)
				}
			}
			return rollback
		}
	}
	return nil
}

func (m *Macro) Unexecute() error {
	for i := len(m.cmds) - 1; i >= 0; i-- {
		if err := m.cmds[i].Unexecute(); err != nil {
			rollback := err
			for j := i + 1; j < len(m.cmds); j++ {
				if rerr := m.cmds[j].Execute(); rerr != nil {
					rollback = errors.Join(rollback, rerr)
				}
			}
			return rollback
		}
	}
	return nil
}

// AffectedAncestor is the common ancestor of what every sub-command touches
func (m *Macro) AffectedAncestor() domain.Address {
	if len(m.cmds) == 0 {
		return domain.RootAddress()
	}
	a := m.cmds[0].AffectedAncestor()
	for _, c := range m.cmds[1:] {
		a = domain.CommonAncestor(a, c.AffectedAncestor())
	}
	return a
}
