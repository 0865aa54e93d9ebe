// Package lifecycle defines the provider status machine.
//
// The default table only moves a provider out of pending. approved and
// rejected have no outbound transition to another status; approve on an
// approved provider and reject on a rejected one are accepted so the admin
// operations stay idempotent on status. A resubmission path can be added with
// NewMachine(extra...).
package lifecycle

import (
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
)

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// None is the status of a provider that does not exist yet.
const None models.ProviderStatus = ""

type Transition struct {
	From   models.ProviderStatus
	To     models.ProviderStatus
	Action Action
}

var defaultTransitions = []Transition{
	{From: None, To: models.StatusPending, Action: ActionSubmit},
	{From: models.StatusPending, To: models.StatusApproved, Action: ActionApprove},
	{From: models.StatusPending, To: models.StatusRejected, Action: ActionReject},
	{From: models.StatusApproved, To: models.StatusApproved, Action: ActionApprove},
	{From: models.StatusRejected, To: models.StatusRejected, Action: ActionReject},
}

type transitionKey struct {
	From   models.ProviderStatus
	Action Action
}

type Machine struct {
	transitions []Transition
	next        map[transitionKey]models.ProviderStatus
}

// Default is the machine used by the provider services.
var Default = NewMachine()

// NewMachine builds the default table plus any extra transitions. An extra
// transition replaces a default one with the same From and Action.
func NewMachine(extra ...Transition) *Machine {
	m := &Machine{next: make(map[transitionKey]models.ProviderStatus)}
	for _, t := range append(append([]Transition{}, defaultTransitions...), extra...) {
		key := transitionKey{t.From, t.Action}
		if _, exists := m.next[key]; !exists {
			m.transitions = append(m.transitions, t)
		} else {
			for i := range m.transitions {
				if m.transitions[i].From == t.From && m.transitions[i].Action == t.Action {
					m.transitions[i] = t
				}
			}
		}
		m.next[key] = t.To
	}
	return m
}

// Next returns the status reached by applying action to from.
func (m *Machine) Next(from models.ProviderStatus, action Action) (models.ProviderStatus, error) {
	if to, ok := m.next[transitionKey{from, action}]; ok {
		return to, nil
	}
	return "", apperrors.BadRequest(fmt.Sprintf(
		"cannot %s a provider in status %s; allowed: %s",
		action, describe(from), m.describeFrom(from),
	))
}

// TransitionsFrom lists the transitions leaving from, in table order.
func (m *Machine) TransitionsFrom(from models.ProviderStatus) []Transition {
	var out []Transition
	for _, t := range m.transitions {
		if t.From == from {
			out = append(out, t)
		}
	}
	return out
}

// IsTerminal reports whether no transition leads from status to a different one.
func (m *Machine) IsTerminal(status models.ProviderStatus) bool {
	for _, t := range m.TransitionsFrom(status) {
		if t.To != status {
			return false
		}
	}
	return true
}

func (m *Machine) describeFrom(from models.ProviderStatus) string {
	ts := m.TransitionsFrom(from)
	if len(ts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, string(t.Action))
	}
	return strings.Join(parts, ", ")
}

func describe(s models.ProviderStatus) string {
	if s == None {
		return "none"
	}
	return string(s)
}
