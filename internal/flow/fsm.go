// Package flow holds the timed linear state machines behind checkout and
// gateway linking. Delays are scheduled on a Clock so tests can drive every
// transition without waiting on wall-clock time.
package flow

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"nexuscore-backend/internal/logger"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotCancellable    = errors.New("flow can only be cancelled from its initial step")
	ErrMethodNotAccepted = errors.New("payment method not accepted for this checkout")
	ErrUnknownMethod     = errors.New("unknown payment method")
	ErrUnknownGateway    = errors.New("unknown gateway kind")
)

type State string

type Event string

type Transition struct {
	From  State
	Event Event
	To    State
}

// Machine is a table driven FSM with at most one scheduled transition.
// Entering a new state cancels whatever was scheduled in the previous one.
type Machine struct {
	mu      sync.Mutex
	name    string
	id      string
	state   State
	table   map[State]map[Event]State
	clock   Clock
	pending Timer
	hooks   map[State]func()
}

func NewMachine(name, id string, initial State, clock Clock, transitions []Transition) *Machine {
	table := make(map[State]map[Event]State)
	for _, t := range transitions {
		if table[t.From] == nil {
			table[t.From] = make(map[Event]State)
		}
		table[t.From][t.Event] = t.To
	}
	return &Machine{
		name:  name,
		id:    id,
		state: initial,
		table: table,
		clock: clock,
		hooks: make(map[State]func()),
	}
}

// OnEnter registers fn to run after every transition into s. Hooks run
// outside the machine lock and may schedule or fire further events.
func (m *Machine) OnEnter(s State, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[s] = fn
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Can reports whether ev is defined for the current state.
func (m *Machine) Can(ev Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.table[m.state][ev]
	return ok
}

func (m *Machine) Fire(ev Event) error {
	m.mu.Lock()
	from := m.state
	to, ok := m.table[from][ev]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s %s cannot %s from %s", ErrInvalidTransition, m.name, m.id, ev, from)
	}
	m.state = to
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	hook := m.hooks[to]
	m.mu.Unlock()

	logger.FlowTransition(m.name, m.id, string(from), string(to), string(ev))
	if hook != nil {
		hook()
	}
	return nil
}

// After schedules ev to fire once d has elapsed, provided the machine is
// still in its current state by then.
func (m *Machine) After(d time.Duration, ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil {
		m.pending.Stop()
	}
	scheduledIn := m.state
	var t Timer
	t = m.clock.AfterFunc(d, func() {
		m.mu.Lock()
		stale := m.pending != t || m.state != scheduledIn
		if !stale {
			m.pending = nil
		}
		m.mu.Unlock()
		if stale {
			return
		}
		if err := m.Fire(ev); err != nil {
			logger.Warn("Scheduled transition dropped", "flow", m.name, "flow_id", m.id, "error", err)
		}
	})
	m.pending = t
}

// Stop cancels any scheduled transition. The machine stays where it is.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}
