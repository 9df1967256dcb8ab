// Package boot starts an assembled service graph in the order that
// makes the startup race-free: the execution engine before any
// listener, the heartbeat listener before the shell listener.
package boot

import (
	"fmt"

	"github.com/nbforge/nbkernel/pkg/services"
)

// State represents the sequencer's startup state
type State string

const (
	StateConstructed       State = "constructed"
	StateEngineStarting    State = "engine_starting"
	StateEngineReady       State = "engine_ready"
	StateListenersStarting State = "listeners_starting"
	StateRunning           State = "running"
	StateFaulted           State = "faulted"
)

// StartupError indicates a service failed to start. Services started
// before the failure are left running; the process is expected to exit,
// and process teardown is the cleanup.
type StartupError struct {
	Service string
	Err     error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("service %q failed to start: %v", e.Service, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// Sequencer drives the startup state machine. It runs single-threaded
// and synchronously; each service it starts establishes its own
// concurrency and returns once ready. Running is terminal: after Start
// returns nil the sequencer has no further role.
type Sequencer struct {
	state State
}

// NewSequencer creates a sequencer in the constructed state
func NewSequencer() *Sequencer {
	return &Sequencer{state: StateConstructed}
}

// State returns the sequencer's current state
func (s *Sequencer) State() State {
	return s.state
}

// Start brings up the graph's services in dependency order and returns
// once every service reports ready.
//
// The engine starts first and unconditionally: the shell listener
// dispatches requests the moment it is up, and a request arriving before
// the engine can execute would otherwise need queueing or rejection.
// The heartbeat starts before the shell so a client probing liveness
// during startup sees the kernel as alive rather than dead.
func (s *Sequencer) Start(graph *services.Graph) error {
	logger := graph.Logger

	s.state = StateEngineStarting
	logger.Info("Starting execution engine", map[string]interface{}{"engine": graph.Engine.Name()})
	if err := graph.Engine.Start(); err != nil {
		return s.fault(graph.Engine.Name(), err)
	}
	s.state = StateEngineReady

	s.state = StateListenersStarting
	for _, svc := range s.listenerOrder(graph) {
		logger.Info("Starting listener", map[string]interface{}{"service": svc.Name()})
		if err := svc.Start(); err != nil {
			return s.fault(svc.Name(), err)
		}
	}

	s.state = StateRunning
	logger.Info("Kernel running", map[string]interface{}{
		"kernel":   graph.Context.Identity().KernelName,
		"language": graph.Context.Identity().LanguageName,
	})
	return nil
}

// listenerOrder fixes heartbeat before shell, with collaborator extras
// after both, in registration order.
func (s *Sequencer) listenerOrder(graph *services.Graph) []services.Service {
	order := []services.Service{graph.Heartbeat, graph.Shell}
	return append(order, graph.Extras...)
}

func (s *Sequencer) fault(service string, err error) error {
	s.state = StateFaulted
	return &StartupError{Service: service, Err: err}
}
