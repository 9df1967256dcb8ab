package services

import (
	"errors"
	"fmt"

	"github.com/nbforge/nbkernel/pkg/connection"
	"github.com/nbforge/nbkernel/pkg/identity"
	"github.com/nbforge/nbkernel/pkg/listeners"
	"github.com/nbforge/nbkernel/pkg/logging"
)

// ErrMissingExecutionEngine indicates no execution engine was registered.
// The assembler has no default for this capability; the embedding kernel
// must supply one.
var ErrMissingExecutionEngine = errors.New("no execution engine registered")

// Registration is a collaborator-supplied wiring step. Registrations run
// strictly after the built-in services are registered, so a collaborator
// can override a built-in capability but can never be shadowed by one.
type Registration func(ctx *RuntimeContext, r *Registry) error

// WithEngine registers the kernel's execution engine. The build func
// runs during assembly, after the RuntimeContext is populated, so it may
// read connection parameters at construction time.
func WithEngine(build func(ctx *RuntimeContext) (ExecutionEngine, error)) Registration {
	return func(ctx *RuntimeContext, r *Registry) error {
		engine, err := build(ctx)
		if err != nil {
			return fmt.Errorf("failed to construct execution engine: %w", err)
		}
		r.Register(CapabilityEngine, engine)
		return nil
	}
}

// WithService registers a service under the given capability. Using a
// built-in capability overrides the built-in; any other capability adds
// an extra service started after the built-ins.
func WithService(cap Capability, build func(ctx *RuntimeContext) (Service, error)) Registration {
	return func(ctx *RuntimeContext, r *Registry) error {
		svc, err := build(ctx)
		if err != nil {
			return fmt.Errorf("failed to construct service %q: %w", cap, err)
		}
		r.Register(cap, svc)
		return nil
	}
}

// Graph is the set of constructed-but-not-yet-started service handles.
// The boot sequencer owns it for the duration of its Start call.
type Graph struct {
	Context   *RuntimeContext
	Logger    *logging.Logger
	Engine    ExecutionEngine
	Heartbeat Service
	Shell     Service
	Extras    []Service
}

// Assemble populates the RuntimeContext, registers the built-in
// services (logger, heartbeat listener, shell listener) as singletons,
// applies the collaborator registrations, and wires the resulting graph.
// Nothing is started and no socket is bound here: construction failures
// must surface before any listener exists.
func Assemble(id identity.KernelIdentity, conn connection.Descriptor, level logging.Level, regs ...Registration) (*Graph, error) {
	ctx := newRuntimeContext(id, conn)
	registry := newRegistry()

	logger := logging.NewLogger(level, false).WithField("kernel", id.KernelName)
	registry.Register(CapabilityLogger, logger)
	registry.Register(CapabilityHeartbeat, listeners.NewHeartbeat(conn.Addr(conn.HeartbeatPort), logger))

	for _, reg := range regs {
		if err := reg(ctx, registry); err != nil {
			return nil, err
		}
	}

	raw, ok := registry.Resolve(CapabilityEngine)
	if !ok {
		return nil, ErrMissingExecutionEngine
	}
	engine, ok := raw.(ExecutionEngine)
	if !ok {
		return nil, fmt.Errorf("capability %q does not implement ExecutionEngine", CapabilityEngine)
	}

	// The default shell listener dispatches to the engine, so it is
	// wired only once the engine registration is known. A collaborator
	// registration of the shell capability always takes precedence.
	if _, ok := registry.Resolve(CapabilityShell); !ok {
		registry.Register(CapabilityShell, listeners.NewShell(conn.Addr(conn.ShellPort), engine, logger))
	}

	graph := &Graph{
		Context: ctx,
		Engine:  engine,
		Extras:  registry.extras(),
	}

	if graph.Logger, ok = resolveAs[*logging.Logger](registry, CapabilityLogger); !ok {
		return nil, fmt.Errorf("capability %q does not implement the logging capability", CapabilityLogger)
	}
	if graph.Heartbeat, ok = resolveAs[Service](registry, CapabilityHeartbeat); !ok {
		return nil, fmt.Errorf("capability %q does not implement Service", CapabilityHeartbeat)
	}
	if graph.Shell, ok = resolveAs[Service](registry, CapabilityShell); !ok {
		return nil, fmt.Errorf("capability %q does not implement Service", CapabilityShell)
	}

	return graph, nil
}

func resolveAs[T any](r *Registry, cap Capability) (T, bool) {
	var zero T
	raw, ok := r.Resolve(cap)
	if !ok {
		return zero, false
	}
	typed, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
