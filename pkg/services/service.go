// Package services assembles a kernel's runtime services from the
// connection descriptor and the kernel identity. Assembly only
// constructs; nothing is started until the boot sequencer runs.
package services

// Service is a runnable kernel service. Start must return only once the
// service is ready to accept input; the service then runs on its own
// goroutines until process termination.
type Service interface {
	Name() string
	Start() error
}

// ExecutionEngine evaluates code on behalf of the shell listener. The
// orchestrator itself only ever calls Start.
type ExecutionEngine interface {
	Service
	Execute(code string) (string, error)
}

// Capability identifies a slot in the service registry
type Capability string

const (
	CapabilityLogger    Capability = "logger"
	CapabilityEngine    Capability = "engine"
	CapabilityHeartbeat Capability = "heartbeat"
	CapabilityShell     Capability = "shell"
)
