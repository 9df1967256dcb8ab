// Package shutdown blocks a running kernel until the host terminates it.
// The orchestrator performs no teardown of its own: listeners hold no
// client-facing state outside the process, so process exit is the
// cleanup.
package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

// Manager waits for the host's termination signal
type Manager struct {
	signals chan os.Signal
}

// New creates a manager subscribed to SIGINT and SIGTERM
func New() *Manager {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	return &Manager{signals: ch}
}

// Wait blocks until a termination signal arrives and returns it
func (m *Manager) Wait() os.Signal {
	return <-m.signals
}
