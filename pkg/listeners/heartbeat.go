// Package listeners provides the built-in protocol listeners a kernel
// gets when the embedding kernel does not supply its own: a heartbeat
// echo loop and a minimal shell dispatcher, both speaking ZeroMQ.
package listeners

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"

	"github.com/nbforge/nbkernel/pkg/logging"
)

// Heartbeat answers liveness probes by echoing every message it
// receives, verbatim. Start returns once the socket is bound; the echo
// loop then runs on its own goroutine until process termination.
type Heartbeat struct {
	addr   string
	logger *logging.Logger
	sock   zmq4.Socket
}

// NewHeartbeat creates an unstarted heartbeat listener for addr
func NewHeartbeat(addr string, logger *logging.Logger) *Heartbeat {
	return &Heartbeat{
		addr:   addr,
		logger: logger.WithField("service", "heartbeat"),
	}
}

// Name returns the service identifier
func (h *Heartbeat) Name() string {
	return "heartbeat"
}

// Start binds the heartbeat socket and launches the echo loop
func (h *Heartbeat) Start() error {
	sock := zmq4.NewRep(context.Background())
	if err := sock.Listen(h.addr); err != nil {
		return fmt.Errorf("heartbeat failed to bind %s: %w", h.addr, err)
	}
	h.sock = sock

	h.logger.Debug("Heartbeat listening", map[string]interface{}{"addr": h.addr})
	go h.echo()
	return nil
}

func (h *Heartbeat) echo() {
	for {
		msg, err := h.sock.Recv()
		if err != nil {
			h.logger.Error("Heartbeat receive failed, loop exiting", map[string]interface{}{"error": err.Error()})
			return
		}
		if err := h.sock.Send(msg); err != nil {
			h.logger.Error("Heartbeat echo failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// Close releases the heartbeat socket. Only tests call this; in a
// kernel process the socket lives until process exit.
func (h *Heartbeat) Close() error {
	if h.sock == nil {
		return nil
	}
	return h.sock.Close()
}
