package listeners

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"

	"github.com/nbforge/nbkernel/pkg/logging"
)

// Executor evaluates code on behalf of the shell listener
type Executor interface {
	Execute(code string) (string, error)
}

// Shell accepts client requests and dispatches them to the execution
// engine. This default implementation treats the final message frame as
// the code to execute and replies on the same envelope with the result;
// kernels that speak the full notebook message format register their own
// shell capability instead.
type Shell struct {
	addr   string
	engine Executor
	logger *logging.Logger
	sock   zmq4.Socket
}

// NewShell creates an unstarted shell listener for addr, dispatching to
// the given engine
func NewShell(addr string, engine Executor, logger *logging.Logger) *Shell {
	return &Shell{
		addr:   addr,
		engine: engine,
		logger: logger.WithField("service", "shell"),
	}
}

// Name returns the service identifier
func (s *Shell) Name() string {
	return "shell"
}

// Start binds the shell socket and launches the dispatch loop
func (s *Shell) Start() error {
	sock := zmq4.NewRouter(context.Background())
	if err := sock.Listen(s.addr); err != nil {
		return fmt.Errorf("shell failed to bind %s: %w", s.addr, err)
	}
	s.sock = sock

	s.logger.Debug("Shell listening", map[string]interface{}{"addr": s.addr})
	go s.serve()
	return nil
}

func (s *Shell) serve() {
	for {
		msg, err := s.sock.Recv()
		if err != nil {
			s.logger.Error("Shell receive failed, loop exiting", map[string]interface{}{"error": err.Error()})
			return
		}
		if err := s.sock.Send(s.dispatch(msg)); err != nil {
			s.logger.Error("Shell reply failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// dispatch runs the request's payload through the engine and builds the
// reply on the request's envelope
func (s *Shell) dispatch(msg zmq4.Msg) zmq4.Msg {
	frames := msg.Frames
	if len(frames) == 0 {
		return msg
	}

	code := string(frames[len(frames)-1])
	s.logger.Debug("Dispatching request to engine", map[string]interface{}{"bytes": len(code)})

	result, err := s.engine.Execute(code)
	if err != nil {
		s.logger.Error("Engine execution failed", map[string]interface{}{"error": err.Error()})
		result = fmt.Sprintf("error: %v", err)
	}

	reply := make([][]byte, 0, len(frames))
	reply = append(reply, frames[:len(frames)-1]...)
	reply = append(reply, []byte(result))
	return zmq4.NewMsgFrom(reply...)
}

// Close releases the shell socket. Only tests call this; in a kernel
// process the socket lives until process exit.
func (s *Shell) Close() error {
	if s.sock == nil {
		return nil
	}
	return s.sock.Close()
}
