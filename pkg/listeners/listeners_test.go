package listeners

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/go-zeromq/zmq4"

	"github.com/nbforge/nbkernel/pkg/logging"
)

func testLogger() *logging.Logger {
	logger := logging.NewLogger(logging.FATAL, false)
	return logger
}

// freeAddr reserves an ephemeral loopback port and returns it as a
// ZeroMQ endpoint.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return fmt.Sprintf("tcp://127.0.0.1:%d", port)
}

func TestHeartbeatEchoes(t *testing.T) {
	addr := freeAddr(t)

	hb := NewHeartbeat(addr, testLogger())
	if err := hb.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer hb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := zmq4.NewReq(ctx)
	defer client.Close()
	if err := client.Dial(addr); err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	probe := []byte("ping")
	if err := client.Send(zmq4.NewMsg(probe)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	reply, err := client.Recv()
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	if string(reply.Bytes()) != "ping" {
		t.Errorf("heartbeat reply = %q, want %q", reply.Bytes(), probe)
	}
}

func TestHeartbeatBindFailure(t *testing.T) {
	hb := NewHeartbeat("bogus://nowhere", testLogger())
	if err := hb.Start(); err == nil {
		t.Error("Start() = nil, want bind error")
	}
}

type upperEngine struct{}

func (upperEngine) Execute(code string) (string, error) {
	return strings.ToUpper(code), nil
}

type failingEngine struct{}

func (failingEngine) Execute(code string) (string, error) {
	return "", fmt.Errorf("engine exploded")
}

func TestShellDispatchesToEngine(t *testing.T) {
	addr := freeAddr(t)

	shell := NewShell(addr, upperEngine{}, testLogger())
	if err := shell.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer shell.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := zmq4.NewDealer(ctx)
	defer client.Close()
	if err := client.Dial(addr); err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	if err := client.Send(zmq4.NewMsg([]byte("hello"))); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	reply, err := client.Recv()
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	got := string(reply.Frames[len(reply.Frames)-1])
	if got != "HELLO" {
		t.Errorf("shell reply = %q, want HELLO", got)
	}
}

func TestShellReportsEngineError(t *testing.T) {
	addr := freeAddr(t)

	shell := NewShell(addr, failingEngine{}, testLogger())
	if err := shell.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer shell.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := zmq4.NewDealer(ctx)
	defer client.Close()
	if err := client.Dial(addr); err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	if err := client.Send(zmq4.NewMsg([]byte("boom"))); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	reply, err := client.Recv()
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	got := string(reply.Frames[len(reply.Frames)-1])
	if !strings.Contains(got, "engine exploded") {
		t.Errorf("shell reply = %q, want engine error text", got)
	}
}

func TestShellBindFailure(t *testing.T) {
	shell := NewShell("bogus://nowhere", upperEngine{}, testLogger())
	if err := shell.Start(); err == nil {
		t.Error("Start() = nil, want bind error")
	}
}
