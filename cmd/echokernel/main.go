// echokernel is a minimal embedding kernel: it registers an execution
// engine that echoes submitted code back to the client. It exists to
// exercise the full install/launch path end to end.
package main

import (
	"os"

	"github.com/nbforge/nbkernel/pkg/cli"
	"github.com/nbforge/nbkernel/pkg/identity"
	"github.com/nbforge/nbkernel/pkg/services"
)

type echoEngine struct{}

func (echoEngine) Name() string { return "echo-engine" }

func (echoEngine) Start() error {
	// Nothing to warm up; the engine is ready as soon as it exists.
	return nil
}

func (echoEngine) Execute(code string) (string, error) {
	return code, nil
}

func main() {
	id := identity.KernelIdentity{
		KernelName:    "echokernel",
		DisplayName:   "Echo Kernel",
		FriendlyName:  "echo",
		LanguageName:  "echo",
		KernelVersion: "0.1.0",
		Description:   "A kernel that echoes every request, for exercising the bootstrap path.",
	}

	app := cli.New(id, services.WithEngine(
		func(ctx *services.RuntimeContext) (services.ExecutionEngine, error) {
			return echoEngine{}, nil
		},
	))

	os.Exit(app.Execute())
}
