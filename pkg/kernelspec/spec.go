// Package kernelspec builds the registry entry a notebook host needs to
// spawn this kernel, and delegates registration to the host's own
// kernelspec tool.
package kernelspec

import (
	"fmt"
	"os"

	"github.com/nbforge/nbkernel/pkg/identity"
)

// Mode selects how the generated launch command reaches the kernel code
type Mode string

const (
	// ModeDevelop re-invokes `go run` against the directory install was
	// run from, so source edits take effect on the next launch.
	ModeDevelop Mode = "develop"

	// ModeInstalled launches the already-built kernel binary by name
	ModeInstalled Mode = "installed"
)

// ConnectionFilePlaceholder is the token the host substitutes with the
// connection-file path at spawn time. The synthesizer never resolves it.
const ConnectionFilePlaceholder = "{connection_file}"

// Spec is the registry entry handed to the host, serialized as the
// host's kernel.json schema.
type Spec struct {
	Argv        []string `json:"argv"`
	DisplayName string   `json:"display_name"`
	Language    string   `json:"language"`
}

// Synthesize builds the registry entry for the given identity and mode.
//
// Verbosity policy: an explicit logLevel always wins; otherwise develop
// mode defaults to "info" and installed mode to "error". Development
// installs want visible diagnostics, production ones do not.
func Synthesize(id identity.KernelIdentity, mode Mode, logLevel string) (Spec, error) {
	if err := id.Validate(); err != nil {
		return Spec{}, err
	}

	if logLevel == "" {
		switch mode {
		case ModeDevelop:
			logLevel = "info"
		default:
			logLevel = "error"
		}
	}

	var argv []string
	switch mode {
	case ModeDevelop:
		cwd, err := os.Getwd()
		if err != nil {
			return Spec{}, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		argv = []string{"go", "run", cwd, "kernel", "--log-level", logLevel, ConnectionFilePlaceholder}
	case ModeInstalled:
		argv = []string{id.KernelName, "kernel", "--log-level", logLevel, ConnectionFilePlaceholder}
	default:
		return Spec{}, fmt.Errorf("unknown install mode %q", mode)
	}

	return Spec{
		Argv:        argv,
		DisplayName: id.DisplayName,
		Language:    id.LanguageName,
	}, nil
}
