package kernelspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/nbforge/nbkernel/pkg/identity"
)

// DefaultTool is the host registry tool invoked to register a kernelspec
const DefaultTool = "jupyter"

// RegistrationError indicates the host registration tool exited non-zero.
// The tool's own output goes straight to the user; its exit code is all
// this package interprets.
type RegistrationError struct {
	ExitCode int
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("host registration tool exited with status %d", e.ExitCode)
}

// Installer registers a synthesized kernelspec with the notebook host
type Installer struct {
	// Tool is the host registration binary. Empty means DefaultTool.
	Tool string

	// Out receives warnings and the registration tool's output. Empty
	// means stderr.
	Out io.Writer
}

func (i *Installer) tool() string {
	if i.Tool != "" {
		return i.Tool
	}
	return DefaultTool
}

func (i *Installer) out() io.Writer {
	if i.Out != nil {
		return i.Out
	}
	return os.Stderr
}

// Register synthesizes the kernelspec for id, writes it to a transient
// directory, and hands it to the host's registration tool. The transient
// directory is removed on every exit path, including when the tool
// cannot be invoked at all.
func (i *Installer) Register(id identity.KernelIdentity, mode Mode, logLevel string) error {
	spec, err := Synthesize(id, mode, logLevel)
	if err != nil {
		return err
	}

	if mode == ModeDevelop {
		cwd, _ := os.Getwd()
		fmt.Fprintf(i.out(), "WARNING: development install is tied to %s\n", cwd)
		fmt.Fprintf(i.out(), "Removing or incompatibly changing that directory breaks the %q kernel registration.\n", id.KernelName)
	}

	tmpDir, err := os.MkdirTemp("", "kernelspec-")
	if err != nil {
		return fmt.Errorf("failed to create transient kernelspec directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	specDir := filepath.Join(tmpDir, id.KernelName)
	if err := os.MkdirAll(specDir, 0755); err != nil {
		return fmt.Errorf("failed to create kernelspec directory: %w", err)
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize kernelspec: %w", err)
	}
	if err := os.WriteFile(filepath.Join(specDir, "kernel.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write kernel.json: %w", err)
	}

	cmd := exec.Command(i.tool(), "kernelspec", "install", "--user", "--replace",
		"--name", id.KernelName, specDir)
	cmd.Stdout = i.out()
	cmd.Stderr = i.out()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &RegistrationError{ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to invoke %s: %w", i.tool(), err)
	}

	return nil
}
