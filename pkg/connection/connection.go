// Package connection parses the connection file the notebook host hands
// to a kernel at spawn time. The file's schema is owned by the host; this
// package only validates that everything the kernel needs is present.
package connection

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMalformedFile indicates the connection file could not be parsed
var ErrMalformedFile = errors.New("malformed connection file")

// MissingFieldError indicates a required connection field is absent
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("connection file is missing required field %q", e.Field)
}

// Descriptor describes how to reach the client: transport, bind address,
// one port per protocol channel, and the message-signing parameters.
// Immutable after Load.
type Descriptor struct {
	Transport       string `json:"transport"`
	IP              string `json:"ip"`
	HeartbeatPort   int    `json:"hb_port"`
	ShellPort       int    `json:"shell_port"`
	ControlPort     int    `json:"control_port"`
	StdinPort       int    `json:"stdin_port"`
	IOPubPort       int    `json:"iopub_port"`
	SignatureScheme string `json:"signature_scheme"`
	Key             string `json:"key"`
}

// Addr returns the endpoint string for the given port
func (d Descriptor) Addr(port int) string {
	return fmt.Sprintf("%s://%s:%d", d.Transport, d.IP, port)
}

// Load reads and validates a connection file. It never defaults the
// signature scheme or key: a host that wants signing disabled must say
// so explicitly in its own schema, absence here is always an error.
func Load(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read connection file %s: %w", path, err)
	}

	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %s: %v", ErrMalformedFile, path, err)
	}

	if err := desc.validate(); err != nil {
		return Descriptor{}, err
	}

	return desc, nil
}

func (d Descriptor) validate() error {
	required := []struct {
		name string
		ok   bool
	}{
		{"transport", d.Transport != ""},
		{"ip", d.IP != ""},
		{"hb_port", d.HeartbeatPort > 0},
		{"shell_port", d.ShellPort > 0},
		{"control_port", d.ControlPort > 0},
		{"stdin_port", d.StdinPort > 0},
		{"iopub_port", d.IOPubPort > 0},
		{"signature_scheme", d.SignatureScheme != ""},
		{"key", d.Key != ""},
	}

	for _, field := range required {
		if !field.ok {
			return &MissingFieldError{Field: field.name}
		}
	}
	return nil
}
