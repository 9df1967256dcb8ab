package connection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const wellFormed = `{
	"transport": "tcp",
	"ip": "127.0.0.1",
	"hb_port": 50001,
	"shell_port": 50002,
	"control_port": 50003,
	"stdin_port": 50004,
	"iopub_port": 50005,
	"signature_scheme": "hmac-sha256",
	"key": "6f5d1b72-6b3e-4b1a-8f2d-000000000000"
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connection.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	desc, err := Load(writeFile(t, wellFormed))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if desc.Transport != "tcp" {
		t.Errorf("Transport = %q, want tcp", desc.Transport)
	}
	if desc.IP != "127.0.0.1" {
		t.Errorf("IP = %q, want 127.0.0.1", desc.IP)
	}
	if desc.HeartbeatPort != 50001 || desc.ShellPort != 50002 ||
		desc.ControlPort != 50003 || desc.StdinPort != 50004 || desc.IOPubPort != 50005 {
		t.Errorf("ports = %d/%d/%d/%d/%d, want 50001..50005",
			desc.HeartbeatPort, desc.ShellPort, desc.ControlPort, desc.StdinPort, desc.IOPubPort)
	}
	if desc.SignatureScheme != "hmac-sha256" {
		t.Errorf("SignatureScheme = %q, want hmac-sha256", desc.SignatureScheme)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeFile(t, wellFormed)

	first, err := Load(path)
	if err != nil {
		t.Fatalf("first Load() error = %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if first != second {
		t.Errorf("Load() not idempotent: %+v vs %+v", first, second)
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeFile(t, "not json at all"))
	if !errors.Is(err, ErrMalformedFile) {
		t.Errorf("Load() error = %v, want ErrMalformedFile", err)
	}
}

func TestLoadMissingFields(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantField string
	}{
		{
			name:      "empty object",
			content:   `{}`,
			wantField: "transport",
		},
		{
			name: "missing key",
			content: `{
				"transport": "tcp", "ip": "127.0.0.1",
				"hb_port": 1, "shell_port": 2, "control_port": 3,
				"stdin_port": 4, "iopub_port": 5,
				"signature_scheme": "hmac-sha256"
			}`,
			wantField: "key",
		},
		{
			name: "missing signature scheme",
			content: `{
				"transport": "tcp", "ip": "127.0.0.1",
				"hb_port": 1, "shell_port": 2, "control_port": 3,
				"stdin_port": 4, "iopub_port": 5,
				"key": "secret"
			}`,
			wantField: "signature_scheme",
		},
		{
			name: "zero port",
			content: `{
				"transport": "tcp", "ip": "127.0.0.1",
				"hb_port": 0, "shell_port": 2, "control_port": 3,
				"stdin_port": 4, "iopub_port": 5,
				"signature_scheme": "hmac-sha256", "key": "secret"
			}`,
			wantField: "hb_port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("Load() error = %v, want MissingFieldError", err)
			}
			if missing.Field != tt.wantField {
				t.Errorf("missing field = %q, want %q", missing.Field, tt.wantField)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load() = nil, want error for missing file")
	}
}

func TestAddr(t *testing.T) {
	desc := Descriptor{Transport: "tcp", IP: "127.0.0.1"}
	if got := desc.Addr(50001); got != "tcp://127.0.0.1:50001" {
		t.Errorf("Addr(50001) = %q, want tcp://127.0.0.1:50001", got)
	}
}
