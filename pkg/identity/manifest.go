package identity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadManifest reads a KernelIdentity from a YAML manifest file. An
// embedding kernel can ship a kernel.yaml next to its binary instead of
// constructing the identity in code.
func LoadManifest(path string) (KernelIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KernelIdentity{}, fmt.Errorf("failed to read kernel manifest %s: %w", path, err)
	}

	var id KernelIdentity
	if err := yaml.Unmarshal(data, &id); err != nil {
		return KernelIdentity{}, fmt.Errorf("failed to parse kernel manifest %s: %w", path, err)
	}

	if err := id.Validate(); err != nil {
		return KernelIdentity{}, fmt.Errorf("invalid kernel manifest %s: %w", path, err)
	}

	return id, nil
}
