package identity

import (
	"fmt"
	"regexp"
)

// kernelNameRe matches the slugs the host registry accepts as kernel names
var kernelNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// KernelIdentity is the static description of a kernel, supplied once by
// the embedding kernel author at process start and shared read-only by
// every component afterwards.
type KernelIdentity struct {
	KernelName    string `yaml:"kernel_name" json:"kernel_name"`
	DisplayName   string `yaml:"display_name" json:"display_name"`
	FriendlyName  string `yaml:"friendly_name" json:"friendly_name"`
	LanguageName  string `yaml:"language" json:"language"`
	KernelVersion string `yaml:"version" json:"version"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Validate checks the identity is usable for registration and launch
func (id KernelIdentity) Validate() error {
	if id.KernelName == "" {
		return fmt.Errorf("kernel name is required")
	}
	if !kernelNameRe.MatchString(id.KernelName) {
		return fmt.Errorf("kernel name %q is not a valid slug (lowercase letters, digits, '.', '_', '-')", id.KernelName)
	}
	if id.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	if id.LanguageName == "" {
		return fmt.Errorf("language name is required")
	}
	return nil
}
