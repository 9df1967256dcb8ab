// Package cli is the command surface an embedding kernel exposes: the
// install, kernel, and list subcommands, wired to the synthesizer, the
// service assembler, and the boot sequencer.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nbforge/nbkernel/pkg/identity"
	"github.com/nbforge/nbkernel/pkg/kernelspec"
	"github.com/nbforge/nbkernel/pkg/services"
)

// App is the command-line surface for one embedding kernel. The kernel
// author supplies the identity and its registrations (at minimum an
// execution engine) and calls Execute from main.
type App struct {
	id   identity.KernelIdentity
	regs []services.Registration
	root *cobra.Command

	logLevel     string
	registryTool string
}

// New builds the command tree for the given kernel
func New(id identity.KernelIdentity, regs ...services.Registration) *App {
	app := &App{id: id, regs: regs}

	app.root = &cobra.Command{
		Use:           id.KernelName,
		Short:         fmt.Sprintf("%s notebook kernel", id.DisplayName),
		Long:          id.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.OnInitialize(app.initConfig)

	app.root.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "minimum log level: debug, info, warn, error")

	app.root.AddCommand(app.installCmd())
	app.root.AddCommand(app.kernelCmd())
	app.root.AddCommand(app.listCmd())

	return app
}

// initConfig reads the kernel's config file and environment overrides
func (a *App) initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, "."+a.id.KernelName))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.BindEnv("log_level", "KERNEL_LOG_LEVEL")
	viper.BindEnv("registry_tool", "KERNEL_REGISTRY_TOOL")

	// Missing config file is fine; flags and env still apply.
	_ = viper.ReadInConfig()

	if a.logLevel == "" {
		a.logLevel = viper.GetString("log_level")
	}

	a.registryTool = viper.GetString("registry_tool")
	if a.registryTool == "" {
		a.registryTool = kernelspec.DefaultTool
	}
}

// Execute runs the command tree and returns the process exit status:
// 0 on success, 2 when the host registration tool itself failed, 1 for
// every other failure.
func (a *App) Execute() int {
	if err := a.root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var regErr *kernelspec.RegistrationError
		if errors.As(err, &regErr) {
			return 2
		}
		return 1
	}
	return 0
}

// Root exposes the underlying command for embedders that add their own
// subcommands.
func (a *App) Root() *cobra.Command {
	return a.root
}
