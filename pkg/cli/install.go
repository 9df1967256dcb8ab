package cli

import (
	"github.com/spf13/cobra"

	"github.com/nbforge/nbkernel/pkg/kernelspec"
)

func (a *App) installCmd() *cobra.Command {
	var develop bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register this kernel with the notebook host",
		Long: `Synthesize a kernelspec for this kernel and register it through the
host's own kernelspec tool.

With --develop the registration launches the kernel via "go run" against
the current directory, so source edits take effect on the next launch
without reinstalling. Without it the registration launches the installed
kernel binary by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := kernelspec.ModeInstalled
			if develop {
				mode = kernelspec.ModeDevelop
			}

			installer := &kernelspec.Installer{Tool: a.registryTool}
			return installer.Register(a.id, mode, a.logLevel)
		},
	}

	cmd.Flags().BoolVar(&develop, "develop", false, "register a development launch command tied to the current directory")

	return cmd
}
