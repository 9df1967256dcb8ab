package cli

import (
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/spf13/cobra"

	"github.com/nbforge/nbkernel/pkg/boot"
	"github.com/nbforge/nbkernel/pkg/connection"
	"github.com/nbforge/nbkernel/pkg/logging"
	"github.com/nbforge/nbkernel/pkg/services"
	"github.com/nbforge/nbkernel/pkg/shutdown"
)

func (a *App) kernelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kernel <connection-file>",
		Short: "Launch a kernel instance for the given connection file",
		Long: `Launch a kernel instance: load the host-supplied connection file,
assemble the runtime services, and start them. The process then serves
the client until the host terminates it.

This command is normally invoked by the notebook host with the
connection-file path substituted into the registered launch command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runKernel(args[0])
		},
	}
}

func (a *App) runKernel(connectionFile string) error {
	level := logging.ParseLevel(a.logLevel)

	desc, err := connection.Load(connectionFile)
	if err != nil {
		return err
	}

	graph, err := services.Assemble(a.id, desc, level, a.regs...)
	if err != nil {
		return err
	}

	logHostBanner(graph.Logger)
	graph.Logger.Info("Connection descriptor loaded", map[string]interface{}{
		"transport": desc.Transport,
		"ip":        desc.IP,
		"hb_port":   desc.HeartbeatPort,
		"shell":     desc.ShellPort,
	})

	if err := boot.NewSequencer().Start(graph); err != nil {
		return err
	}

	// Running: the listeners own their goroutines from here; the host
	// owns the rest of the lifecycle through process signals.
	sig := shutdown.New().Wait()
	graph.Logger.Info("Kernel terminating", map[string]interface{}{"signal": sig.String()})
	return nil
}

// logHostBanner logs the host's capabilities, mirroring what operators
// expect to see from a starting node
func logHostBanner(logger *logging.Logger) {
	fields := map[string]interface{}{}

	if threads, err := cpu.Counts(true); err == nil {
		fields["cpu_threads"] = threads
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		fields["cpu_model"] = infos[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fields["ram_total_mb"] = vm.Total / (1024 * 1024)
	}

	logger.Info("Host capabilities detected", fields)
}
