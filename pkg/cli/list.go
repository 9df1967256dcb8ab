package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type kernelspecListing struct {
	Kernelspecs map[string]struct {
		ResourceDir string `json:"resource_dir"`
		Spec        struct {
			DisplayName string   `json:"display_name"`
			Language    string   `json:"language"`
			Argv        []string `json:"argv"`
		} `json:"spec"`
	} `json:"kernelspecs"`
}

func (a *App) listCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the kernels registered with the notebook host",
		Long:  `Query the host's kernelspec tool for every registered kernel and display them.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(outputFormat)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output", "table", "output format: table or json")

	return cmd
}

func (a *App) runList(outputFormat string) error {
	out, err := exec.Command(a.registryTool, "kernelspec", "list", "--json").Output()
	if err != nil {
		return fmt.Errorf("failed to query %s for registered kernels: %w", a.registryTool, err)
	}

	if outputFormat == "json" {
		fmt.Println(string(out))
		return nil
	}

	var listing kernelspecListing
	if err := json.Unmarshal(out, &listing); err != nil {
		return fmt.Errorf("failed to parse kernelspec listing: %w", err)
	}

	if len(listing.Kernelspecs) == 0 {
		fmt.Println("No kernels registered")
		return nil
	}

	names := make([]string, 0, len(listing.Kernelspecs))
	for name := range listing.Kernelspecs {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("NAME", "DISPLAY NAME", "LANGUAGE", "LOCATION")

	for _, name := range names {
		entry := listing.Kernelspecs[name]
		marker := ""
		if name == a.id.KernelName {
			marker = " *"
		}
		table.Append(
			name+marker,
			entry.Spec.DisplayName,
			entry.Spec.Language,
			entry.ResourceDir,
		)
	}

	table.Render()
	return nil
}
