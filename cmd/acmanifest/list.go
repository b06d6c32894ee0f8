package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/milk9111/audiocontroller/assets"
)

type listParams struct {
	Manifest string `pos:"true" optional:"true" help:"Manifest file to print." default:"manifest.yaml"`
}

func listCmd() *cobra.Command {
	return boa.CmdT[listParams]{
		Use:   "list",
		Short: "Print the tracks of a manifest",
		RunFunc: func(params *listParams, cmd *cobra.Command, args []string) {
			os.Exit(runList(params, os.Stdout, os.Stderr))
		},
	}.ToCobra()
}

func runList(params *listParams, stdout, stderr io.Writer) int {
	m, err := assets.LoadManifest(params.Manifest)
	if err != nil {
		fmt.Fprintf(stderr, "acmanifest: %v\n", err)
		return 1
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Track", "ID", "Duration"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Duration", Align: text.AlignRight},
	})
	for _, e := range m.Entries {
		t.AppendRow(table.Row{e.Path, e.ID, e.Duration})
	}
	t.AppendFooter(table.Row{"", "default", m.DefaultDuration})
	t.Render()
	return 0
}
