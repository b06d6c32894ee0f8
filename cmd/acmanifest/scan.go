package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/milk9111/audiocontroller/assets"
)

type scanParams struct {
	Dir             string `pos:"true" optional:"true" help:"Asset directory to scan." default:"assets"`
	Out             string `short:"o" help:"Manifest file to write." default:"manifest.yaml"`
	Formats         string `help:"Comma separated audio extensions." default:"wav,mp3,ogg,flac"`
	DefaultDuration string `help:"Length used when a file cannot be probed." default:"1s"`
}

func scanCmd() *cobra.Command {
	return boa.CmdT[scanParams]{
		Use:   "scan",
		Short: "Scan an asset directory and write a manifest",
		RunFunc: func(params *scanParams, cmd *cobra.Command, args []string) {
			os.Exit(runScan(params, os.Stdout, os.Stderr))
		},
	}.ToCobra()
}

func runScan(params *scanParams, stdout, stderr io.Writer) int {
	fallback, err := time.ParseDuration(params.DefaultDuration)
	if err != nil || fallback <= 0 {
		fmt.Fprintf(stderr, "acmanifest: invalid default duration %q\n", params.DefaultDuration)
		return 2
	}

	m, err := assets.Scan(params.Dir, assets.ScanOptions{
		Formats:         splitFormats(params.Formats),
		DefaultDuration: fallback,
	})
	if err != nil {
		fmt.Fprintf(stderr, "acmanifest: %v\n", err)
		return 1
	}
	if err := m.Save(params.Out); err != nil {
		fmt.Fprintf(stderr, "acmanifest: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %d tracks to %s\n", m.Len(), params.Out)
	return 0
}

func splitFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
