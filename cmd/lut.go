package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modsqr/precompute/lut"
	"github.com/modsqr/precompute/sink"
)

// lutCmd generates the reduction lookup tables
var lutCmd = &cobra.Command{
	Use:   "lut",
	Short: "generates the reduction lookup table files",
	Run:   cmdLut,
}

var (
	fOutDir string
	fFormat string
)

func init() {
	rootCmd.AddCommand(lutCmd)

	lutCmd.Flags().StringVarP(&fOutDir, "out", "o", ".", "output directory for the table files")
	lutCmd.Flags().StringVar(&fFormat, "format", "hex", "table entry encoding: hex or packed")
}

func cmdLut(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		fmt.Println("error:", err)
		_ = cmd.Usage()
		os.Exit(-1)
	}
	format, err := sink.ParseFormat(fFormat)
	if err != nil {
		fmt.Println("error:", err)
		_ = cmd.Usage()
		os.Exit(-1)
	}
	s, err := sink.NewFileSink(fOutDir, format)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	if err := lut.GenerateAll(cfg, s); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
}
