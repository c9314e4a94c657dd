package cmd

import (
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/modsqr/precompute/adder"
	"github.com/modsqr/precompute/sink"
)

// termsCmd derives the adder correction terms
var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "derives the redundant-radix adder correction terms",
	Run:   cmdTerms,
}

var fTermsOut string

func init() {
	rootCmd.AddCommand(termsCmd)

	termsCmd.Flags().StringVarP(&fTermsOut, "out", "o", "", "write the term set to this CBOR file in addition to the diagnostic dump")
}

// termExport is the CBOR payload of a terms run: the structural constants
// plus the selector-dependent bit-position triples.
type termExport struct {
	Modulus     string          `cbor:"modulus"`
	AllSignBits string          `cbor:"allSignBits"`
	Term0       string          `cbor:"term0"`
	Term1       string          `cbor:"term1"`
	Term2       string          `cbor:"term2"`
	Terms       []adder.TermSet `cbor:"terms"`
}

func cmdTerms(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		fmt.Println("error:", err)
		_ = cmd.Usage()
		os.Exit(-1)
	}

	allSignBits := adder.AllSignBits(cfg.Radix)
	structural := []*big.Int{adder.Term0(cfg), adder.Term1(cfg), adder.Term2(cfg)}
	fmt.Printf("ALLSIGNBITS = 0x%s\n", allSignBits.Text(16))
	for i, t := range structural {
		fmt.Printf("adderterm[%d] = 0x%s\n", i, t.Text(16))
	}

	terms, err := adder.AllTerms(cfg)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	for _, set := range terms {
		for _, t := range set.Triples {
			fmt.Printf("adderterm[%d] sym=%d bit=%d mod=0x%s\n", set.Index, t.Sym, t.Bit, t.Mod.Text(16))
		}
	}

	if fTermsOut == "" {
		return
	}
	export := termExport{
		Modulus:     cfg.Modulus.Text(16),
		AllSignBits: allSignBits.Text(16),
		Term0:       structural[0].Text(16),
		Term1:       structural[1].Text(16),
		Term2:       structural[2].Text(16),
		Terms:       terms,
	}
	if err := sink.ExportCBOR(fTermsOut, export); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
}
