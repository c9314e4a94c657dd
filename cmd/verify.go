package cmd

import (
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/modsqr/precompute/adder"
)

// verifyCmd replays the adder term decomposition against a sample operand
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "self-tests the adder term decomposition against a sample operand",
	Run:   cmdVerify,
}

var (
	fOperand string
	fSeed    uint64
)

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&fOperand, "operand", "x", "", "packed redundant operand as a decimal or 0x-prefixed integer -- default is a seeded random operand")
	verifyCmd.Flags().Uint64Var(&fSeed, "seed", 42, "seed of the random operand when --operand is not given")
}

func cmdVerify(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig()
	if err != nil {
		fmt.Println("error:", err)
		_ = cmd.Usage()
		os.Exit(-1)
	}

	var x *big.Int
	if fOperand != "" {
		var ok bool
		if x, ok = new(big.Int).SetString(fOperand, 0); !ok {
			fmt.Println("error: invalid operand", fOperand)
			_ = cmd.Usage()
			os.Exit(-1)
		}
	} else {
		x = adder.SampleOperand(fSeed, cfg.Radix)
	}

	if err := adder.Verify(x, cfg); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Println("decomposition verified")
}
