package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/pnrcore/config"
	"github.com/daedaleanai/pnrcore/log"
)

// Force continues placement past the downgradable error kinds instead of
// aborting the phase.
var Force bool

// Seed is the PRNG seed threaded into the design context (the only
// source of randomness, used only where a future strategy names it).
var Seed int64

// TargetFreqHz is the user's target clock frequency in Hz, 0 meaning unset
// (optimise for maximum achievable frequency).
var TargetFreqHz float64

var rootCmd = &cobra.Command{
	Use:   "pnrcore",
	Short: "The pnrcore placement engine",
	Long: `pnrcore is the core placement engine of a place-and-route tool for
FPGA-class reconfigurable devices. It assigns every cell of a packed
gate-level netlist to a legal bel on a target architecture, honouring user
constraints, and hands the resulting bindings to a downstream router.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().BoolVar(&Force, "force", config.GetConfig().DefaultForce, "Continue past recoverable placement errors")
	rootCmd.PersistentFlags().Int64Var(&Seed, "seed", config.GetConfig().DefaultSeed, "PRNG seed")
	rootCmd.PersistentFlags().Float64Var(&TargetFreqHz, "freq", 0, "Target clock frequency in Hz (0 = maximise)")

	cobra.OnInitialize(func() {
		if log.Verbose {
			log.Debug("verbose output enabled")
		}
	})

	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
