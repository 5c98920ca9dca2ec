package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/pnrcore/core"
	"github.com/daedaleanai/pnrcore/core/netlistio"
	"github.com/daedaleanai/pnrcore/core/testarch"
	"github.com/daedaleanai/pnrcore/log"
)

var checkCmd = &cobra.Command{
	Use:   "check <netlist.json> <width>x<height>",
	Args:  cobra.ExactArgs(2),
	Short: "Runs the integrity check over a loaded (and possibly unplaced) netlist",
	Long:  `Loads a netlist against a synthetic grid ArchCatalog and runs check() only, reporting the design's checksum.`,
	Run:   runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	width, height, err := parseGridSize(args[1])
	if err != nil {
		log.Error("invalid grid size %q: %s\n", args[1], err)
		os.Exit(1)
	}

	interner := core.NewInterner()
	arch := testarch.NewGrid(interner, width, height, []string{"LUT", "FF", "GBUF"})
	ctx := core.NewContext(interner, arch, Seed)

	f, err := os.Open(args[0])
	if err != nil {
		log.Error("failed to open netlist %q: %s\n", args[0], err)
		os.Exit(1)
	}
	defer f.Close()

	if err := netlistio.Load(ctx, f); err != nil {
		log.Error("failed to load netlist: %s\n", err)
		os.Exit(1)
	}

	if err := ctx.Check(); err != nil {
		log.Fatal("integrity check failed: %s\n", err)
	}

	log.Success("check passed, checksum=%08x\n", ctx.Checksum())
}
