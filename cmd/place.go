package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/daedaleanai/pnrcore/core"
	"github.com/daedaleanai/pnrcore/core/netlistio"
	"github.com/daedaleanai/pnrcore/core/testarch"
	"github.com/daedaleanai/pnrcore/log"
)

func parseGridSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected <width>x<height>")
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

var placeCmd = &cobra.Command{
	Use:   "place <netlist.json> <width>x<height>",
	Args:  cobra.ExactArgs(2),
	Short: "Places every cell of a netlist onto a synthetic grid architecture",
	Long: `Runs the constraint placer followed by the heuristic placer over a
netlist, against a synthetic grid ArchCatalog sized <width>x<height>, then
checks the resulting bindings against the design's structural invariants.`,
	Run: runPlace,
}

func init() {
	rootCmd.AddCommand(placeCmd)
}

func withSpinner(label string, fn func(progress core.ProgressFunc) (bool, error)) (bool, error) {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	s.Suffix = " " + label
	s.Start()
	defer s.Stop()

	return fn(func(placed, total int) {
		s.Suffix = fmt.Sprintf(" %s: placed %d/%d", label, placed, total)
		log.Progress(placed, total)
	})
}

func runPlace(cmd *cobra.Command, args []string) {
	netlistPath := args[0]
	width, height, err := parseGridSize(args[1])
	if err != nil {
		log.Error("invalid grid size %q: %s\n", args[1], err)
		os.Exit(1)
	}

	interner := core.NewInterner()
	arch := testarch.NewGrid(interner, width, height, []string{"LUT", "FF", "GBUF"})
	ctx := core.NewContext(interner, arch, Seed)
	ctx.Force = Force
	ctx.TargetFreqHz = TargetFreqHz

	f, err := os.Open(netlistPath)
	if err != nil {
		log.Error("failed to open netlist %q: %s\n", netlistPath, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := netlistio.Load(ctx, f); err != nil {
		log.Error("failed to load netlist: %s\n", err)
		os.Exit(1)
	}

	core.AssignBudgets(ctx)

	ok, err := PlaceConstraintsPhase(ctx)
	if !handlePhaseResult("placeConstraints", ok, err) {
		os.Exit(1)
	}

	ok, err = PlaceHeuristicPhase(ctx)
	if !handlePhaseResult("placeHeuristic", ok, err) {
		os.Exit(1)
	}

	if err := ctx.Check(); err != nil {
		log.Fatal("integrity check failed: %s\n", err)
	}

	log.Success("placed %d cells, checksum=%08x\n", len(ctx.Cells()), ctx.Checksum())
}

// PlaceConstraintsPhase drives core.PlaceConstraints with progress display.
func PlaceConstraintsPhase(ctx *core.Context) (bool, error) {
	return withSpinner("placing constraints", func(p core.ProgressFunc) (bool, error) {
		ctx.Progress = p
		return core.PlaceConstraints(ctx)
	})
}

// PlaceHeuristicPhase drives core.PlaceHeuristic with progress display.
func PlaceHeuristicPhase(ctx *core.Context) (bool, error) {
	return withSpinner("running heuristic placer", func(p core.ProgressFunc) (bool, error) {
		ctx.Progress = p
		return core.PlaceHeuristic(ctx)
	})
}

// handlePhaseResult applies the force-handling policy at the CLI boundary:
// a downgraded (ok==false, err==nil) phase logs a warning and lets the
// caller decide whether to continue; an error of a downgradable kind
// (returned because --force was not set) is logged and reported as a
// failure; any other error is fatal.
func handlePhaseResult(phase string, ok bool, err error) bool {
	if err != nil {
		if kind, isPE := core.KindOf(err); isPE && kind.Downgradable() {
			log.Error("%s failed: %s\n", phase, err)
			return false
		}
		log.Fatal("%s failed: %s\n", phase, err)
		return false
	}
	if !ok {
		log.Warning("%s reported failures under --force, continuing\n", phase)
	}
	return true
}
