package core

import "math"

// heuristicPasses is the fixed number of Phase-B improvement passes (K=3).
// No temperature schedule is used; the engine trades optimality for
// deterministic, reproducible convergence.
const heuristicPasses = 3

func backAnnotate(ctx *Context, cell *Cell) {
	cell.Attrs[ctx.Interner.Intern(belAttr)] = []byte(ctx.Arch.BelName(cell.Bel))
}

// unplacedCellsByType groups cells with no bound bel by their type,
// preserving the order in which each type is first encountered and the
// order of cells within each type — both read off ctx.Cells(), which sorts
// by interned name index and is therefore deterministic.
func unplacedCellsByType(ctx *Context) ([]Id, map[Id][]*Cell) {
	var order []Id
	byType := map[Id][]*Cell{}
	for _, cell := range ctx.Cells() {
		if cell.IsPlaced() {
			continue
		}
		if _, seen := byType[cell.Type]; !seen {
			order = append(order, cell.Type)
		}
		byType[cell.Type] = append(byType[cell.Type], cell)
	}
	return order, byType
}

// placeTypeBatch runs Phase A for one cell type: a single cursor scanned
// once over ctx.Arch.Bels() in declaration order, advancing past any bel
// that doesn't match, isn't available, or fails the architecture's DRC
// predicate. The cursor never backtracks — a transient rejection permanently
// loses that bel to this type, by design.
func placeTypeBatch(ctx *Context, typ Id, cells []*Cell, placed *[]*Cell, total int) (bool, error) {
	bels := ctx.Arch.Bels()

	hasType := false
	for _, bel := range bels {
		if ctx.Arch.BelType(bel) == typ {
			hasType = true
			break
		}
	}
	if !hasType {
		err := newErrorf(KindUnknownBelType, "cell type %q has no bels in the catalog", ctx.Interner.Str(typ))
		if !ctx.Force {
			return false, err
		}
		return false, nil
	}

	cursor := 0
	for _, cell := range cells {
		for cursor < len(bels) {
			bel := bels[cursor]
			if ctx.Arch.BelType(bel) == typ && ctx.CheckBelAvail(bel) && ctx.Arch.IsValidBelForCell(ctx, cell, bel) {
				break
			}
			cursor++
		}
		if cursor >= len(bels) {
			err := newErrorf(KindResourceExhausted, "too many %q used in design", ctx.Interner.Str(typ))
			if !ctx.Force {
				return false, err
			}
			return false, nil
		}
		bel := bels[cursor]
		cursor++
		if err := ctx.BindBel(bel, cell.Name, StrengthPlacer); err != nil {
			return false, err
		}
		backAnnotate(ctx, cell)
		*placed = append(*placed, cell)
		ctx.reportProgress(len(*placed), total)
	}
	return true, nil
}

// placeConstrainedTypeBatches runs Phase A over every distinct type among
// currently unplaced cells, returning the cells it placed in the order they
// were bound (the "insertion order" Phase B iterates in).
func placeConstrainedTypeBatches(ctx *Context) ([]*Cell, bool, error) {
	types, byType := unplacedCellsByType(ctx)
	total := len(ctx.cells)
	already := total - func() int {
		n := 0
		for _, cs := range byType {
			n += len(cs)
		}
		return n
	}()
	placed := make([]*Cell, 0, total)
	for _, typ := range types {
		ok, err := placeTypeBatch(ctx, typ, byType[typ], &placed, total-already)
		if err != nil {
			return placed, false, err
		}
		if !ok {
			return placed, false, nil
		}
	}
	return placed, true, nil
}

// PlaceDesign is the non-heuristic placement entry point: constraints, then a single greedy
// type-batched seeding pass, with no Phase B improvement loop. It is
// `core.PlaceDesign`, grounded in original_source/common/place.cc's
// `place_design` (as opposed to `place_design_heuristic`).
func PlaceDesign(ctx *Context) (bool, error) {
	if ok, err := PlaceConstraints(ctx); !ok || err != nil {
		return ok, err
	}
	_, ok, err := placeConstrainedTypeBatches(ctx)
	return ok, err
}

// hpwlCost computes Phase B's candidate cost for placing cell at bel: the
// sum of Manhattan distances to connected neighbours, with fan-out damping
// on nets with five or more users.
func hpwlCost(ctx *Context, cell *Cell, bel BelId) float64 {
	bx, by := ctx.Arch.EstimatePosition(bel)
	var cost float64

	for _, port := range cell.Ports {
		net := port.Net
		if net == nil {
			continue
		}
		switch port.Type {
		case PortIn:
			if drv := net.Driver.Cell; drv != nil && drv.IsPlaced() {
				dx, dy := ctx.Arch.EstimatePosition(drv.Bel)
				cost += math.Abs(bx-dx) + math.Abs(by-dy)
			}
		case PortOut:
			if len(net.Users) < 5 {
				for _, u := range net.Users {
					if u.Cell != nil && u.Cell.IsPlaced() {
						ux, uy := ctx.Arch.EstimatePosition(u.Cell.Bel)
						cost += math.Abs(bx-ux) + math.Abs(by-uy)
					}
				}
			}
		}
	}
	return cost
}

// placeCell is Phase B's per-cell step: unbind, score every legal candidate
// bel, rebind to the cheapest (ties won by the last-seen candidate),
// back-annotate.
func placeCell(ctx *Context, cell *Cell) error {
	if cell.IsPlaced() {
		if err := ctx.UnbindBel(cell.Bel); err != nil {
			return err
		}
	}

	bestCost := math.Inf(1)
	var bestBel BelId

	for _, bel := range ctx.Arch.Bels() {
		if ctx.Arch.BelType(bel) != cell.Type {
			continue
		}
		if !ctx.CheckBelAvail(bel) {
			continue
		}
		if !ctx.Arch.IsValidBelForCell(ctx, cell, bel) {
			continue
		}
		cost := hpwlCost(ctx, cell, bel)
		if cost <= bestCost {
			bestCost = cost
			bestBel = bel
		}
	}

	if bestBel.IsNull() {
		return newErrorf(KindPlacementFailure, "failed to place cell %q of type %q", ctx.Interner.Str(cell.Name), ctx.Interner.Str(cell.Type))
	}

	if err := ctx.BindBel(bestBel, cell.Name, StrengthPlacer); err != nil {
		return err
	}
	backAnnotate(ctx, cell)
	return nil
}

// TotalHPWL sums the half-perimeter wirelength (the L1 bounding box over a
// net's placed terminals) across every net in the design. It is not
// consulted by either phase — Phase B's own cost function is the
// per-candidate neighbour-distance sum — but it gives tests and
// operators a single figure of merit for comparing two placements of the
// same design.
func TotalHPWL(ctx *Context) float64 {
	var total float64
	for _, net := range ctx.Nets() {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		seen := false

		visit := func(cell *Cell) {
			if cell == nil || !cell.IsPlaced() {
				return
			}
			x, y := ctx.Arch.EstimatePosition(cell.Bel)
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
			seen = true
		}

		visit(net.Driver.Cell)
		for _, u := range net.Users {
			visit(u.Cell)
		}
		if seen {
			total += (maxX - minX) + (maxY - minY)
		}
	}
	return total
}

// PlaceHeuristic runs Phase A (greedy type-batched seeding) followed by
// Phase B (heuristicPasses iterative HPWL-improvement passes). Both phases
// assume constraint-placed cells are already bound by a prior
// PlaceConstraints call.
func PlaceHeuristic(ctx *Context) (bool, error) {
	placedByPhaseA, ok, err := placeConstrainedTypeBatches(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	total := len(placedByPhaseA)
	for pass := 0; pass < heuristicPasses; pass++ {
		for i, cell := range placedByPhaseA {
			if err := placeCell(ctx, cell); err != nil {
				if kind, isPE := KindOf(err); isPE && kind.Downgradable() && ctx.Force {
					return false, nil
				}
				return false, err
			}
			ctx.reportProgress(i+1, total)
		}
	}
	return true, nil
}
