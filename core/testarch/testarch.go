// Package testarch is a small, real implementation of core.ArchCatalog over
// a synthetic rectangular grid of tiles — not a mock framework, grounded in
// how db47h/hwsim and nextpnr's own test chips build toy fabrics to exercise
// wiring and placement logic without a real device database. It backs the
// core package's test suite and the CLI's `place`/`check` demo path.
package testarch

import (
	"fmt"
	"hash/fnv"

	"github.com/daedaleanai/pnrcore/core"
)

type belEntry struct {
	name     string
	typ      core.Id
	x, y, z  int
	globlBuf bool
}

type wireEntry struct {
	name string
}

type pipEntry struct {
	src, dst core.WireId
	delay    core.Delay
}

// Grid is a rectangular array of tiles, each hosting the same catalogue of
// bel types, wired by one pip per (bel-pin, neighbouring-tile-wire) hop.
type Grid struct {
	interner *core.Interner

	bels     []belEntry // index 0 unused, BelId == index
	belIndex map[string]core.BelId

	wires     []wireEntry
	wireIndex map[string]core.WireId
	belPin    map[[2]interface{}]core.WireId // (BelId, pin Id) -> WireId, boxed for map key simplicity

	pips        []pipEntry
	uphill      map[core.WireId][]core.PipId
	downhill    map[core.WireId][]core.PipId
	exclusion   map[core.BelId]core.GroupId
	nextGroupID core.GroupId
}

// NewGrid lays out width*height tiles, each with one bel of each name in
// belTypes (interned via interner), at integer coordinates (x, y, 0..n).
// belTypes named "GBUF" are marked as global buffers for the clock-region
// DRC example in IsValidBelForCell.
func NewGrid(interner *core.Interner, width, height int, belTypes []string) *Grid {
	g := &Grid{
		interner:  interner,
		bels:      []belEntry{{}}, // slot 0 reserved, null BelId
		belIndex:  map[string]core.BelId{},
		wires:     []wireEntry{{}},
		wireIndex: map[string]core.WireId{},
		belPin:    map[[2]interface{}]core.WireId{},
		pips:      []pipEntry{{}},
		uphill:    map[core.WireId][]core.PipId{},
		downhill:  map[core.WireId][]core.PipId{},
		exclusion: map[core.BelId]core.GroupId{},
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for z, tn := range belTypes {
				name := fmt.Sprintf("X%dY%d/%s", x, y, tn)
				bel := core.BelId(len(g.bels))
				g.bels = append(g.bels, belEntry{
					name: name,
					typ:  interner.Intern(tn),
					x:    x, y: y, z: z,
					globlBuf: tn == "GBUF",
				})
				g.belIndex[name] = bel

				wireName := name + "/OUT"
				wire := g.addWire(wireName)
				g.belPin[[2]interface{}{bel, interner.Intern("OUT")}] = wire
			}
		}
	}

	// Wire adjacent tiles' OUT pins together with a pip each way, enough for
	// EstimateDelay/PredictDelay to have a non-degenerate routing graph.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x+1 < width {
				g.connectTileOuts(x, y, x+1, y, belTypes)
			}
			if y+1 < height {
				g.connectTileOuts(x, y, x, y+1, belTypes)
			}
		}
	}

	return g
}

func (g *Grid) addWire(name string) core.WireId {
	w := core.WireId(len(g.wires))
	g.wires = append(g.wires, wireEntry{name: name})
	g.wireIndex[name] = w
	return w
}

func (g *Grid) connectTileOuts(x1, y1, x2, y2 int, belTypes []string) {
	for _, tn := range belTypes {
		src, ok1 := g.wireIndex[fmt.Sprintf("X%dY%d/%s/OUT", x1, y1, tn)]
		dst, ok2 := g.wireIndex[fmt.Sprintf("X%dY%d/%s/OUT", x2, y2, tn)]
		if !ok1 || !ok2 {
			continue
		}
		g.addPip(src, dst)
		g.addPip(dst, src)
	}
}

func (g *Grid) addPip(src, dst core.WireId) core.PipId {
	p := core.PipId(len(g.pips))
	g.pips = append(g.pips, pipEntry{src: src, dst: dst, delay: core.Delay(100)})
	g.downhill[src] = append(g.downhill[src], p)
	g.uphill[dst] = append(g.uphill[dst], p)
	return p
}

// AddExclusionGroup marks a set of bels as mutually exclusive (e.g. stacked
// bels sharing one physical site): CheckBelAvail refuses any of them once
// one is bound.
func (g *Grid) AddExclusionGroup(bels ...core.BelId) core.GroupId {
	g.nextGroupID++
	group := g.nextGroupID
	for _, b := range bels {
		g.exclusion[b] = group
	}
	return group
}

func (g *Grid) BelsByTile(x, y int) []core.BelId {
	var out []core.BelId
	for i, b := range g.bels {
		if i == 0 {
			continue
		}
		if b.x == x && b.y == y {
			out = append(out, core.BelId(i))
		}
	}
	return out
}

func (g *Grid) Bels() []core.BelId {
	out := make([]core.BelId, 0, len(g.bels)-1)
	for i := 1; i < len(g.bels); i++ {
		out = append(out, core.BelId(i))
	}
	return out
}

func (g *Grid) BelType(bel core.BelId) core.Id   { return g.bels[bel].typ }
func (g *Grid) BelName(bel core.BelId) string    { return g.bels[bel].name }
func (g *Grid) BelGlobalBuf(bel core.BelId) bool { return g.bels[bel].globlBuf }

func (g *Grid) GetBelByName(name string) core.BelId {
	return g.belIndex[name] // zero value is the null BelId
}

func (g *Grid) BelLocation(bel core.BelId) (x, y, z int) {
	e := g.bels[bel]
	return e.x, e.y, e.z
}

func (g *Grid) EstimatePosition(bel core.BelId) (fx, fy float64) {
	e := g.bels[bel]
	return float64(e.x), float64(e.y)
}

func (g *Grid) BelPinWire(bel core.BelId, pin core.Id) core.WireId {
	return g.belPin[[2]interface{}{bel, pin}]
}

func (g *Grid) BelPins(bel core.BelId) []core.Id {
	return []core.Id{g.interner.Intern("OUT")}
}

func (g *Grid) Wires() []core.WireId {
	out := make([]core.WireId, 0, len(g.wires)-1)
	for i := 1; i < len(g.wires); i++ {
		out = append(out, core.WireId(i))
	}
	return out
}

func (g *Grid) WireName(wire core.WireId) string { return g.wires[wire].name }

func (g *Grid) Pips() []core.PipId {
	out := make([]core.PipId, 0, len(g.pips)-1)
	for i := 1; i < len(g.pips); i++ {
		out = append(out, core.PipId(i))
	}
	return out
}

func (g *Grid) PipSrc(p core.PipId) core.WireId { return g.pips[p].src }
func (g *Grid) PipDst(p core.PipId) core.WireId { return g.pips[p].dst }

func (g *Grid) PipsUphill(w core.WireId) []core.PipId   { return g.uphill[w] }
func (g *Grid) PipsDownhill(w core.WireId) []core.PipId { return g.downhill[w] }

func (g *Grid) WireDelay(w core.WireId) core.Delay { return core.Delay(10) }
func (g *Grid) PipDelay(p core.PipId) core.Delay   { return g.pips[p].delay }

func (g *Grid) EstimateDelay(src, dst core.WireId) core.Delay {
	return core.Delay(100) // low upper bound for an otherwise-unused chip
}

func (g *Grid) PredictDelay(net *core.Net, sink core.PortRef) core.Delay {
	return core.Delay(100)
}

func (g *Grid) GetDelayEpsilon() core.Delay      { return core.Delay(1) }
func (g *Grid) GetRipupDelayPenalty() core.Delay { return core.Delay(1000) }

func (g *Grid) GetCellDelay(cell *core.Cell, from, to core.Id) (core.DelayInfo, bool) {
	return core.DelayInfo{}, false
}

func (g *Grid) GetBudgetOverride(net *core.Net, sink core.PortRef, budget core.Delay) core.Delay {
	return budget
}

func (g *Grid) GetPortClock(cell *core.Cell, port core.Id) core.Id { return 0 }
func (g *Grid) IsClockPort(cell *core.Cell, port core.Id) bool     { return false }

// IsValidBelForCell is the grid's only cell-level DRC: it is permissive for
// ordinary bels, and for global-buffer bels it enforces "one clock driver
// per tile row" by consulting which bels ctx currently has bound — the
// example of an architecture check that considers currently bound state.
func (g *Grid) IsValidBelForCell(ctx *core.Context, cell *core.Cell, bel core.BelId) bool {
	if !g.BelGlobalBuf(bel) {
		return true
	}
	_, row, _ := g.BelLocation(bel)
	for _, other := range g.Bels() {
		if !g.BelGlobalBuf(other) {
			continue
		}
		_, otherRow, _ := g.BelLocation(other)
		if otherRow != row {
			continue
		}
		if occupant, bound := ctx.BelCell(other); bound && occupant != cell.Name {
			return false
		}
	}
	return true
}

func (g *Grid) IsBelLocationValid(bel core.BelId) bool { return true }

func (g *Grid) BelExclusionGroup(bel core.BelId) core.GroupId {
	return g.exclusion[bel]
}

func fnv32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

func (g *Grid) BelChecksum(bel core.BelId) uint32  { return fnv32(g.bels[bel].name) }
func (g *Grid) WireChecksum(wire core.WireId) uint32 { return fnv32(g.wires[wire].name) }
func (g *Grid) PipChecksum(pip core.PipId) uint32 {
	return fnv32(fmt.Sprintf("%d->%d", g.pips[pip].src, g.pips[pip].dst))
}
