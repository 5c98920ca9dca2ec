package core

import "github.com/daedaleanai/pnrcore/util"

// ProgressFunc reports placer phase advancement (e.g. "placed 12/40") for
// operator visibility during long-running phases. The CLI layer
// drives a spinner off this hook; core itself performs no I/O beyond it.
type ProgressFunc func(placed, total int)

type belBinding struct {
	Cell     Id
	Strength Strength
}

type wireBinding struct {
	Net      Id
	Strength Strength
}

type pipBinding struct {
	Net      Id
	Strength Strength
}

// Context owns the interner, the netlist, the binding store, the
// architecture catalog, and the PRNG seed for one P&R invocation. It is the
// sole owner of the interner, the netlist and the binding store; every mutation to bel/wire/pip bindings must go
// through its Bind*/Unbind* methods so the dual pointers on cells and nets
// never drift.
type Context struct {
	Interner *Interner
	Arch     ArchCatalog

	Seed         int64
	Force        bool
	TargetFreqHz float64
	Progress     ProgressFunc

	cells map[Id]*Cell
	nets  map[Id]*Net

	belBindings  map[BelId]belBinding
	wireBindings map[WireId]wireBinding
	pipBindings  map[PipId]pipBinding
}

// NewContext constructs an empty design context bound to the given
// interner and architecture catalog.
func NewContext(interner *Interner, arch ArchCatalog, seed int64) *Context {
	return &Context{
		Interner:     interner,
		Arch:         arch,
		Seed:         seed,
		cells:        map[Id]*Cell{},
		nets:         map[Id]*Net{},
		belBindings:  map[BelId]belBinding{},
		wireBindings: map[WireId]wireBinding{},
		pipBindings:  map[PipId]pipBinding{},
	}
}

// AddCell registers a new cell in the netlist. The cell's name must be
// unique within the design.
func (ctx *Context) AddCell(cell *Cell) error {
	if _, exists := ctx.cells[cell.Name]; exists {
		return newErrorf(KindInvariantFailure, "duplicate cell name %q", ctx.Interner.Str(cell.Name))
	}
	ctx.cells[cell.Name] = cell
	return nil
}

// AddNet registers a new net in the netlist. The net's name must be unique
// within the design.
func (ctx *Context) AddNet(net *Net) error {
	if _, exists := ctx.nets[net.Name]; exists {
		return newErrorf(KindInvariantFailure, "duplicate net name %q", ctx.Interner.Str(net.Name))
	}
	ctx.nets[net.Name] = net
	return nil
}

// Cell looks up a cell by name.
func (ctx *Context) Cell(name Id) (*Cell, bool) {
	c, ok := ctx.cells[name]
	return c, ok
}

// Net looks up a net by name.
func (ctx *Context) Net(name Id) (*Net, bool) {
	n, ok := ctx.nets[name]
	return n, ok
}

// Cells returns every cell, ordered by interned name index (iteration
// over cells must be deterministic — insertion order or lexicographic on
// interned index; this uses the latter).
func (ctx *Context) Cells() []*Cell {
	keys := util.OrderedKeys(ctx.cells)
	result := make([]*Cell, len(keys))
	for i, k := range keys {
		result[i] = ctx.cells[k]
	}
	return result
}

// Nets returns every net, ordered by interned name index.
func (ctx *Context) Nets() []*Net {
	keys := util.OrderedKeys(ctx.nets)
	result := make([]*Net, len(keys))
	for i, k := range keys {
		result[i] = ctx.nets[k]
	}
	return result
}

// BindBel binds bel to cellName at the given strength, failing with
// KindAlreadyBound if the bel is already bound at >= strength. On success
// it sets cell.Bel and cell.BelStrength, keeping the dual pointer in sync.
func (ctx *Context) BindBel(bel BelId, cellName Id, strength Strength) error {
	cell, ok := ctx.cells[cellName]
	if !ok {
		return newErrorf(KindInvariantFailure, "bindBel: unknown cell %q", ctx.Interner.Str(cellName))
	}
	if cur, bound := ctx.belBindings[bel]; bound {
		if cur.Strength >= strength {
			return newErrorf(KindAlreadyBound, "bel %s already bound at strength %s", ctx.Arch.BelName(bel), cur.Strength)
		}
		if displaced, ok := ctx.cells[cur.Cell]; ok {
			displaced.Bel = 0
			displaced.BelStrength = StrengthNone
		}
	}
	ctx.belBindings[bel] = belBinding{Cell: cellName, Strength: strength}
	cell.Bel = bel
	cell.BelStrength = strength
	return nil
}

// UnbindBel clears a bel binding on both sides, failing with KindNotBound
// if the bel was not bound.
func (ctx *Context) UnbindBel(bel BelId) error {
	cur, ok := ctx.belBindings[bel]
	if !ok {
		return newErrorf(KindNotBound, "bel %s is not bound", ctx.Arch.BelName(bel))
	}
	if cell, ok := ctx.cells[cur.Cell]; ok {
		cell.Bel = 0
		cell.BelStrength = StrengthNone
	}
	delete(ctx.belBindings, bel)
	return nil
}

// BindWire binds wire to netName at the given strength, used for wires
// driven directly by a bel pin (no pip). Fails with KindAlreadyBound if the
// wire is already bound at >= strength.
func (ctx *Context) BindWire(wire WireId, netName Id, strength Strength) error {
	net, ok := ctx.nets[netName]
	if !ok {
		return newErrorf(KindInvariantFailure, "bindWire: unknown net %q", ctx.Interner.Str(netName))
	}
	if cur, bound := ctx.wireBindings[wire]; bound && cur.Strength >= strength {
		return newErrorf(KindAlreadyBound, "wire %s already bound at strength %s", ctx.Arch.WireName(wire), cur.Strength)
	}
	ctx.wireBindings[wire] = wireBinding{Net: netName, Strength: strength}
	net.Wires[wire] = WireBinding{Pip: 0, Strength: strength}
	return nil
}

// BindPip binds pip to netName, additionally recording the pip as the
// driver of its destination wire in net.Wires. Fails with KindAlreadyBound
// if either the pip or its destination wire is already bound at >= strength.
func (ctx *Context) BindPip(pip PipId, netName Id, strength Strength) error {
	net, ok := ctx.nets[netName]
	if !ok {
		return newErrorf(KindInvariantFailure, "bindPip: unknown net %q", ctx.Interner.Str(netName))
	}
	dst := ctx.Arch.PipDst(pip)
	if cur, bound := ctx.pipBindings[pip]; bound && cur.Strength >= strength {
		return newErrorf(KindAlreadyBound, "pip already bound at strength %s", cur.Strength)
	}
	if cur, bound := ctx.wireBindings[dst]; bound && cur.Strength >= strength {
		return newErrorf(KindAlreadyBound, "wire %s already bound at strength %s", ctx.Arch.WireName(dst), cur.Strength)
	}
	ctx.pipBindings[pip] = pipBinding{Net: netName, Strength: strength}
	ctx.wireBindings[dst] = wireBinding{Net: netName, Strength: strength}
	net.Wires[dst] = WireBinding{Pip: pip, Strength: strength}
	return nil
}

// UnbindWire removes wire from its net's Wires map and from the binding
// store. If the wire was driven by a pip, the pip is released too (cascade).
func (ctx *Context) UnbindWire(wire WireId) error {
	cur, ok := ctx.wireBindings[wire]
	if !ok {
		return newErrorf(KindNotBound, "wire %s is not bound", ctx.Arch.WireName(wire))
	}
	if net, ok := ctx.nets[cur.Net]; ok {
		if entry, ok := net.Wires[wire]; ok && !entry.Pip.IsNull() {
			delete(ctx.pipBindings, entry.Pip)
		}
		delete(net.Wires, wire)
	}
	delete(ctx.wireBindings, wire)
	return nil
}

// UnbindPip releases a pip binding without disturbing the wire it drove;
// the wire stays bound to the net but loses its driving pip. Symmetric
// counterpart to BindPip, kept for future ripup-based strategies.
func (ctx *Context) UnbindPip(pip PipId) error {
	cur, ok := ctx.pipBindings[pip]
	if !ok {
		return newErrorf(KindNotBound, "pip is not bound")
	}
	dst := ctx.Arch.PipDst(pip)
	if net, ok := ctx.nets[cur.Net]; ok {
		if entry, ok := net.Wires[dst]; ok && entry.Pip == pip {
			entry.Pip = 0
			net.Wires[dst] = entry
		}
	}
	delete(ctx.pipBindings, pip)
	return nil
}

// CheckBelAvail reports whether bel is free to bind: unbound, and not
// excluded by another bound bel sharing its exclusion group (e.g. stacked
// bels occupying the same physical site).
func (ctx *Context) CheckBelAvail(bel BelId) bool {
	if _, bound := ctx.belBindings[bel]; bound {
		return false
	}
	group := ctx.Arch.BelExclusionGroup(bel)
	if group.IsNull() {
		return true
	}
	for other := range ctx.belBindings {
		if other != bel && ctx.Arch.BelExclusionGroup(other) == group {
			return false
		}
	}
	return true
}

// CheckWireAvail reports whether wire is unbound.
func (ctx *Context) CheckWireAvail(wire WireId) bool {
	_, bound := ctx.wireBindings[wire]
	return !bound
}

// CheckPipAvail reports whether pip is unbound.
func (ctx *Context) CheckPipAvail(pip PipId) bool {
	_, bound := ctx.pipBindings[pip]
	return !bound
}

// GetConflictingBelCell returns the single blocker cell if unbinding exactly
// one cell would free bel, or false if bel is already free or blocked by
// more than one occupant.
func (ctx *Context) GetConflictingBelCell(bel BelId) (Id, bool) {
	if cur, bound := ctx.belBindings[bel]; bound {
		return cur.Cell, true
	}
	group := ctx.Arch.BelExclusionGroup(bel)
	if group.IsNull() {
		return 0, false
	}
	blocker, found := Id(0), false
	for other, bind := range ctx.belBindings {
		if other == bel {
			continue
		}
		if ctx.Arch.BelExclusionGroup(other) == group {
			if found {
				return 0, false // more than one occupant, no single unbind would free it
			}
			blocker, found = bind.Cell, true
		}
	}
	return blocker, found
}

// BelCell returns the cell currently bound to bel.
func (ctx *Context) BelCell(bel BelId) (Id, bool) {
	b, ok := ctx.belBindings[bel]
	return b.Cell, ok
}

// WireNet returns the net currently bound to wire.
func (ctx *Context) WireNet(wire WireId) (Id, bool) {
	b, ok := ctx.wireBindings[wire]
	return b.Net, ok
}

// PipNet returns the net currently bound to pip.
func (ctx *Context) PipNet(pip PipId) (Id, bool) {
	b, ok := ctx.pipBindings[pip]
	return b.Net, ok
}

func (ctx *Context) reportProgress(placed, total int) {
	if ctx.Progress != nil {
		ctx.Progress(placed, total)
	}
}
