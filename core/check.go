package core

import "github.com/daedaleanai/pnrcore/util"

// Check asserts the design's structural invariants over the current state,
// failing with KindInvariantFailure naming the first offending entity.
func (ctx *Context) Check() error {
	if err := ctx.checkCells(); err != nil {
		return err
	}
	if err := ctx.checkNets(); err != nil {
		return err
	}
	if err := ctx.checkBoundWires(); err != nil {
		return err
	}
	if err := ctx.checkPortLinkage(); err != nil {
		return err
	}
	if err := ctx.checkHandleOwnership(); err != nil {
		return err
	}
	return nil
}

// checkCells verifies cell.Name consistency and cell<->bel duality.
func (ctx *Context) checkCells() error {
	for name, cell := range ctx.cells {
		if cell.Name != name {
			return newErrorf(KindInvariantFailure, "cell stored under %q has Name %q", ctx.Interner.Str(name), ctx.Interner.Str(cell.Name))
		}
		if !cell.Bel.IsNull() {
			boundTo, ok := ctx.BelCell(cell.Bel)
			if !ok || boundTo != cell.Name {
				return newErrorf(KindInvariantFailure, "cell %q claims bel %s but binding store disagrees", ctx.Interner.Str(cell.Name), ctx.Arch.BelName(cell.Bel))
			}
		}
	}
	return nil
}

// checkNets verifies net.Name consistency and net<->wire<->pip duality.
func (ctx *Context) checkNets() error {
	for name, net := range ctx.nets {
		if net.Name != name {
			return newErrorf(KindInvariantFailure, "net stored under %q has Name %q", ctx.Interner.Str(name), ctx.Interner.Str(net.Name))
		}
		for wire, entry := range net.Wires {
			owner, ok := ctx.WireNet(wire)
			if !ok || owner != net.Name {
				return newErrorf(KindInvariantFailure, "wire %s listed under net %q is not bound to it", ctx.Arch.WireName(wire), ctx.Interner.Str(net.Name))
			}
			if !entry.Pip.IsNull() {
				if ctx.Arch.PipDst(entry.Pip) != wire {
					return newErrorf(KindInvariantFailure, "pip driving wire %s does not have that wire as destination", ctx.Arch.WireName(wire))
				}
				pipOwner, ok := ctx.PipNet(entry.Pip)
				if !ok || pipOwner != net.Name {
					return newErrorf(KindInvariantFailure, "pip driving wire %s is not bound to net %q", ctx.Arch.WireName(wire), ctx.Interner.Str(net.Name))
				}
			}
		}
	}
	return nil
}

// checkBoundWires verifies every bound wire belongs to a known net and is listed in that net's Wires.
func (ctx *Context) checkBoundWires() error {
	for wire, binding := range ctx.wireBindings {
		net, ok := ctx.nets[binding.Net]
		if !ok {
			return newErrorf(KindInvariantFailure, "wire %s bound to unknown net", ctx.Arch.WireName(wire))
		}
		if _, ok := net.Wires[wire]; !ok {
			return newErrorf(KindInvariantFailure, "wire %s bound to net %q but missing from its Wires map", ctx.Arch.WireName(wire), ctx.Interner.Str(binding.Net))
		}
	}
	return nil
}

// checkPortLinkage verifies OUT ports are the sole driver of their net and
// IN ports appear exactly once in their net's Users.
func (ctx *Context) checkPortLinkage() error {
	for _, cell := range ctx.Cells() {
		for _, port := range util.OrderedKeys(cell.Ports) {
			pi := cell.Ports[port]
			if pi.Net == nil {
				continue
			}
			switch pi.Type {
			case PortOut:
				if pi.Net.Driver.Cell != cell || pi.Net.Driver.Port != pi.Name {
					return newErrorf(KindInvariantFailure, "output port %q of cell %q is not its net's driver", ctx.Interner.Str(pi.Name), ctx.Interner.Str(cell.Name))
				}
			case PortIn:
				count := 0
				for _, u := range pi.Net.Users {
					if u.Cell == cell && u.Port == pi.Name {
						count++
					}
				}
				if count != 1 {
					return newErrorf(KindInvariantFailure, "input port %q of cell %q appears %d times in its net's Users (want 1)", ctx.Interner.Str(pi.Name), ctx.Interner.Str(cell.Name), count)
				}
			}
		}
	}
	return nil
}

// checkHandleOwnership verifies every handle stored in a binding was issued by the current catalog.
func (ctx *Context) checkHandleOwnership() error {
	validBels := map[BelId]bool{}
	for _, b := range ctx.Arch.Bels() {
		validBels[b] = true
	}
	for b := range ctx.belBindings {
		if !validBels[b] {
			return newErrorf(KindInvariantFailure, "bound bel %d was not issued by the current catalog", b)
		}
	}

	validWires := map[WireId]bool{}
	for _, w := range ctx.Arch.Wires() {
		validWires[w] = true
	}
	for w := range ctx.wireBindings {
		if !validWires[w] {
			return newErrorf(KindInvariantFailure, "bound wire %d was not issued by the current catalog", w)
		}
	}

	validPips := map[PipId]bool{}
	for _, p := range ctx.Arch.Pips() {
		validPips[p] = true
	}
	for p := range ctx.pipBindings {
		if !validPips[p] {
			return newErrorf(KindInvariantFailure, "bound pip %d was not issued by the current catalog", p)
		}
	}
	return nil
}
