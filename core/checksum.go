package core

import "github.com/daedaleanai/pnrcore/util"

// mix is the xorshift32 step used throughout as the digest mixing function:
// x ^= x<<13, then x ^= x>>17, then x ^= x<<5, each shift applied to the
// value produced by the previous step.
func mix(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// fold combines a running digest with the next item in a sequence whose
// order is semantically significant (a net's users in declared order). A
// cell's ports are kept in a map and are combined with sumReduce instead.
func fold(acc, next uint32) uint32 {
	return mix(acc + next)
}

// sumReduce combines a set of per-entity digests whose order is NOT
// semantically significant (hash-mapped containers) — plain addition is
// commutative, so the result is stable under reordering; the single mix at
// the end avalanches the sum.
func sumReduce(items []uint32) uint32 {
	var sum uint32
	for _, it := range items {
		sum += it
	}
	return mix(sum)
}

func idChecksum(id Id) uint32 {
	return mix(uint32(id))
}

func delayChecksum(d Delay) uint32 {
	return mix(uint32(d) ^ uint32(uint64(d)>>32))
}

func delayInfoChecksum(d DelayInfo) uint32 {
	acc := uint32(0)
	acc = fold(acc, delayChecksum(d.MinRiseDelay))
	acc = fold(acc, delayChecksum(d.MaxRiseDelay))
	acc = fold(acc, delayChecksum(d.MinFallDelay))
	acc = fold(acc, delayChecksum(d.MaxFallDelay))
	return acc
}

func bytesChecksum(b []byte) uint32 {
	acc := uint32(0x811c9dc5) // arbitrary non-zero seed so an empty slice still mixes
	for _, c := range b {
		acc = fold(acc, uint32(c))
	}
	return acc
}

func bytesMapChecksum(m map[Id][]byte) uint32 {
	keys := util.OrderedKeys(m)
	items := make([]uint32, len(keys))
	for i, k := range keys {
		items[i] = mix(idChecksum(k) ^ bytesChecksum(m[k]))
	}
	return sumReduce(items)
}

func portRefChecksum(p PortRef) uint32 {
	if p.IsNull() {
		return 0
	}
	acc := fold(0, idChecksum(p.Cell.Name))
	acc = fold(acc, idChecksum(p.Port))
	acc = fold(acc, delayChecksum(p.Budget))
	return acc
}

func (ctx *Context) wireEntryChecksum(wire WireId, entry WireBinding) uint32 {
	acc := fold(0, ctx.Arch.WireChecksum(wire))
	if !entry.Pip.IsNull() {
		acc = fold(acc, ctx.Arch.PipChecksum(entry.Pip))
	}
	acc = fold(acc, uint32(entry.Strength))
	return acc
}

func (ctx *Context) netWiresChecksum(net *Net) uint32 {
	keys := make([]WireId, 0, len(net.Wires))
	for w := range net.Wires {
		keys = append(keys, w)
	}
	keys = util.OrderedSlice(keys)
	items := make([]uint32, len(keys))
	for i, w := range keys {
		items[i] = ctx.wireEntryChecksum(w, net.Wires[w])
	}
	return sumReduce(items)
}

func (ctx *Context) netChecksum(net *Net) uint32 {
	acc := fold(0, idChecksum(net.Name))
	acc = fold(acc, portRefChecksum(net.Driver))
	for _, u := range net.Users {
		acc = fold(acc, portRefChecksum(u))
	}
	acc = fold(acc, bytesMapChecksum(net.Attrs))
	acc = fold(acc, bytesMapChecksum(net.Params))
	acc = fold(acc, ctx.netWiresChecksum(net))
	return acc
}

func (ctx *Context) cellChecksum(cell *Cell) uint32 {
	acc := fold(0, idChecksum(cell.Name))
	acc = fold(acc, idChecksum(cell.Type))

	portKeys := util.OrderedKeys(cell.Ports)
	portItems := make([]uint32, len(portKeys))
	for i, pk := range portKeys {
		pi := cell.Ports[pk]
		portItems[i] = fold(fold(0, idChecksum(pi.Name)), uint32(pi.Type))
	}
	acc = fold(acc, sumReduce(portItems))

	acc = fold(acc, bytesMapChecksum(cell.Attrs))
	acc = fold(acc, bytesMapChecksum(cell.Params))
	if !cell.Bel.IsNull() {
		acc = fold(acc, ctx.Arch.BelChecksum(cell.Bel))
	}
	acc = fold(acc, uint32(cell.BelStrength))
	return acc
}

// Checksum computes a deterministic 32-bit digest over the whole design
// state: the netlist and all bindings. It is stable under reordering of
// hash-mapped containers and sensitive to any other state drift, which the
// determinism law uses to detect unintended divergence between
// otherwise-equivalent runs.
func (ctx *Context) Checksum() uint32 {
	cellItems := make([]uint32, 0, len(ctx.cells))
	for _, c := range ctx.Cells() {
		cellItems = append(cellItems, ctx.cellChecksum(c))
	}
	netItems := make([]uint32, 0, len(ctx.nets))
	for _, n := range ctx.Nets() {
		netItems = append(netItems, ctx.netChecksum(n))
	}
	return fold(sumReduce(cellItems), sumReduce(netItems))
}
