package core

import "github.com/daedaleanai/pnrcore/core/testarch"

// newFixture builds a context over a synthetic width x height grid with the
// given bel types per tile, ready for cells/nets to be added directly via
// the core API (tests don't route through netlistio).
func newFixture(width, height int, belTypes ...string) (*Context, *testarch.Grid) {
	interner := NewInterner()
	arch := testarch.NewGrid(interner, width, height, belTypes)
	ctx := NewContext(interner, arch, 1)
	return ctx, arch
}

// addCell interns name/typ and registers an unplaced cell.
func addCell(t interface {
	Fatalf(format string, args ...interface{})
}, ctx *Context, name, typ string) *Cell {
	cell := NewCell(ctx.Interner.Intern(name), ctx.Interner.Intern(typ))
	if err := ctx.AddCell(cell); err != nil {
		t.Fatalf("addCell(%s): %s", name, err)
	}
	return cell
}

// addNet interns name and registers an empty, undriven net.
func addNet(t interface {
	Fatalf(format string, args ...interface{})
}, ctx *Context, name string) *Net {
	net := NewNet(ctx.Interner.Intern(name))
	if err := ctx.AddNet(net); err != nil {
		t.Fatalf("addNet(%s): %s", name, err)
	}
	return net
}

// connect wires an OUT port on driver and an IN port on each user to net,
// keeping driver/users linkage consistent.
func connect(ctx *Context, net *Net, driver *Cell, users ...*Cell) {
	outPort := driver.AddPort(ctx.Interner.Intern("OUT"), PortOut)
	outPort.Net = net
	net.Driver = PortRef{Cell: driver, Port: outPort.Name}

	for _, u := range users {
		inPort := u.AddPort(ctx.Interner.Intern("IN"), PortIn)
		inPort.Net = net
		net.Users = append(net.Users, PortRef{Cell: u, Port: inPort.Name})
	}
}
