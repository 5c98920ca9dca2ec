// Package netlistio reads the minimal JSON netlist document the pnrcore CLI
// and test fixtures use to build a *core.Context. It is deliberately not a
// netlist *format* reader (no Verilog/EDIF/etc. — that parser is out of
// scope per the core's charter); it exists only so the CLI has something to
// load and tests can build fixtures from literal JSON.
package netlistio

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/daedaleanai/pnrcore/core"
)

type jsonPort struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Net       string `json:"net,omitempty"`
}

type jsonCell struct {
	Name   string            `json:"name"`
	Type   string            `json:"type"`
	Ports  []jsonPort        `json:"ports"`
	Attrs  map[string]string `json:"attrs,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

type jsonNet struct {
	Name   string            `json:"name"`
	Attrs  map[string]string `json:"attrs,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

type jsonDesign struct {
	Cells []jsonCell `json:"cells"`
	Nets  []jsonNet  `json:"nets"`
}

func directionOf(s string) (core.PortDirection, error) {
	switch s {
	case "in", "IN":
		return core.PortIn, nil
	case "out", "OUT":
		return core.PortOut, nil
	case "inout", "INOUT":
		return core.PortInout, nil
	default:
		return 0, errors.Errorf("unknown port direction %q", s)
	}
}

// Load reads a JSON netlist document from r into ctx, populating every
// net's Driver and Users before the placer runs. It is a minimal netlist
// loading convenience for the CLI and tests, not a general netlist format
// reader.
func Load(ctx *core.Context, r io.Reader) error {
	var design jsonDesign
	if err := json.NewDecoder(r).Decode(&design); err != nil {
		return errors.Wrap(err, "decoding netlist JSON")
	}

	for _, jn := range design.Nets {
		net := core.NewNet(ctx.Interner.Intern(jn.Name))
		for k, v := range jn.Attrs {
			net.Attrs[ctx.Interner.Intern(k)] = []byte(v)
		}
		for k, v := range jn.Params {
			net.Params[ctx.Interner.Intern(k)] = []byte(v)
		}
		if err := ctx.AddNet(net); err != nil {
			return err
		}
	}

	for _, jc := range design.Cells {
		cell := core.NewCell(ctx.Interner.Intern(jc.Name), ctx.Interner.Intern(jc.Type))
		for k, v := range jc.Attrs {
			cell.Attrs[ctx.Interner.Intern(k)] = []byte(v)
		}
		for k, v := range jc.Params {
			cell.Params[ctx.Interner.Intern(k)] = []byte(v)
		}

		for _, jp := range jc.Ports {
			dir, err := directionOf(jp.Direction)
			if err != nil {
				return errors.Wrapf(err, "cell %q port %q", jc.Name, jp.Name)
			}
			pi := cell.AddPort(ctx.Interner.Intern(jp.Name), dir)

			if jp.Net == "" {
				continue
			}
			net, ok := ctx.Net(ctx.Interner.Intern(jp.Net))
			if !ok {
				return errors.Errorf("cell %q port %q references unknown net %q", jc.Name, jp.Name, jp.Net)
			}
			pi.Net = net

			ref := core.PortRef{Cell: cell, Port: pi.Name}
			switch dir {
			case core.PortOut:
				if !net.Driver.IsNull() {
					return errors.Errorf("net %q already has a driver, cannot add %q.%q", jp.Net, jc.Name, jp.Name)
				}
				net.Driver = ref
			case core.PortIn, core.PortInout:
				net.Users = append(net.Users, ref)
			}
		}

		if err := ctx.AddCell(cell); err != nil {
			return err
		}
	}

	return nil
}
