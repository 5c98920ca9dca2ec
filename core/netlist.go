package core

// PortDirection classifies a cell port.
type PortDirection int

const (
	PortIn PortDirection = iota
	PortOut
	PortInout
)

func (d PortDirection) String() string {
	switch d {
	case PortIn:
		return "IN"
	case PortOut:
		return "OUT"
	case PortInout:
		return "INOUT"
	default:
		return "?"
	}
}

// Strength is an ordinal tag on a binding describing who placed it and who
// may overwrite it. A bind may only overwrite a strictly lower strength;
// equal strength never displaces.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthStrong
	StrengthPlacer
	StrengthUser
)

func (s Strength) String() string {
	switch s {
	case StrengthNone:
		return "NONE"
	case StrengthWeak:
		return "WEAK"
	case StrengthStrong:
		return "STRONG"
	case StrengthPlacer:
		return "PLACER"
	case StrengthUser:
		return "USER"
	default:
		return "?"
	}
}

// PortRef names a single port on a cell instance, or the unconnected/null
// reference when Cell is nil. Budget is writable by the timing analyser
// (not by the placer, beyond the initial assignment in AssignBudgets).
type PortRef struct {
	Cell   *Cell
	Port   Id
	Budget Delay
}

// IsNull reports whether this is the unconnected reference.
func (p PortRef) IsNull() bool { return p.Cell == nil }

// PortInfo describes one port of a Cell: its name, the net it is linked to
// (nil if unconnected), and its direction.
type PortInfo struct {
	Name Id
	Net  *Net
	Type PortDirection
}

// WireBinding records, for one wire carrying a net, the pip (if any) driving
// it and the strength of that binding. A null Pip means the wire is driven
// directly by a bel pin.
type WireBinding struct {
	Pip      PipId
	Strength Strength
}

// Net is a logical signal: at most one driver port, any number of user
// ports in declared order, and the set of routing wires currently carrying
// it.
type Net struct {
	Name   Id
	Driver PortRef
	Users  []PortRef

	Attrs  map[Id][]byte
	Params map[Id][]byte

	Wires map[WireId]WireBinding
}

// NewNet allocates an empty, undriven net named name.
func NewNet(name Id) *Net {
	return &Net{
		Name:   name,
		Attrs:  map[Id][]byte{},
		Params: map[Id][]byte{},
		Wires:  map[WireId]WireBinding{},
	}
}

// Cell is a netlist instance: a type, a set of ports, free-form attributes
// and parameters, and (once placed) a bound bel.
type Cell struct {
	Name Id
	Type Id

	Ports map[Id]*PortInfo

	Attrs  map[Id][]byte
	Params map[Id][]byte

	Bel         BelId
	BelStrength Strength

	// Pins optionally remaps logical cell ports to physical bel pin names.
	Pins map[Id]Id
}

// NewCell allocates an unplaced cell of the given name and type.
func NewCell(name, typ Id) *Cell {
	return &Cell{
		Name:   name,
		Type:   typ,
		Ports:  map[Id]*PortInfo{},
		Attrs:  map[Id][]byte{},
		Params: map[Id][]byte{},
		Pins:   map[Id]Id{},
	}
}

// IsPlaced reports whether the cell has a bound bel.
func (c *Cell) IsPlaced() bool {
	return !c.Bel.IsNull()
}

// AddPort registers a port on the cell. It is a bug (not a user-facing
// error) to register the same port name twice; callers are the netlist
// loader and test fixtures, which control this themselves.
func (c *Cell) AddPort(name Id, dir PortDirection) *PortInfo {
	pi := &PortInfo{Name: name, Type: dir}
	c.Ports[name] = pi
	return pi
}
