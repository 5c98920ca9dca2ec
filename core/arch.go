package core

// BelId, WireId, PipId, GroupId and DecalId are lightweight, value-copyable
// handles issued by an ArchCatalog. Each is backed by an integer so the zero
// value is a distinguished null and the type satisfies constraints.Ordered,
// letting util.OrderedMap/OrderedKeys drive deterministic iteration over
// binding-store maps keyed by them.
type (
	BelId   int32
	WireId  int32
	PipId   int32
	GroupId int32
	DecalId int32
)

// IsNull reports whether the handle is the distinguished null value.
func (b BelId) IsNull() bool   { return b == 0 }
func (w WireId) IsNull() bool  { return w == 0 }
func (p PipId) IsNull() bool   { return p == 0 }
func (g GroupId) IsNull() bool { return g == 0 }
func (d DecalId) IsNull() bool { return d == 0 }

// ArchCatalog is the opaque, per-architecture provider of bels, wires, pips,
// their geometry and delays, and the single cell-level design-rule-check
// predicate the placer consults. Every method is pure with respect to
// catalog state; the only side effects a placer phase performs live in the
// Context's binding store.
//
// IsValidBelForCell is threaded a read-only *Context so an implementation
// can consult currently-bound resources (e.g. a cap on distinct clocks per
// region) while remaining a pure function of (catalog, context, arguments).
// The availability checks (CheckBelAvail and friends) are methods of Context
// itself, which consults BelExclusionGroup — see DESIGN.md for why binding
// state lives on Context rather than here.
type ArchCatalog interface {
	// Geometry and enumeration.
	BelsByTile(x, y int) []BelId
	Bels() []BelId
	BelType(bel BelId) Id
	BelName(bel BelId) string
	GetBelByName(name string) BelId
	BelLocation(bel BelId) (x, y, z int)
	BelPinWire(bel BelId, pin Id) WireId
	BelPins(bel BelId) []Id
	BelGlobalBuf(bel BelId) bool
	EstimatePosition(bel BelId) (fx, fy float64)

	Wires() []WireId
	WireName(wire WireId) string
	Pips() []PipId
	PipSrc(p PipId) WireId
	PipDst(p PipId) WireId
	PipsUphill(w WireId) []PipId
	PipsDownhill(w WireId) []PipId

	// Delay model.
	WireDelay(w WireId) Delay
	PipDelay(p PipId) Delay
	EstimateDelay(src, dst WireId) Delay
	PredictDelay(net *Net, sink PortRef) Delay
	GetDelayEpsilon() Delay
	GetRipupDelayPenalty() Delay
	GetCellDelay(cell *Cell, from, to Id) (DelayInfo, bool)
	GetBudgetOverride(net *Net, sink PortRef, budget Delay) Delay

	// Clocking.
	GetPortClock(cell *Cell, port Id) Id
	IsClockPort(cell *Cell, port Id) bool

	// Design-rule check and resource exclusion.
	IsValidBelForCell(ctx *Context, cell *Cell, bel BelId) bool
	IsBelLocationValid(bel BelId) bool
	BelExclusionGroup(bel BelId) GroupId

	// Integrity/checksum support.
	BelChecksum(bel BelId) uint32
	WireChecksum(wire WireId) uint32
	PipChecksum(pip PipId) uint32
}
