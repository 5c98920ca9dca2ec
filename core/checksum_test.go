package core

import "testing"

func buildSingleLutDesign(t *testing.T) *Context {
	ctx, _ := newFixture(2, 2, "LUT")
	lut := addCell(t, ctx, "lut0", "LUT")
	topNet := addNet(t, ctx, "out")
	connect(ctx, topNet, lut)
	return ctx
}

func TestChecksumStableAcrossInvocations(t *testing.T) {
	ctx1 := buildSingleLutDesign(t)
	if ok, err := PlaceConstraints(ctx1); !ok || err != nil {
		t.Fatalf("placeConstraints: ok=%v err=%v", ok, err)
	}
	if ok, err := PlaceHeuristic(ctx1); !ok || err != nil {
		t.Fatalf("placeHeuristic: ok=%v err=%v", ok, err)
	}

	ctx2 := buildSingleLutDesign(t)
	if ok, err := PlaceConstraints(ctx2); !ok || err != nil {
		t.Fatalf("placeConstraints: ok=%v err=%v", ok, err)
	}
	if ok, err := PlaceHeuristic(ctx2); !ok || err != nil {
		t.Fatalf("placeHeuristic: ok=%v err=%v", ok, err)
	}

	if ctx1.Checksum() != ctx2.Checksum() {
		t.Fatalf("two runs over identical input diverged: %08x vs %08x", ctx1.Checksum(), ctx2.Checksum())
	}
}

func TestChecksumStableUnderMapReordering(t *testing.T) {
	ctx := buildSingleLutDesign(t)
	c1 := ctx.Checksum()

	// Attrs/Params are maps; re-derive the same content through a different
	// insertion order and confirm the digest is unaffected.
	lut, _ := ctx.Cell(ctx.Interner.Intern("lut0"))
	lut.Attrs[ctx.Interner.Intern("z")] = []byte("1")
	lut.Attrs[ctx.Interner.Intern("a")] = []byte("2")
	c2 := ctx.Checksum()

	fresh := NewCell(ctx.Interner.Intern("lut0-fresh"), ctx.Interner.Intern("LUT"))
	fresh.Attrs[ctx.Interner.Intern("a")] = []byte("2")
	fresh.Attrs[ctx.Interner.Intern("z")] = []byte("1")
	// Can't swap a cell in place without disturbing c1; just confirm the
	// per-cell attrs digest itself is order independent.
	h1 := bytesMapChecksum(lut.Attrs)
	h2 := bytesMapChecksum(fresh.Attrs)
	if h1 != h2 {
		t.Fatalf("attrs digest depends on insertion order: %08x vs %08x", h1, h2)
	}
	if c1 == c2 {
		t.Fatalf("expected the checksum to change once attrs were added")
	}
}

func TestIntegrityCheckPasses(t *testing.T) {
	ctx := buildSingleLutDesign(t)
	if ok, err := PlaceConstraints(ctx); !ok || err != nil {
		t.Fatalf("placeConstraints: ok=%v err=%v", ok, err)
	}
	if ok, err := PlaceHeuristic(ctx); !ok || err != nil {
		t.Fatalf("placeHeuristic: ok=%v err=%v", ok, err)
	}
	if err := ctx.Check(); err != nil {
		t.Fatalf("check() failed on a well-formed design: %s", err)
	}
}

func TestIntegrityCheckDetectsStrandedPipBinding(t *testing.T) {
	ctx, arch := newFixture(2, 1, "LUT")
	net := addNet(t, ctx, "n0")

	var pip PipId
	for _, p := range arch.Pips() {
		pip = p
		break
	}
	wire := arch.PipDst(pip)

	// Manually corrupt state: record the wire as pip-driven in net.Wires
	// without registering the binding in the pip binding store.
	net.Wires[wire] = WireBinding{Pip: pip, Strength: StrengthStrong}
	ctx.wireBindings[wire] = wireBinding{Net: net.Name, Strength: StrengthStrong}

	err := ctx.Check()
	if err == nil {
		t.Fatalf("expected check() to detect the missing pip binding")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindInvariantFailure {
		t.Fatalf("expected InvariantFailure, got %v", err)
	}
}
