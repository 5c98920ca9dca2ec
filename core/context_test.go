package core

import "testing"

func TestBindUnbindBelRoundTrip(t *testing.T) {
	ctx, arch := newFixture(2, 2, "LUT")
	cell := addCell(t, ctx, "c0", "LUT")
	bel := arch.GetBelByName("X0Y0/LUT")

	if err := ctx.BindBel(bel, cell.Name, StrengthPlacer); err != nil {
		t.Fatalf("bindBel: %s", err)
	}
	before := ctx.belBindings[bel]

	if err := ctx.UnbindBel(bel); err != nil {
		t.Fatalf("unbindBel: %s", err)
	}
	if err := ctx.BindBel(bel, cell.Name, StrengthPlacer); err != nil {
		t.Fatalf("rebindBel: %s", err)
	}

	after := ctx.belBindings[bel]
	if before != after {
		t.Fatalf("round-trip did not restore exact binding-store state: %+v vs %+v", before, after)
	}
	if cell.Bel != bel || cell.BelStrength != StrengthPlacer {
		t.Fatalf("cell dual pointer not restored: bel=%d strength=%s", cell.Bel, cell.BelStrength)
	}
}

func TestBindBelAlreadyBoundSameOrHigherStrength(t *testing.T) {
	ctx, arch := newFixture(2, 2, "LUT")
	a := addCell(t, ctx, "a", "LUT")
	b := addCell(t, ctx, "b", "LUT")
	bel := arch.GetBelByName("X0Y0/LUT")

	if err := ctx.BindBel(bel, a.Name, StrengthPlacer); err != nil {
		t.Fatalf("bindBel: %s", err)
	}
	err := ctx.BindBel(bel, b.Name, StrengthPlacer)
	if kind, ok := KindOf(err); !ok || kind != KindAlreadyBound {
		t.Fatalf("expected AlreadyBound, got %v", err)
	}
}

func TestBindBelOverwritesLowerStrength(t *testing.T) {
	ctx, arch := newFixture(2, 2, "LUT")
	a := addCell(t, ctx, "a", "LUT")
	b := addCell(t, ctx, "b", "LUT")
	bel := arch.GetBelByName("X0Y0/LUT")

	if err := ctx.BindBel(bel, a.Name, StrengthWeak); err != nil {
		t.Fatalf("bindBel: %s", err)
	}
	if err := ctx.BindBel(bel, b.Name, StrengthUser); err != nil {
		t.Fatalf("expected a higher-strength bind to succeed, got %s", err)
	}
	if a.Bel != 0 {
		t.Fatalf("displaced cell should have its dual pointer cleared by the overwrite path")
	}
}

func TestUnbindBelNotBound(t *testing.T) {
	ctx, arch := newFixture(1, 1, "LUT")
	bel := arch.GetBelByName("X0Y0/LUT")
	err := ctx.UnbindBel(bel)
	if kind, ok := KindOf(err); !ok || kind != KindNotBound {
		t.Fatalf("expected NotBound, got %v", err)
	}
}

func TestBindPipThenCascadeOnUnbindWire(t *testing.T) {
	ctx, arch := newFixture(2, 1, "LUT")
	net := addNet(t, ctx, "n0")

	srcWire := arch.GetBelByName("X0Y0/LUT")
	_ = srcWire
	// Find a pip connecting the two tiles' OUT wires.
	var pip PipId
	for _, p := range arch.Pips() {
		pip = p
		break
	}
	dst := arch.PipDst(pip)

	if err := ctx.BindPip(pip, net.Name, StrengthStrong); err != nil {
		t.Fatalf("bindPip: %s", err)
	}
	if entry, ok := net.Wires[dst]; !ok || entry.Pip != pip {
		t.Fatalf("expected net.Wires[dst] to record the driving pip")
	}

	if err := ctx.UnbindWire(dst); err != nil {
		t.Fatalf("unbindWire: %s", err)
	}
	if _, bound := ctx.PipNet(pip); bound {
		t.Fatalf("unbindWire should cascade-release the driving pip")
	}
	if _, present := net.Wires[dst]; present {
		t.Fatalf("wire should be removed from net.Wires after unbind")
	}
}

func TestCheckBelAvailRespectsExclusionGroup(t *testing.T) {
	ctx, arch := newFixture(1, 1, "A", "B")
	a := addCell(t, ctx, "a", "A")
	belA := arch.GetBelByName("X0Y0/A")
	belB := arch.GetBelByName("X0Y0/B")
	arch.AddExclusionGroup(belA, belB)

	if !ctx.CheckBelAvail(belB) {
		t.Fatalf("belB should be available before anything is bound")
	}
	if err := ctx.BindBel(belA, a.Name, StrengthPlacer); err != nil {
		t.Fatalf("bindBel: %s", err)
	}
	if ctx.CheckBelAvail(belB) {
		t.Fatalf("belB should be excluded once belA (its stack-mate) is bound")
	}
}

func TestGetConflictingBelCell(t *testing.T) {
	ctx, arch := newFixture(1, 1, "A", "B")
	a := addCell(t, ctx, "a", "A")
	belA := arch.GetBelByName("X0Y0/A")
	belB := arch.GetBelByName("X0Y0/B")
	arch.AddExclusionGroup(belA, belB)

	if _, found := ctx.GetConflictingBelCell(belB); found {
		t.Fatalf("no conflict expected before anything is bound")
	}

	if err := ctx.BindBel(belA, a.Name, StrengthPlacer); err != nil {
		t.Fatalf("bindBel: %s", err)
	}
	blocker, found := ctx.GetConflictingBelCell(belB)
	if !found || blocker != a.Name {
		t.Fatalf("expected a to be reported as the sole blocker of belB, got %v, found=%v", blocker, found)
	}
}
