package core

import "testing"

func TestPlaceConstraintsHonoursUserBel(t *testing.T) {
	ctx, arch := newFixture(4, 8, "LUT_A")
	cell := addCell(t, ctx, "c0", "LUT_A")
	cell.Attrs[ctx.Interner.Intern(belAttr)] = []byte("X3Y7/LUT_A")

	ok, err := PlaceConstraints(ctx)
	if !ok || err != nil {
		t.Fatalf("placeConstraints: ok=%v err=%v", ok, err)
	}

	want := arch.GetBelByName("X3Y7/LUT_A")
	if cell.Bel != want {
		t.Fatalf("cell bound to %d, want %d (X3Y7/LUT_A)", cell.Bel, want)
	}
	if cell.BelStrength != StrengthUser {
		t.Fatalf("expected StrengthUser, got %s", cell.BelStrength)
	}
}

func TestPlaceConstraintsUnknownBel(t *testing.T) {
	ctx, _ := newFixture(2, 2, "LUT")
	cell := addCell(t, ctx, "c0", "LUT")
	cell.Attrs[ctx.Interner.Intern(belAttr)] = []byte("X99Y99/LUT")

	_, err := PlaceConstraints(ctx)
	kind, ok := KindOf(err)
	if !ok || kind != KindUnknownBel {
		t.Fatalf("expected UnknownBel, got %v", err)
	}
	if cell.IsPlaced() {
		t.Fatalf("cell should not have been mutated on failure")
	}
}

func TestPlaceConstraintsTypeMismatch(t *testing.T) {
	ctx, _ := newFixture(2, 2, "LUT", "FF")
	cell := addCell(t, ctx, "c0", "FF")
	cell.Attrs[ctx.Interner.Intern(belAttr)] = []byte("X0Y0/LUT")

	_, err := PlaceConstraints(ctx)
	kind, ok := KindOf(err)
	if !ok || kind != KindTypeMismatch {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
	if cell.IsPlaced() {
		t.Fatalf("cell should not have been mutated on failure")
	}
}

func TestPlaceConstraintsForceDowngradesAndSkips(t *testing.T) {
	ctx, arch := newFixture(2, 2, "LUT")
	ctx.Force = true
	bad := addCell(t, ctx, "bad", "LUT")
	bad.Attrs[ctx.Interner.Intern(belAttr)] = []byte("X99Y99/LUT")
	good := addCell(t, ctx, "good", "LUT")
	good.Attrs[ctx.Interner.Intern(belAttr)] = []byte("X0Y0/LUT")

	ok, err := PlaceConstraints(ctx)
	if err != nil {
		t.Fatalf("force should prevent a hard error, got %s", err)
	}
	if ok {
		t.Fatalf("expected ok=false since one cell's constraint failed")
	}
	if bad.IsPlaced() {
		t.Fatalf("the failing cell should remain unplaced")
	}
	if !good.IsPlaced() || good.Bel != arch.GetBelByName("X0Y0/LUT") {
		t.Fatalf("the valid cell should still be placed")
	}
}

func TestPhaseAResourceExhausted(t *testing.T) {
	ctx, _ := newFixture(1, 1, "LUT") // exactly one LUT bel on the whole chip
	addCell(t, ctx, "c0", "LUT")
	addCell(t, ctx, "c1", "LUT") // N+1'th cell of type T with only N bels

	if ok, err := PlaceConstraints(ctx); !ok || err != nil {
		t.Fatalf("placeConstraints: ok=%v err=%v", ok, err)
	}

	_, ok, err := placeConstrainedTypeBatches(ctx)
	if ok {
		t.Fatalf("expected placement to fail: too many LUTs used")
	}
	kind, isPE := KindOf(err)
	if !isPE || kind != KindResourceExhausted {
		t.Fatalf("expected ResourceExhausted, got %v", err)
	}

	c0, _ := ctx.Cell(ctx.Interner.Intern("c0"))
	if !c0.IsPlaced() {
		t.Fatalf("the first N cells should remain bound after the overflow")
	}
}

func TestPhaseAUnknownBelType(t *testing.T) {
	ctx, _ := newFixture(2, 2, "LUT") // the catalog has no FF bels at all
	addCell(t, ctx, "c0", "FF")

	if ok, err := PlaceConstraints(ctx); !ok || err != nil {
		t.Fatalf("placeConstraints: ok=%v err=%v", ok, err)
	}

	_, ok, err := placeConstrainedTypeBatches(ctx)
	if ok {
		t.Fatalf("expected placement to fail: no FF bels exist")
	}
	kind, isPE := KindOf(err)
	if !isPE || kind != KindUnknownBelType {
		t.Fatalf("expected UnknownBelType, got %v", err)
	}
}
