package core

// belAttr is the cell attribute the constraint placer reads and the
// heuristic placer writes back.
const belAttr = "BEL"

// PlaceConstraints honours user-pinned cells: every cell carrying a "BEL"
// attribute is resolved to a bel, type-checked against the cell, and bound
// at StrengthUser. All such cells are considered fixed and are ignored by
// subsequent passes.
//
// Errors of kind UnknownBel and TypeMismatch are downgradable under
// ctx.Force: the offending cell is skipped, a warning is logged by the
// caller, and the phase keeps going. On a non-downgraded failure no further
// mutation happens for the remaining cells in this call; cells already
// bound earlier in the loop stay bound.
func PlaceConstraints(ctx *Context) (bool, error) {
	ok := true
	for _, cell := range ctx.Cells() {
		raw, has := cell.Attrs[ctx.Interner.Intern(belAttr)]
		if !has {
			continue
		}
		belName := string(raw)

		bel := ctx.Arch.GetBelByName(belName)
		if bel.IsNull() {
			err := newErrorf(KindUnknownBel, "no bel named %q on this chip (processing BEL attribute on cell %q)", belName, ctx.Interner.Str(cell.Name))
			if !ctx.Force {
				return false, err
			}
			ok = false
			continue
		}

		belType := ctx.Arch.BelType(bel)
		if belType != cell.Type {
			err := newErrorf(KindTypeMismatch, "bel %q of type %q does not match cell %q of type %q",
				belName, ctx.Interner.Str(belType), ctx.Interner.Str(cell.Name), ctx.Interner.Str(cell.Type))
			if !ctx.Force {
				return false, err
			}
			ok = false
			continue
		}

		if err := ctx.BindBel(bel, cell.Name, StrengthUser); err != nil {
			// AlreadyBound/NotBound are binding-store preconditions: always fatal.
			return false, err
		}
	}
	return ok, nil
}
