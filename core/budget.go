package core

import "math"

// sentinelBudget stands in for "no user frequency target": the placer
// optimises for maximum achievable frequency rather than meeting a budget.
const sentinelBudget = Delay(math.MaxInt64)

// AssignBudgets initialises every sink's Budget before placement: to
// 1/TargetFreqHz if the user set a target frequency, otherwise to
// sentinelBudget. The architecture's GetBudgetOverride may further clamp
// each sink's budget.
func AssignBudgets(ctx *Context) {
	var base Delay
	if ctx.TargetFreqHz > 0 {
		base = Delay(1e12 / ctx.TargetFreqHz) // picoseconds per cycle
	} else {
		base = sentinelBudget
	}

	for _, net := range ctx.Nets() {
		for i := range net.Users {
			net.Users[i].Budget = ctx.Arch.GetBudgetOverride(net, net.Users[i], base)
		}
	}
}
