package view

// Momentum bar constants, lifted unchanged from the site's "fake
// distribution": five slots, XP capped at 500, each slot scaled by
// 0.6 + 0.1*index and divided by 5, clamped to 100. The numbers are
// arbitrary visual tuning, not gameplay.
const (
	momentumSlots = 5
	momentumCap   = 500
)

// momentum computes the cosmetic bar heights for the given XP.
func momentum(xp int) []float64 {
	base := xp
	if base > momentumCap {
		base = momentumCap
	}
	if base < 0 {
		base = 0
	}

	slice := float64(base) / momentumSlots
	heights := make([]float64, momentumSlots)
	for i := range heights {
		factor := 0.6 + 0.1*float64(i)
		h := slice * factor / 5
		if h > 100 {
			h = 100
		}
		heights[i] = h
	}
	return heights
}
