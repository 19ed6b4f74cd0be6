package ism

// Quadrant is one of the four MICMAC driving/dependence classes.
type Quadrant string

const (
	// QuadrantAutonomous: low driving, low dependence, weakly connected.
	QuadrantAutonomous Quadrant = "autonomous"
	// QuadrantDependent: low driving, high dependence, outcome factors.
	QuadrantDependent Quadrant = "dependent"
	// QuadrantLinkage: high driving, high dependence, unstable relays.
	QuadrantLinkage Quadrant = "linkage"
	// QuadrantDriver: high driving, low dependence, independent drivers.
	QuadrantDriver Quadrant = "driver"
)

// Power is the MICMAC classification of a single factor.
type Power struct {
	Factor     int      `json:"factor" bson:"factor"`         // factor index
	Driving    int      `json:"driving" bson:"driving"`       // FRM row sum, includes self
	Dependence int      `json:"dependence" bson:"dependence"` // FRM column sum, includes self
	Quadrant   Quadrant `json:"quadrant" bson:"quadrant"`
}

// Classify computes per-factor driving power, dependence power, and
// quadrant assignment from the Final Reachability Matrix, returning the
// points in factor-index order along with the split threshold.
//
// The split point is N/2, real-valued and never rounded (N=11 splits at
// 5.5, N=12 at 6.0). A power at or below the split is "low" and a power
// strictly above it is "high"; this boundary convention is part of the
// contract: flipping it silently reclassifies every factor whose power
// equals the split. Both powers include the reflexive self-edge, so the
// minimum value is 1.
func Classify(frm Matrix) ([]Power, float64) {
	n := len(frm)
	split := float64(n) / 2

	points := make([]Power, n)
	for i := 0; i < n; i++ {
		driving := frm.RowSum(i)
		dependence := frm.ColSum(i)
		points[i] = Power{
			Factor:     i,
			Driving:    driving,
			Dependence: dependence,
			Quadrant:   quadrantFor(driving, dependence, split),
		}
	}

	return points, split
}

func quadrantFor(driving, dependence int, split float64) Quadrant {
	high := func(power int) bool { return float64(power) > split }
	switch {
	case !high(driving) && !high(dependence):
		return QuadrantAutonomous
	case !high(driving):
		return QuadrantDependent
	case high(dependence):
		return QuadrantLinkage
	default:
		return QuadrantDriver
	}
}
