package stats

import "github.com/lucasb-eyer/go-colorful"

// HeatColor maps a day's total hours onto a hex color, blending in HCL
// space from a faint base toward a saturated peak at maxHours and above.
// The blend is perceptually even, which keeps adjacent intensity steps
// distinguishable in the heat map.
func HeatColor(hours, maxHours float64, lowHex, highHex string) string {
	low, errLow := colorful.Hex(lowHex)
	high, errHigh := colorful.Hex(highHex)
	if errLow != nil || errHigh != nil {
		return lowHex
	}

	if maxHours <= 0 {
		maxHours = 1
	}
	t := hours / maxHours
	if t <= 0 {
		return low.Hex()
	}
	if t >= 1 {
		return high.Hex()
	}

	return low.BlendHcl(high, t).Clamped().Hex()
}

// HeatLevel buckets a day's total into 0..levels-1 for block rendering.
func HeatLevel(hours, maxHours float64, levels int) int {
	if levels <= 1 || hours <= 0 {
		return 0
	}
	if maxHours <= 0 {
		maxHours = 1
	}
	level := int(hours / maxHours * float64(levels-1))
	if hours > 0 && level == 0 {
		level = 1
	}
	if level > levels-1 {
		level = levels - 1
	}
	return level
}
