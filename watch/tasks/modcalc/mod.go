// Package modcalc is the MOD calculator app: it adjusts the oxygen
// percentage of a breathing gas and shows the maximum operating depth.
package modcalc

// MaxPartialPressure is the oxygen partial pressure limit, in bar, the
// depth is computed for.
const MaxPartialPressure = 1.4

const (
	MinPercent     = 0
	MaxPercent     = 100
	DefaultPercent = 21

	// PersistKey is the store slot holding the percentage.
	PersistKey = 1
)

// MOD returns the maximum operating depth in feet for a gas with
// percentOxygen percent oxygen, truncated toward zero.
//
// Percentages below 1 are computed as 1, so MOD(0) == MOD(1).
func MOD(percentOxygen int) int {
	p := percentOxygen
	if p < 1 {
		p = 1
	}
	ata := float64(100 * (MaxPartialPressure / float64(p)))
	return int(float64(ata-1) * 33)
}
