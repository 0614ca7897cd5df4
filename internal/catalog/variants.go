package catalog

import (
	"fmt"
	"strings"
)

// Variant selects the increase or decrease form of a base stitch.
type Variant int

const (
	Increase Variant = iota
	Decrease
)

func (v Variant) String() string {
	switch v {
	case Decrease:
		return "decrease"
	default:
		return "increase"
	}
}

// ParseVariant accepts "increase"/"inc" and "decrease"/"dec".
func ParseVariant(value string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "increase", "inc":
		return Increase, nil
	case "decrease", "dec":
		return Decrease, nil
	default:
		return Increase, fmt.Errorf("unknown variant %q (want increase or decrease)", value)
	}
}

type variantPair struct {
	increase int
	decrease int
}

var variants = map[int]variantPair{
	SingleCrochet:     {increase: SingleCrochetIncrease, decrease: SingleCrochetDecrease},
	HalfDoubleCrochet: {increase: HalfDoubleCrochetIncrease, decrease: HalfDoubleCrochetDecrease},
	DoubleCrochet:     {increase: DoubleCrochetIncrease, decrease: DoubleCrochetDecrease},
	TrebleCrochet:     {increase: TrebleCrochetIncrease, decrease: TrebleCrochetDecrease},
}

// VariantOf returns the registered increase or decrease stitch for base.
func VariantOf(base int, v Variant) (int, bool) {
	pair, ok := variants[base]
	if !ok {
		return 0, false
	}
	if v == Decrease {
		return pair.decrease, true
	}
	return pair.increase, true
}

// HasVariants reports whether base is one of the techniques with registered
// increase/decrease forms.
func HasVariants(base int) bool {
	_, ok := variants[base]
	return ok
}
