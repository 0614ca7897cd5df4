package pattern

import (
	"strconv"
	"strings"

	"stitchbook/internal/catalog"
)

// Describe renders n in the compact written notation used on pattern charts,
// for example "3X", "(X, T)" or "[2X, V] * 6". Unknown stitches render as "?".
func Describe(n Node) string {
	switch v := n.(type) {
	case *Stitch:
		if v == nil {
			return ""
		}
		s, ok := catalog.Lookup(v.StitchID)
		if !ok {
			return "?"
		}
		return withCount(v.Repeat(), s.Symbol)
	case *Bundle:
		if v == nil {
			return ""
		}
		symbols := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			s, ok := catalog.Lookup(item.StitchID)
			if !ok {
				continue
			}
			for range item.Repeat() {
				symbols = append(symbols, s.Symbol)
			}
		}
		return withCount(v.Repeat(), "("+strings.Join(symbols, ", ")+")")
	case *Pattern:
		if v == nil {
			return ""
		}
		if id, total, ok := RepeatedStitch(v); ok {
			s, known := catalog.Lookup(id)
			if !known {
				return ""
			}
			return withCount(total, s.Symbol)
		}
		return "[" + DescribeList(v.Items) + "] * " + strconv.Itoa(v.Repeat())
	default:
		return ""
	}
}

// DescribeList joins Describe over list with ", ".
func DescribeList(list []Node) string {
	parts := make([]string, 0, len(list))
	for _, n := range list {
		if isNil(n) {
			continue
		}
		parts = append(parts, Describe(n))
	}
	return strings.Join(parts, ", ")
}

func withCount(count int, text string) string {
	if count > 1 {
		return strconv.Itoa(count) + text
	}
	return text
}
