package pattern

import "stitchbook/internal/catalog"

// Stats is a consume/generate pair.
type Stats struct {
	Consume  int `json:"consume"`
	Generate int `json:"generate"`
}

// Add returns the element-wise sum.
func (s Stats) Add(o Stats) Stats {
	return Stats{Consume: s.Consume + o.Consume, Generate: s.Generate + o.Generate}
}

// Scale multiplies both fields by k.
func (s Stats) Scale(k int) Stats {
	return Stats{Consume: s.Consume * k, Generate: s.Generate * k}
}

// Of returns the total stats of n including its own count. Nil and unknown
// nodes contribute nothing.
func Of(n Node) Stats {
	if isNil(n) {
		return Stats{}
	}
	return PerRepeat(n).Scale(n.Repeat())
}

// PerRepeat returns the stats of one execution of n, ignoring its count.
func PerRepeat(n Node) Stats {
	switch v := n.(type) {
	case *Stitch:
		if v == nil {
			return Stats{}
		}
		return stitchStats(v.StitchID, 1)
	case *Bundle:
		if v == nil {
			return Stats{}
		}
		var generate int
		for _, item := range v.Items {
			generate += stitchStats(item.StitchID, item.Repeat()).Generate
		}
		return Stats{Consume: v.BaseConsume(), Generate: generate}
	case *Pattern:
		if v == nil {
			return Stats{}
		}
		return ListStats(v.Items, 1)
	default:
		return Stats{}
	}
}

// ListStats sums the totals of every node in list and scales the result by
// outerRepeat. Values below 1 read as 1.
func ListStats(list []Node, outerRepeat int) Stats {
	var total Stats
	for _, n := range list {
		total = total.Add(Of(n))
	}
	return total.Scale(atLeastOne(outerRepeat))
}

func stitchStats(id, count int) Stats {
	s, ok := catalog.Lookup(id)
	if !ok {
		return Stats{}
	}
	return Stats{Consume: s.Consume, Generate: s.Generate}.Scale(atLeastOne(count))
}
