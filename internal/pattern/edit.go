package pattern

import (
	"fmt"
	"strings"

	"stitchbook/internal/catalog"
)

// Mode selects how AppendStitch attaches a new stitch.
type Mode int

const (
	// ModeNormal extends a trailing run of the same stitch or appends a new one.
	ModeNormal Mode = iota
	// ModeSameStitch works the stitch into the same base stitch as the
	// previous one, accumulating a consume=1 bundle.
	ModeSameStitch
)

func (m Mode) String() string {
	if m == ModeSameStitch {
		return "same-stitch"
	}
	return "normal"
}

// ParseMode accepts "normal" and "same-stitch".
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "normal":
		return ModeNormal, nil
	case "same-stitch", "same_stitch", "same":
		return ModeSameStitch, nil
	default:
		return ModeNormal, fmt.Errorf("unknown append mode %q (want normal or same-stitch)", value)
	}
}

// Adjust requests an increase or decrease on the last stitch of a list.
type Adjust struct {
	Variant  catalog.Variant
	StitchID int
}

// AppendStitch adds stitchID to the end of list and returns the new list.
// The input slice is not modified; the trailing node is replaced, not edited.
func AppendStitch(list []Node, stitchID int, mode Mode) List {
	out := make(List, len(list), len(list)+1)
	copy(out, list)
	if mode == ModeSameStitch {
		return appendSameStitch(out, stitchID)
	}

	if len(out) > 0 {
		last := len(out) - 1
		switch v := out[last].(type) {
		case *Stitch:
			if v != nil && v.StitchID == stitchID {
				out[last] = Repeated(stitchID, v.Repeat()+1)
				return out
			}
		case *Pattern:
			if v != nil && len(v.Items) == 1 {
				inner, ok := v.Items[0].(*Stitch)
				if ok && inner != nil && inner.StitchID == stitchID && inner.Repeat() == 1 {
					cp := Clone(v).(*Pattern)
					cp.Count = v.Repeat() + 1
					out[last] = cp
					return out
				}
			}
		}
	}
	return append(out, NewStitch(stitchID))
}

func appendSameStitch(out List, stitchID int) List {
	if len(out) > 0 {
		last := len(out) - 1
		if b := unwrapSameStitchBundle(out[last]); b != nil {
			cp := Clone(b).(*Bundle)
			cp.Items = append(cp.Items, Stitch{StitchID: stitchID, Count: 1})
			cp.Consume = 1
			cp.Count = cp.Repeat()
			out[last] = cp
			return out
		}
	}
	return append(out, NewBundle(Stitch{StitchID: stitchID, Count: 1}))
}

// unwrapSameStitchBundle finds the consume=1 bundle behind n. Older documents
// wrapped it as pattern{bundle} or pattern{pattern{bundle}}, each with count 1.
func unwrapSameStitchBundle(n Node) *Bundle {
	for depth := 0; depth <= 2; depth++ {
		switch v := n.(type) {
		case *Bundle:
			if v != nil && v.BaseConsume() == 1 {
				return v
			}
			return nil
		case *Pattern:
			if v == nil || v.Repeat() != 1 || len(v.Items) != 1 {
				return nil
			}
			n = v.Items[0]
		default:
			return nil
		}
	}
	return nil
}

// ApplyAdjust turns the last stitch of list into its increase or decrease
// variant. When the requested increase names a different stitch, the last
// stitch and the requested one are worked together as a consume=1 bundle.
// Requests that do not apply return list unchanged.
func ApplyAdjust(list []Node, adj Adjust) List {
	out, target, ok := splitTrailingStitch(list)
	if !ok {
		return List(list)
	}
	current := out[target].(*Stitch)

	if adj.Variant == catalog.Decrease {
		if current.StitchID != adj.StitchID {
			return List(list)
		}
		id, ok := catalog.VariantOf(adj.StitchID, catalog.Decrease)
		if !ok {
			return List(list)
		}
		out[target] = NewStitch(id)
		return out
	}

	if current.StitchID == adj.StitchID {
		id, ok := catalog.VariantOf(adj.StitchID, catalog.Increase)
		if !ok {
			return List(list)
		}
		out[target] = NewStitch(id)
		return out
	}

	if _, known := catalog.Lookup(current.StitchID); !known {
		return List(list)
	}
	if _, known := catalog.Lookup(adj.StitchID); !known {
		return List(list)
	}
	out[target] = NewBundle(
		Stitch{StitchID: current.StitchID, Count: 1},
		Stitch{StitchID: adj.StitchID, Count: 1},
	)
	return out
}

// splitTrailingStitch copies list and rewrites its tail so the final entry is
// a single bare stitch, returning that entry's index. Trailing bundles and
// patterns that do not end in a stitch report ok=false.
func splitTrailingStitch(list []Node) (List, int, bool) {
	if len(list) == 0 {
		return nil, 0, false
	}
	out := make(List, len(list), len(list)+1)
	copy(out, list)
	last := len(out) - 1

	switch v := out[last].(type) {
	case *Stitch:
		if v == nil {
			return nil, 0, false
		}
		if v.Repeat() == 1 {
			return out, last, true
		}
		out[last] = &Stitch{StitchID: v.StitchID, Count: v.Repeat() - 1}
		return append(out, NewStitch(v.StitchID)), last + 1, true

	case *Pattern:
		if v == nil || len(v.Items) == 0 {
			return nil, 0, false
		}
		if id, total, single := RepeatedStitch(v); single && total > 1 {
			out[last] = &Pattern{Items: List{NewStitch(id)}, Count: total - 1, Label: v.Label}
			return append(out, NewStitch(id)), last + 1, true
		}
		if v.Repeat() != 1 {
			return nil, 0, false
		}
		tail, ok := v.Items[len(v.Items)-1].(*Stitch)
		if !ok || tail == nil {
			return nil, 0, false
		}
		remaining := CloneList(v.Items[:len(v.Items)-1])
		if tail.Repeat() > 1 {
			remaining = append(remaining, &Stitch{StitchID: tail.StitchID, Count: tail.Repeat() - 1})
		}
		if len(remaining) == 0 {
			out[last] = NewStitch(tail.StitchID)
			return out, last, true
		}
		out[last] = &Pattern{Items: remaining, Count: 1, Label: v.Label}
		return append(out, NewStitch(tail.StitchID)), last + 1, true

	default:
		return nil, 0, false
	}
}
