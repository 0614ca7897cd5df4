package selection

// Range is an index range at one tree level. A nil Start or End means no
// selection at that level.
type Range struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

// Path is a root-to-leaf list of ranges.
type Path []Range

// None returns an empty range.
func None() Range { return Range{} }

// Single selects exactly index.
func Single(index int) Range {
	start, end := index, index
	return Range{Start: &start, End: &end}
}

// Span selects every index between a and b inclusive.
func Span(a, b int) Range {
	start, end := min(a, b), max(a, b)
	return Range{Start: &start, End: &end}
}

// IsNone reports whether r selects nothing.
func (r Range) IsNone() bool { return r.Start == nil || r.End == nil }

// IsSingle reports whether r selects exactly one index.
func (r Range) IsSingle() bool { return !r.IsNone() && *r.Start == *r.End }

// IsRange reports whether r selects more than one index.
func (r Range) IsRange() bool { return !r.IsNone() && *r.Start != *r.End }

// IsFull reports whether r covers all total indices.
func (r Range) IsFull(total int) bool {
	return !r.IsNone() && *r.Start == 0 && *r.End == total-1
}

// IsPartial reports whether r is a multi-index range short of the full list.
func (r Range) IsPartial(total int) bool { return r.IsRange() && !r.IsFull(total) }

// Contains reports whether index lies inside r.
func (r Range) Contains(index int) bool {
	if r.IsNone() {
		return false
	}
	lo, hi := min(*r.Start, *r.End), max(*r.Start, *r.End)
	return index >= lo && index <= hi
}

// Index returns the start index, or -1 when r is empty.
func (r Range) Index() int {
	if r.IsNone() {
		return -1
	}
	return *r.Start
}

// Toggle applies a click on index: an empty range selects it, a single
// selection widens to cover it, and a click inside an existing span clears it.
func (r Range) Toggle(index int) Range {
	switch {
	case r.IsNone():
		return Single(index)
	case r.IsSingle():
		return Span(*r.Start, index)
	case r.Contains(index):
		return None()
	default:
		return Span(min(*r.Start, index), max(*r.End, index))
	}
}
