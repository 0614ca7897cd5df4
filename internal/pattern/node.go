package pattern

// Kind identifies the variant behind a Node.
type Kind int

const (
	KindStitch Kind = iota
	KindBundle
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindBundle:
		return "bundle"
	case KindPattern:
		return "pattern"
	default:
		return "stitch"
	}
}

// Node is one entry in a stitch node list. The concrete types are *Stitch,
// *Bundle and *Pattern.
type Node interface {
	Kind() Kind
	// Repeat is the node's count, never less than 1.
	Repeat() int
	isNode()
}

// Stitch is a single catalog stitch worked Count times.
type Stitch struct {
	StitchID int
	Count    int
}

// Bundle is a fixed group of stitches worked into Consume base stitches.
// Items are restricted to plain stitches.
type Bundle struct {
	Items   []Stitch
	Consume int
	Count   int
	Label   string
}

// Pattern is a repeatable group of nodes of any kind.
type Pattern struct {
	Items List
	Count int
	Label string
}

func (*Stitch) isNode()  {}
func (*Bundle) isNode()  {}
func (*Pattern) isNode() {}

func (Stitch) Kind() Kind  { return KindStitch }
func (Bundle) Kind() Kind  { return KindBundle }
func (Pattern) Kind() Kind { return KindPattern }

func (s Stitch) Repeat() int  { return atLeastOne(s.Count) }
func (b Bundle) Repeat() int  { return atLeastOne(b.Count) }
func (p Pattern) Repeat() int { return atLeastOne(p.Count) }

// BaseConsume is the bundle's per-execution consume, defaulting to 1.
func (b Bundle) BaseConsume() int { return atLeastOne(b.Consume) }

// NewStitch returns a single stitch node.
func NewStitch(id int) *Stitch {
	return &Stitch{StitchID: id, Count: 1}
}

// NewBundle returns a bundle worked once into a single base stitch.
func NewBundle(items ...Stitch) *Bundle {
	return &Bundle{Items: items, Consume: 1, Count: 1}
}

// NewPattern returns a pattern repeating items count times.
func NewPattern(count int, items ...Node) *Pattern {
	return &Pattern{Items: items, Count: atLeastOne(count)}
}

// Repeated returns the compact "stitch id worked count times" wrapper used by
// the editor and the canonicalizer.
func Repeated(id, count int) *Pattern {
	return NewPattern(count, NewStitch(id))
}

// Children returns the nodes one level below n. Bundle items are returned as
// *Stitch nodes pointing into the bundle.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Pattern:
		return v.Items
	case *Bundle:
		out := make([]Node, len(v.Items))
		for i := range v.Items {
			out[i] = &v.Items[i]
		}
		return out
	default:
		return nil
	}
}

// RepeatedStitch reports whether n stands for "one stitch id worked k times":
// a bare stitch, or a pattern wrapping exactly one bare stitch.
func RepeatedStitch(n Node) (id, count int, ok bool) {
	switch v := n.(type) {
	case *Stitch:
		return v.StitchID, v.Repeat(), true
	case *Pattern:
		if len(v.Items) != 1 {
			return 0, 0, false
		}
		inner, isStitch := v.Items[0].(*Stitch)
		if !isStitch || inner == nil {
			return 0, 0, false
		}
		return inner.StitchID, v.Repeat() * inner.Repeat(), true
	default:
		return 0, 0, false
	}
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Stitch:
		if v == nil {
			return nil
		}
		cp := *v
		return &cp
	case *Bundle:
		if v == nil {
			return nil
		}
		cp := *v
		cp.Items = append([]Stitch(nil), v.Items...)
		return &cp
	case *Pattern:
		if v == nil {
			return nil
		}
		cp := *v
		cp.Items = CloneList(v.Items)
		return &cp
	default:
		return nil
	}
}

// CloneList deep-copies every node in list.
func CloneList(list []Node) List {
	if list == nil {
		return nil
	}
	out := make(List, len(list))
	for i, n := range list {
		out[i] = Clone(n)
	}
	return out
}

// Equal reports whether a and b are structurally identical after count
// defaults are applied.
func Equal(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Stitch:
		y, ok := b.(*Stitch)
		return ok && x.StitchID == y.StitchID && x.Repeat() == y.Repeat()
	case *Bundle:
		y, ok := b.(*Bundle)
		if !ok || x.BaseConsume() != y.BaseConsume() || x.Repeat() != y.Repeat() || x.Label != y.Label {
			return false
		}
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if x.Items[i].StitchID != y.Items[i].StitchID || x.Items[i].Repeat() != y.Items[i].Repeat() {
				return false
			}
		}
		return true
	case *Pattern:
		y, ok := b.(*Pattern)
		return ok && x.Repeat() == y.Repeat() && x.Label == y.Label && Equal(x.Items, y.Items)
	default:
		return false
	}
}

func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Stitch:
		return v == nil
	case *Bundle:
		return v == nil
	case *Pattern:
		return v == nil
	default:
		return false
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
