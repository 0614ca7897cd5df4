package pattern

import "stitchbook/internal/catalog"

// maxCanonicalPasses bounds the fixed-point loop. Each pass only shrinks the
// tree, so real inputs settle in two or three passes.
const maxCanonicalPasses = 32

// Canonicalize returns the structurally minimal form of list. The input is
// not modified and the result has the same ListStats.
//
// Rules, applied bottom-up until none fire:
//   - adjacent runs of the same stitch merge into one repeated wrapper
//   - a pattern whose only item is a single-child pattern folds into it
//   - a two-stitch bundle of one base technique becomes its increase stitch
func Canonicalize(list []Node) List {
	current := CloneList(list)
	for range maxCanonicalPasses {
		next := canonicalList(current)
		if Equal(next, current) {
			return next
		}
		current = next
	}
	return current
}

func canonicalList(list []Node) List {
	out := make(List, 0, len(list))
	for _, n := range list {
		if isNil(n) {
			continue
		}
		out = append(out, canonicalNode(n))
	}
	return mergeRuns(out)
}

func canonicalNode(n Node) Node {
	switch v := n.(type) {
	case *Bundle:
		return canonicalBundle(v)
	case *Pattern:
		return canonicalPattern(v)
	default:
		return n
	}
}

func canonicalBundle(b *Bundle) Node {
	if b.BaseConsume() != 1 || b.Repeat() != 1 || len(b.Items) != 2 {
		return b
	}
	first, second := b.Items[0], b.Items[1]
	if first.StitchID != second.StitchID || first.Repeat() != 1 || second.Repeat() != 1 {
		return b
	}
	if !catalog.HasVariants(first.StitchID) {
		return b
	}
	id, ok := catalog.VariantOf(first.StitchID, catalog.Increase)
	if !ok {
		return b
	}
	return NewStitch(id)
}

func canonicalPattern(p *Pattern) Node {
	count := p.Repeat()
	items := canonicalList(p.Items)
	for len(items) == 1 {
		child, ok := items[0].(*Pattern)
		if !ok || len(child.Items) != 1 {
			break
		}
		count *= child.Repeat()
		items = canonicalList(child.Items)
	}
	return &Pattern{Items: mergeRuns(items), Count: count, Label: p.Label}
}

// mergeRuns folds adjacent entries that repeat the same stitch id into one
// Repeated wrapper.
func mergeRuns(list List) List {
	if len(list) < 2 {
		return list
	}
	out := make(List, 0, len(list))
	for _, n := range list {
		id, count, ok := RepeatedStitch(n)
		if !ok || len(out) == 0 {
			out = append(out, n)
			continue
		}
		lastID, lastCount, lastOK := RepeatedStitch(out[len(out)-1])
		if !lastOK || lastID != id {
			out = append(out, n)
			continue
		}
		out[len(out)-1] = Repeated(id, lastCount+count)
	}
	return out
}
