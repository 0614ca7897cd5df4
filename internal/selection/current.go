package selection

import "stitchbook/internal/pattern"

// State tells whether the innermost selection is one node or a span.
type State int

const (
	SelectRange State = iota
	SelectOne
)

func (s State) String() string {
	if s == SelectOne {
		return "select_one"
	}
	return "select_range"
}

// Selected describes what the innermost level of a path points at.
type Selected struct {
	State         State
	NodeKind      pattern.Kind
	SelectedCount int
	// Items is the list the editor operates on for this selection. It is nil
	// for a span nested below the root.
	Items []pattern.Node
}

// Current resolves path against list. The boolean is false when the path
// points outside the tree or its innermost level is empty.
func Current(path Path, list []pattern.Node) (Selected, bool) {
	if len(path) == 0 {
		return Selected{State: SelectRange, NodeKind: pattern.KindPattern, SelectedCount: 1, Items: list}, true
	}

	last := path[len(path)-1]
	if last.IsNone() {
		return Selected{}, false
	}
	if last.IsRange() {
		sel := Selected{State: SelectRange, NodeKind: pattern.KindPattern, SelectedCount: 1}
		if len(path) == 1 {
			sel.Items = list
		}
		return sel, true
	}

	current := list
	for _, r := range path[:len(path)-1] {
		node, ok := at(current, r.Index())
		if !ok {
			return Selected{}, false
		}
		switch node.(type) {
		case *pattern.Pattern, *pattern.Bundle:
			current = pattern.Children(node)
		default:
			return Selected{}, false
		}
	}

	node, ok := at(current, last.Index())
	if !ok {
		return Selected{}, false
	}
	sel := Selected{State: SelectOne, NodeKind: node.Kind(), SelectedCount: 1}
	switch node.(type) {
	case *pattern.Pattern, *pattern.Bundle:
		sel.SelectedCount = node.Repeat()
		sel.Items = pattern.Children(node)
		if sel.Items == nil {
			sel.Items = []pattern.Node{}
		}
	default:
		sel.Items = []pattern.Node{node}
	}
	return sel, true
}

func at(list []pattern.Node, index int) (pattern.Node, bool) {
	if index < 0 || index >= len(list) || list[index] == nil {
		return nil, false
	}
	return list[index], true
}
