package selection

import "stitchbook/internal/pattern"

// Position is a selection path plus the selected repeat of every node along
// it whose count exceeds one, in path order.
type Position struct {
	Path   Path  `json:"path"`
	Counts []int `json:"counts,omitempty"`
}

// ComputeGenerateDone returns how many stitches have been generated once the
// selection at the end of path is complete. counts supplies the chosen repeat
// for each multi-repeat node on the path; missing entries read as 1.
func ComputeGenerateDone(path Path, counts []int, list []pattern.Node) int {
	total := 0
	current := list
	countIndex := 0

	for level, sel := range path {
		if sel.Start == nil {
			break
		}
		index := *sel.Start
		for i := 0; i < index && i < len(current); i++ {
			total += pattern.Of(current[i]).Generate
		}
		if index < 0 || index >= len(current) || current[index] == nil {
			break
		}
		node := current[index]

		selected := 1
		if node.Repeat() > 1 {
			if countIndex < len(counts) {
				selected = counts[countIndex]
			}
			countIndex++
		}
		selected = max(0, selected)
		per := pattern.PerRepeat(node).Generate
		last := level == len(path)-1

		switch node.(type) {
		case *pattern.Stitch:
			return total + per*selected
		case *pattern.Pattern, *pattern.Bundle:
			if last {
				return total + per*selected
			}
			total += per * max(0, selected-1)
			current = pattern.Children(node)
		default:
			return total
		}
	}
	return total
}

// FromGenerated places target generated stitches onto list and returns the
// selection path. See Locate.
func FromGenerated(list []pattern.Node, target int) Path {
	return Locate(list, target).Path
}

// Locate walks list left to right and selects the node containing the
// target-th generated stitch, descending into patterns and bundles.
//
// A remainder that is an exact multiple of a node's per-repeat generate
// selects the last unit of the completed repeat rather than the start of the
// next one. When nothing is selected (target beyond the row) the last root
// node is selected as complete.
func Locate(list []pattern.Node, target int) Position {
	var pos Position
	if !locate(list, max(0, target), &pos) && len(list) > 0 {
		last := len(list) - 1
		pos = Position{Path: Path{Single(last)}}
		if n := list[last]; n != nil && n.Repeat() > 1 {
			pos.Counts = append(pos.Counts, n.Repeat())
		}
	}
	return pos
}

func locate(nodes []pattern.Node, remaining int, pos *Position) bool {
	for i, node := range nodes {
		if node == nil {
			continue
		}
		generated := pattern.Of(node).Generate
		per := pattern.PerRepeat(node).Generate

		if remaining < generated {
			pos.Path = append(pos.Path, Single(i))
			children, descend := descendable(node)
			if !descend {
				if node.Repeat() > 1 {
					pos.Counts = append(pos.Counts, startedRepeats(remaining, per))
				}
				return true
			}
			next := remaining
			if per > 0 {
				next = remaining % per
				if next == 0 && remaining > 0 {
					next = per
				}
			}
			if node.Repeat() > 1 {
				pos.Counts = append(pos.Counts, completedRepeats(remaining-next, per)+1)
			}
			locate(children, next, pos)
			return true
		}

		if remaining == generated {
			pos.Path = append(pos.Path, Single(i))
			if node.Repeat() > 1 {
				pos.Counts = append(pos.Counts, node.Repeat())
			}
			if children, descend := descendable(node); descend {
				if per == 0 {
					per = generated
				}
				locate(children, per, pos)
			}
			return true
		}

		remaining -= generated
	}
	return false
}

// descendable returns the children a selection may step into. A pattern
// wrapping a single stitch is shown as one cell and is not descended.
func descendable(node pattern.Node) ([]pattern.Node, bool) {
	switch v := node.(type) {
	case *pattern.Pattern:
		if len(v.Items) == 0 {
			return nil, false
		}
		if _, _, single := pattern.RepeatedStitch(v); single {
			return nil, false
		}
		return v.Items, true
	case *pattern.Bundle:
		if len(v.Items) == 0 {
			return nil, false
		}
		return pattern.Children(v), true
	default:
		return nil, false
	}
}

// startedRepeats counts the repeats holding the first generated stitches;
// a partly worked repeat counts as done.
func startedRepeats(generated, per int) int {
	if per <= 0 {
		return 0
	}
	return (generated + per - 1) / per
}

func completedRepeats(generated, per int) int {
	if per <= 0 {
		return 0
	}
	return generated / per
}
