package selection

import (
	"fmt"
	"strconv"
	"strings"

	"stitchbook/internal/pattern"
)

// Format renders pos against list as slash-separated 1-based node numbers,
// root first. Nodes repeated more than once carry their selected repeat
// after an "x": "2x3/1" is the first child of the third repeat of the second
// node.
func Format(pos Position, list []pattern.Node) string {
	parts := make([]string, 0, len(pos.Path))
	current := list
	countIndex := 0
	for _, sel := range pos.Path {
		index := sel.Index()
		if index < 0 {
			break
		}
		part := strconv.Itoa(index + 1)
		node, ok := at(current, index)
		if ok && node.Repeat() > 1 {
			count := 1
			if countIndex < len(pos.Counts) {
				count = pos.Counts[countIndex]
			}
			countIndex++
			part += "x" + strconv.Itoa(count)
		}
		parts = append(parts, part)
		if !ok {
			break
		}
		current = pattern.Children(node)
	}
	return strings.Join(parts, "/")
}

// Parse reads the Format notation against list. A repeated node without an
// explicit repeat selects its first one.
func Parse(text string, list []pattern.Node) (Position, error) {
	var pos Position
	text = strings.TrimSpace(text)
	if text == "" {
		return pos, nil
	}
	current := list
	for level, part := range strings.Split(text, "/") {
		indexText, countText, hasCount := strings.Cut(strings.TrimSpace(part), "x")
		number, err := strconv.Atoi(indexText)
		if err != nil || number < 1 {
			return Position{}, fmt.Errorf("level %d: invalid node number %q", level+1, indexText)
		}
		node, ok := at(current, number-1)
		if !ok {
			return Position{}, fmt.Errorf("level %d: node %d does not exist", level+1, number)
		}
		pos.Path = append(pos.Path, Single(number-1))

		if node.Repeat() > 1 {
			count := 1
			if hasCount {
				count, err = strconv.Atoi(countText)
				if err != nil || count < 1 || count > node.Repeat() {
					return Position{}, fmt.Errorf("level %d: repeat %q outside 1..%d", level+1, countText, node.Repeat())
				}
			}
			pos.Counts = append(pos.Counts, count)
		} else if hasCount {
			return Position{}, fmt.Errorf("level %d: node %d is not repeated", level+1, number)
		}
		current = pattern.Children(node)
	}
	return pos, nil
}
