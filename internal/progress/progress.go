// Package progress turns a component's end_at marker into generated-stitch
// totals and completion percentages, expanding row counts and row group
// repeats into concrete row occurrences.
package progress

import (
	"math"

	"stitchbook/internal/project"
)

// segment is either one ungrouped row or a maximal run of rows sharing a
// group index, repeated as a unit.
type segment struct {
	rows   []*project.Row
	repeat int
}

func segments(c *project.Component) []segment {
	if c == nil {
		return nil
	}
	rows := c.Content.RowList
	var out []segment
	for i := 0; i < len(rows); {
		if !rows[i].Grouped() {
			out = append(out, segment{rows: []*project.Row{&rows[i]}, repeat: 1})
			i++
			continue
		}
		group := *rows[i].GroupIndex
		j := i
		var run []*project.Row
		for j < len(rows) && rows[j].Grouped() && *rows[j].GroupIndex == group {
			run = append(run, &rows[j])
			j++
		}
		repeat := 1
		if g, ok := c.Group(group); ok {
			repeat = max(1, g.RepeatCount)
		}
		out = append(out, segment{rows: run, repeat: repeat})
		i = j
	}
	return out
}

// rowGenerate is the generate of one pass over r, never negative.
func rowGenerate(r *project.Row) int {
	return max(0, r.Generate())
}

// walk calls fn for every row occurrence in order with its 1-based
// occurrence number. Rows with count > 1 occupy consecutive numbers. walk
// stops when fn returns false.
func walk(c *project.Component, fn func(occurrence int, row *project.Row) bool) {
	occurrence := 1
	for _, seg := range segments(c) {
		for r := 0; r < seg.repeat; r++ {
			for _, row := range seg.rows {
				for k := 0; k < row.Repeat(); k++ {
					if !fn(occurrence, row) {
						return
					}
					occurrence++
				}
			}
		}
	}
}

// TotalGenerate returns the stitches generated by working the whole
// component once.
func TotalGenerate(c *project.Component) int {
	total := 0
	for _, seg := range segments(c) {
		pass := 0
		for _, row := range seg.rows {
			pass += rowGenerate(row) * row.Repeat()
		}
		total += pass * seg.repeat
	}
	return total
}

// Occurrences returns how many concrete rows the component expands to.
func Occurrences(c *project.Component) int {
	total := 0
	for _, seg := range segments(c) {
		pass := 0
		for _, row := range seg.rows {
			pass += row.Repeat()
		}
		total += pass * seg.repeat
	}
	return total
}

// GeneratedBefore returns the stitches generated by every occurrence strictly
// before target.
func GeneratedBefore(c *project.Component, target int) int {
	if target <= 1 {
		return 0
	}
	generated := 0
	walk(c, func(occurrence int, row *project.Row) bool {
		if occurrence >= target {
			return false
		}
		generated += rowGenerate(row)
		return true
	})
	return generated
}

// LocateRow returns the row worked at occurrence target.
func LocateRow(c *project.Component, target int) (*project.Row, bool) {
	var found *project.Row
	walk(c, func(occurrence int, row *project.Row) bool {
		if occurrence == target {
			found = row
			return false
		}
		return true
	})
	return found, found != nil
}

// ClampCrochetCount bounds a within-row count to [0, generate]. A row
// without generate leaves the upper end open.
func ClampCrochetCount(n, generate int) int {
	n = max(0, n)
	if generate > 0 {
		n = min(n, generate)
	}
	return n
}

// Generated returns the stitches done up to the component's end_at.
func Generated(c *project.Component) int {
	if c == nil || c.EndAt == nil {
		return 0
	}
	before := GeneratedBefore(c, c.EndAt.RowIndex)
	rowGen := 0
	if row, ok := LocateRow(c, c.EndAt.RowIndex); ok {
		rowGen = rowGenerate(row)
	}
	within := ClampCrochetCount(c.EndAt.CrochetCount, rowGen)
	return max(0, before+within)
}

// Percent returns the rounded completion percentage of c.
func Percent(c *project.Component) int {
	if c == nil || c.EndAt == nil {
		return 0
	}
	total := TotalGenerate(c)
	if total <= 0 {
		return 0
	}
	done := min(total, Generated(c))
	return int(math.Round(float64(done) * 100 / float64(total)))
}
