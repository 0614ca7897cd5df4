package project

import "stitchbook/internal/pattern"

// Content is a row's stitch list plus the stats cached alongside it.
type Content struct {
	StitchNodeList pattern.List `json:"stitch_node_list"`
	Consume        int          `json:"consume"`
	Generate       int          `json:"generate"`
}

// Row is one unit of work, worked Count times.
type Row struct {
	RowIndex   int     `json:"row_index"`
	Count      int     `json:"count"`
	GroupIndex *int    `json:"group_index,omitempty"`
	Content    Content `json:"content"`
}

// RowGroup repeats a contiguous run of rows sharing its index.
type RowGroup struct {
	Index       int `json:"index"`
	RepeatCount int `json:"repeat_count"`
}

// NewRow returns an empty row worked once.
func NewRow(rowIndex int) Row {
	return Row{RowIndex: rowIndex, Count: 1, Content: Content{StitchNodeList: pattern.List{}}}
}

// Repeat is the row count, never less than 1.
func (r Row) Repeat() int { return max(1, r.Count) }

// Grouped reports whether the row belongs to a row group.
func (r Row) Grouped() bool { return r.GroupIndex != nil }

// Stats returns the freshly computed stats of one pass over the row. Rows
// written without a node list fall back to the cached values.
func (r Row) Stats() pattern.Stats {
	if len(r.Content.StitchNodeList) == 0 {
		return pattern.Stats{Consume: max(0, r.Content.Consume), Generate: max(0, r.Content.Generate)}
	}
	return pattern.ListStats(r.Content.StitchNodeList, 1)
}

// Generate is Stats().Generate.
func (r Row) Generate() int { return r.Stats().Generate }

// Canonicalize rewrites the row's list into canonical form and refreshes the
// cached stats.
func (r *Row) Canonicalize() {
	r.Content.StitchNodeList = pattern.Canonicalize(r.Content.StitchNodeList)
	RefreshRowStats(r)
}

// Clone returns a deep copy of r.
func (r Row) Clone() Row {
	out := r
	if r.GroupIndex != nil {
		g := *r.GroupIndex
		out.GroupIndex = &g
	}
	out.Content.StitchNodeList = pattern.CloneList(r.Content.StitchNodeList)
	return out
}

// RefreshRowStats writes the stats computed from the node list into the
// row's cached content fields.
func RefreshRowStats(r *Row) {
	if r == nil {
		return
	}
	if r.Content.StitchNodeList == nil {
		r.Content.StitchNodeList = pattern.List{}
	}
	s := pattern.ListStats(r.Content.StitchNodeList, 1)
	r.Content.Consume = s.Consume
	r.Content.Generate = s.Generate
}

// RenumberRows sets each row's 1-based starting row number from the counts of
// the rows before it and clamps counts to at least 1.
func RenumberRows(rows []Row) {
	next := 1
	for i := range rows {
		rows[i].Count = rows[i].Repeat()
		rows[i].RowIndex = next
		next += rows[i].Count
	}
}

// IsGroupedStart reports whether rows[index] opens a visual block: a repeated
// row, or the first row of a group run.
func IsGroupedStart(rows []Row, index int) bool {
	if index < 0 || index >= len(rows) {
		return false
	}
	current := rows[index]
	if current.Count > 1 {
		return true
	}
	if !current.Grouped() {
		return false
	}
	if index == 0 {
		return true
	}
	previous := rows[index-1]
	if !previous.Grouped() {
		return true
	}
	return *previous.GroupIndex != *current.GroupIndex
}
