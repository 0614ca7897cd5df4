package project

import "strconv"

// EndAt marks progress inside a component: the 1-based row occurrence and the
// stitches generated within it.
type EndAt struct {
	RowIndex     int `json:"row_index"`
	CrochetCount int `json:"crochet_count"`
}

// Instance identifies one physical copy of a component declared with
// count > 1.
type Instance struct {
	BaseIndex int `json:"base_index"`
	Index     int `json:"index"`
	Total     int `json:"total"`
}

// ComponentContent holds a component's rows and row groups.
type ComponentContent struct {
	RowList   []Row      `json:"row_list"`
	RowGroups []RowGroup `json:"row_groups"`
}

// Component is one physical piece built from rows.
type Component struct {
	Name     string           `json:"name,omitempty"`
	Count    int              `json:"count"`
	EndAt    *EndAt           `json:"end_at"`
	Content  ComponentContent `json:"content"`
	Instance *Instance        `json:"_instance,omitempty"`
}

// ComponentCount returns c.Count, never less than 1.
func ComponentCount(c Component) int { return max(1, c.Count) }

// DisplayName returns the component name with its instance suffix.
func (c Component) DisplayName() string {
	name := c.Name
	if name == "" {
		name = "component"
	}
	if c.Instance != nil && c.Instance.Total > 1 {
		return name + " #" + strconv.Itoa(c.Instance.Index)
	}
	return name
}

// Clone returns a deep copy of c.
func (c Component) Clone() Component {
	out := c
	if c.EndAt != nil {
		e := *c.EndAt
		out.EndAt = &e
	}
	if c.Instance != nil {
		inst := *c.Instance
		out.Instance = &inst
	}
	out.Content.RowList = make([]Row, len(c.Content.RowList))
	for i, r := range c.Content.RowList {
		out.Content.RowList[i] = r.Clone()
	}
	out.Content.RowGroups = append([]RowGroup{}, c.Content.RowGroups...)
	return out
}

// Group returns the row group registered under index.
func (c Component) Group(index int) (RowGroup, bool) {
	for _, g := range c.Content.RowGroups {
		if g.Index == index {
			return g, true
		}
	}
	return RowGroup{}, false
}

// AddRow appends an empty row and returns its position in the row list.
func (c *Component) AddRow() int {
	c.Content.RowList = append(c.Content.RowList, NewRow(0))
	RenumberRows(c.Content.RowList)
	return len(c.Content.RowList) - 1
}

// SetRowCount sets how many times the row at position is worked and
// renumbers the rows after it.
func (c *Component) SetRowCount(position, count int) bool {
	if position < 0 || position >= len(c.Content.RowList) || count < 1 {
		return false
	}
	c.Content.RowList[position].Count = count
	RenumberRows(c.Content.RowList)
	return true
}

// GroupRows places rows first..last (inclusive positions) into a new group
// repeated repeat times and returns the group index. Rows already grouped
// keep their membership unless they fall inside the new run.
func (c *Component) GroupRows(first, last, repeat int) (int, bool) {
	rows := c.Content.RowList
	if first < 0 || last < first || last >= len(rows) || repeat < 1 {
		return 0, false
	}
	index := 0
	for _, g := range c.Content.RowGroups {
		index = max(index, g.Index+1)
	}
	for i := range rows {
		if rows[i].GroupIndex != nil {
			index = max(index, *rows[i].GroupIndex+1)
		}
	}
	for i := first; i <= last; i++ {
		g := index
		rows[i].GroupIndex = &g
	}
	c.Content.RowGroups = append(c.Content.RowGroups, RowGroup{Index: index, RepeatCount: repeat})
	c.pruneGroups()
	return index, true
}

// pruneGroups drops groups that no row references anymore.
func (c *Component) pruneGroups() {
	used := make(map[int]bool)
	for _, r := range c.Content.RowList {
		if r.GroupIndex != nil {
			used[*r.GroupIndex] = true
		}
	}
	kept := c.Content.RowGroups[:0]
	for _, g := range c.Content.RowGroups {
		if used[g.Index] {
			kept = append(kept, g)
		}
	}
	c.Content.RowGroups = kept
}

// Normalize clamps counts, renumbers rows and refreshes every row's cached
// stats.
func (c *Component) Normalize() {
	c.Count = ComponentCount(*c)
	if c.Content.RowList == nil {
		c.Content.RowList = []Row{}
	}
	if c.Content.RowGroups == nil {
		c.Content.RowGroups = []RowGroup{}
	}
	for i := range c.Content.RowList {
		RefreshRowStats(&c.Content.RowList[i])
	}
	for i := range c.Content.RowGroups {
		c.Content.RowGroups[i].RepeatCount = max(1, c.Content.RowGroups[i].RepeatCount)
	}
	RenumberRows(c.Content.RowList)
}

// ExpandComponents returns one deep copy per physical instance. Copies carry
// count 1 and, when their base declared more than one, Instance metadata.
// resetEndAt clears progress on every copy.
func ExpandComponents(list []Component, resetEndAt bool) []Component {
	expanded := make([]Component, 0, len(list))
	for baseIndex, base := range list {
		total := ComponentCount(base)
		for i := 0; i < total; i++ {
			clone := base.Clone()
			clone.Count = 1
			if resetEndAt {
				clone.EndAt = nil
			}
			if total > 1 {
				clone.Instance = &Instance{BaseIndex: baseIndex, Index: i + 1, Total: total}
			}
			expanded = append(expanded, clone)
		}
	}
	return expanded
}
