package project

import (
	"time"

	"stitchbook/internal/catalog"
)

// Project is an owner's pattern document.
type Project struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"owner_id"`
	Name          string      `json:"name"`
	CastOn        int         `json:"cast_on"`
	ComponentList []Component `json:"component_list"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CastOnName returns the cast-on catalog key, or "" when unknown.
func (p Project) CastOnName() string {
	c, ok := catalog.LookupCastOn(p.CastOn)
	if !ok {
		return ""
	}
	return c.NameKey
}

// Normalize clamps counts and refreshes cached row stats on every component.
func (p *Project) Normalize() {
	if p.ComponentList == nil {
		p.ComponentList = []Component{}
	}
	for i := range p.ComponentList {
		p.ComponentList[i].Normalize()
	}
}

// TimeSlot is one working session. EndAtList snapshots every component's
// progress when the session ended.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end,omitzero"`
	EndAtList []*EndAt  `json:"end_at_list"`
}

// Record tracks progress through one copy of a project.
type Record struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"owner_id"`
	ProjectID     string      `json:"project_id"`
	ProjectName   string      `json:"project_name"`
	ComponentList []Component `json:"component_list"`
	TimeSlots     []TimeSlot  `json:"time_slots"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// NewRecord starts a record for p with one component per physical instance
// and no progress.
func NewRecord(p Project) Record {
	return Record{
		OwnerID:       p.OwnerID,
		ProjectID:     p.ID,
		ProjectName:   p.Name,
		ComponentList: ExpandComponents(p.ComponentList, true),
		TimeSlots:     []TimeSlot{},
	}
}

// FirstStart returns the start of the first time slot.
func (r Record) FirstStart() time.Time {
	if len(r.TimeSlots) == 0 {
		return time.Time{}
	}
	return r.TimeSlots[0].Start
}

// LatestStart returns the latest time slot start.
func (r Record) LatestStart() time.Time {
	var latest time.Time
	for _, s := range r.TimeSlots {
		if s.Start.After(latest) {
			latest = s.Start
		}
	}
	return latest
}

// EndAtSnapshot copies every component's current progress marker.
func (r Record) EndAtSnapshot() []*EndAt {
	out := make([]*EndAt, len(r.ComponentList))
	for i, c := range r.ComponentList {
		if c.EndAt != nil {
			e := *c.EndAt
			out[i] = &e
		}
	}
	return out
}

// NormalizeRecordCounts expands a record whose components still declare
// count > 1 into one component per instance and reshapes every time slot's
// end_at_list to match. Snapshots taken against the unexpanded list are
// expanded per instance; any other length is padded or truncated.
func NormalizeRecordCounts(r *Record) {
	if r == nil {
		return
	}
	original := r.ComponentList
	repeated := false
	for i := range original {
		if ComponentCount(original[i]) > 1 {
			repeated = true
		}
		original[i].Count = ComponentCount(original[i])
	}
	if !repeated {
		return
	}

	expanded := ExpandComponents(original, false)
	r.ComponentList = expanded

	for i := range r.TimeSlots {
		slot := &r.TimeSlots[i]
		if slot.EndAtList == nil {
			continue
		}
		if len(slot.EndAtList) == len(original) {
			next := make([]*EndAt, 0, len(expanded))
			for j, c := range original {
				for k := 0; k < c.Count; k++ {
					next = append(next, copyEndAt(slot.EndAtList[j]))
				}
			}
			slot.EndAtList = next
			continue
		}
		next := make([]*EndAt, len(expanded))
		for j := 0; j < len(next) && j < len(slot.EndAtList); j++ {
			next[j] = copyEndAt(slot.EndAtList[j])
		}
		slot.EndAtList = next
	}
}

func copyEndAt(e *EndAt) *EndAt {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}
