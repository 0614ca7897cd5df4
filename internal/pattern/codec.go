package pattern

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// List is a stitch node list with the persisted JSON shape.
type List []Node

const (
	typeStitch  = "stitch"
	typeBundle  = "bundle"
	typePattern = "pattern"
)

type wireStitch struct {
	Type     string `json:"type"`
	StitchID int    `json:"stitch_id"`
	Count    int    `json:"count,omitempty"`
}

type wireBundle struct {
	Type     string       `json:"type"`
	Bundle   []wireStitch `json:"bundle"`
	Consume  int          `json:"consume"`
	Generate int          `json:"generate"`
	Count    int          `json:"count"`
	Label    string       `json:"label,omitempty"`
}

type wirePattern struct {
	Type     string `json:"type"`
	Pattern  List   `json:"pattern"`
	Count    int    `json:"count"`
	Consume  int    `json:"consume"`
	Generate int    `json:"generate"`
	Label    string `json:"label,omitempty"`
}

// wireNode is the union of every persisted field used while decoding.
type wireNode struct {
	Type     string            `json:"type"`
	StitchID *int              `json:"stitch_id"`
	Count    int               `json:"count"`
	Bundle   []json.RawMessage `json:"bundle"`
	Pattern  []json.RawMessage `json:"pattern"`
	Consume  int               `json:"consume"`
	Label    string            `json:"label"`
}

func (s Stitch) wire() wireStitch {
	w := wireStitch{Type: typeStitch, StitchID: s.StitchID}
	if s.Count > 1 {
		w.Count = s.Count
	}
	return w
}

// MarshalJSON writes the persisted stitch shape. count is omitted when 1.
func (s Stitch) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// MarshalJSON writes the persisted bundle shape. consume and generate are
// per execution; readers multiply them by count.
func (b Bundle) MarshalJSON() ([]byte, error) {
	items := make([]wireStitch, 0, len(b.Items))
	for _, item := range b.Items {
		items = append(items, item.wire())
	}
	per := PerRepeat(&b)
	return json.Marshal(wireBundle{
		Type:     typeBundle,
		Bundle:   items,
		Consume:  per.Consume,
		Generate: per.Generate,
		Count:    b.Repeat(),
		Label:    b.Label,
	})
}

// MarshalJSON writes the persisted pattern shape with freshly computed stats.
func (p Pattern) MarshalJSON() ([]byte, error) {
	items := p.Items
	if items == nil {
		items = List{}
	}
	total := Of(&p)
	return json.Marshal(wirePattern{
		Type:     typePattern,
		Pattern:  items,
		Count:    p.Repeat(),
		Consume:  total.Consume,
		Generate: total.Generate,
		Label:    p.Label,
	})
}

// MarshalJSON writes every non-nil node; a nil list encodes as [].
func (l List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	first := true
	for _, n := range l {
		if isNil(n) {
			continue
		}
		data, err := json.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("marshal %s node: %w", n.Kind(), err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a node list. Entries with an unknown type or without
// a stitch id are dropped rather than rejected.
func (l *List) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode node list: %w", err)
	}
	out := make(List, 0, len(raw))
	for _, entry := range raw {
		n, ok, err := decodeNode(entry)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, n)
		}
	}
	*l = out
	return nil
}

// DecodeNode decodes a single persisted node.
func DecodeNode(data []byte) (Node, bool, error) {
	return decodeNode(data)
}

func decodeNode(data []byte) (Node, bool, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, false, fmt.Errorf("decode node: %w", err)
	}
	switch w.Type {
	case typeStitch:
		if w.StitchID == nil {
			return nil, false, nil
		}
		return &Stitch{StitchID: *w.StitchID, Count: atLeastOne(w.Count)}, true, nil
	case typeBundle:
		b := &Bundle{Consume: atLeastOne(w.Consume), Count: atLeastOne(w.Count), Label: w.Label}
		for _, entry := range w.Bundle {
			n, ok, err := decodeNode(entry)
			if err != nil {
				return nil, false, err
			}
			if s, isStitch := n.(*Stitch); ok && isStitch {
				b.Items = append(b.Items, *s)
			}
		}
		return b, true, nil
	case typePattern:
		p := &Pattern{Count: atLeastOne(w.Count), Label: w.Label, Items: List{}}
		for _, entry := range w.Pattern {
			n, ok, err := decodeNode(entry)
			if err != nil {
				return nil, false, err
			}
			if ok {
				p.Items = append(p.Items, n)
			}
		}
		return p, true, nil
	default:
		return nil, false, nil
	}
}
