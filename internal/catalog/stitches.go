package catalog

import "strings"

// Stitch describes one crochet technique.
type Stitch struct {
	ID       int
	NameKey  string
	Symbol   string
	Consume  int
	Generate int
}

// Well-known stitch identifiers.
const (
	SlipStitch                 = 0
	Chain                      = 1
	TurningChain               = 2
	Skip                       = 3
	SingleCrochet              = 4
	SingleCrochetIncrease      = 5
	SingleCrochetDecrease      = 6
	HalfDoubleCrochet          = 7
	HalfDoubleCrochetIncrease  = 8
	HalfDoubleCrochetDecrease  = 9
	DoubleCrochet              = 10
	DoubleCrochetIncrease      = 11
	DoubleCrochetDecrease      = 12
	TrebleCrochet              = 13
	TrebleCrochetIncrease      = 14
	TrebleCrochetDecrease      = 15
	FrontPostDoubleCrochet     = 16
	FrontPostHalfDoubleCrochet = 17
)

const stitchKeyPrefix = "crochet.stitches."

var stitches = [...]Stitch{
	{ID: SlipStitch, NameKey: stitchKeyPrefix + "slipStitch", Symbol: "sl", Consume: 1, Generate: 1},
	{ID: Chain, NameKey: stitchKeyPrefix + "chain", Symbol: "ch", Consume: 0, Generate: 1},
	{ID: TurningChain, NameKey: stitchKeyPrefix + "turningChain", Symbol: "ch", Consume: 0, Generate: 0},
	{ID: Skip, NameKey: stitchKeyPrefix + "skip", Symbol: "skip", Consume: 1, Generate: 0},
	{ID: SingleCrochet, NameKey: stitchKeyPrefix + "singleCrochet", Symbol: "X", Consume: 1, Generate: 1},
	{ID: SingleCrochetIncrease, NameKey: stitchKeyPrefix + "singleCrochetIncrease", Symbol: "V", Consume: 1, Generate: 2},
	{ID: SingleCrochetDecrease, NameKey: stitchKeyPrefix + "singleCrochetDecrease", Symbol: "A", Consume: 2, Generate: 1},
	{ID: HalfDoubleCrochet, NameKey: stitchKeyPrefix + "halfDoubleCrochet", Symbol: "T", Consume: 1, Generate: 1},
	{ID: HalfDoubleCrochetIncrease, NameKey: stitchKeyPrefix + "halfDoubleCrochetIncrease", Symbol: "TV", Consume: 1, Generate: 2},
	{ID: HalfDoubleCrochetDecrease, NameKey: stitchKeyPrefix + "halfDoubleCrochetDecrease", Symbol: "TA", Consume: 2, Generate: 1},
	{ID: DoubleCrochet, NameKey: stitchKeyPrefix + "doubleCrochet", Symbol: "F", Consume: 1, Generate: 1},
	{ID: DoubleCrochetIncrease, NameKey: stitchKeyPrefix + "doubleCrochetIncrease", Symbol: "FV", Consume: 1, Generate: 2},
	{ID: DoubleCrochetDecrease, NameKey: stitchKeyPrefix + "doubleCrochetDecrease", Symbol: "FA", Consume: 2, Generate: 1},
	{ID: TrebleCrochet, NameKey: stitchKeyPrefix + "trebleCrochet", Symbol: "E", Consume: 1, Generate: 1},
	{ID: TrebleCrochetIncrease, NameKey: stitchKeyPrefix + "trebleCrochetIncrease", Symbol: "EV", Consume: 1, Generate: 2},
	{ID: TrebleCrochetDecrease, NameKey: stitchKeyPrefix + "trebleCrochetDecrease", Symbol: "EA", Consume: 2, Generate: 1},
	{ID: FrontPostDoubleCrochet, NameKey: stitchKeyPrefix + "frontPostDoubleCrochet", Symbol: "OF", Consume: 1, Generate: 1},
	{ID: FrontPostHalfDoubleCrochet, NameKey: stitchKeyPrefix + "frontPostHalfDoubleCrochet", Symbol: "OM", Consume: 1, Generate: 1},
}

// Lookup returns the stitch registered under id.
func Lookup(id int) (Stitch, bool) {
	if id < 0 || id >= len(stitches) {
		return Stitch{}, false
	}
	return stitches[id], true
}

// All returns a copy of the stitch table in id order.
func All() []Stitch {
	out := make([]Stitch, len(stitches))
	copy(out, stitches[:])
	return out
}

// BySymbol returns the first stitch using symbol. "ch" resolves to chain.
func BySymbol(symbol string) (Stitch, bool) {
	symbol = strings.TrimSpace(symbol)
	for _, s := range stitches {
		if s.Symbol == symbol {
			return s, true
		}
	}
	return Stitch{}, false
}

// ByNameKey accepts either the full key ("crochet.stitches.chain") or the
// short form ("chain").
func ByNameKey(key string) (Stitch, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Stitch{}, false
	}
	if !strings.HasPrefix(key, stitchKeyPrefix) {
		key = stitchKeyPrefix + key
	}
	for _, s := range stitches {
		if strings.EqualFold(s.NameKey, key) {
			return s, true
		}
	}
	return Stitch{}, false
}
