package catalog

// CastOn describes how the first row is started.
type CastOn struct {
	ID      int
	NameKey string
}

const castOnKeyPrefix = "crochet.castOn."

var castOns = [...]CastOn{
	{ID: 0, NameKey: castOnKeyPrefix + "magicRing"},
	{ID: 1, NameKey: castOnKeyPrefix + "chainRing"},
	{ID: 2, NameKey: castOnKeyPrefix + "flat"},
	{ID: 3, NameKey: castOnKeyPrefix + "oval"},
}

// LookupCastOn returns the cast-on registered under id.
func LookupCastOn(id int) (CastOn, bool) {
	if id < 0 || id >= len(castOns) {
		return CastOn{}, false
	}
	return castOns[id], true
}

// CastOns returns a copy of the cast-on table.
func CastOns() []CastOn {
	out := make([]CastOn, len(castOns))
	copy(out, castOns[:])
	return out
}
