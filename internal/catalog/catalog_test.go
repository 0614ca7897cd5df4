package catalog

import (
	"testing"

	"golang.org/x/text/language"
)

func TestLookupArity(t *testing.T) {
	cases := []struct {
		id       int
		consume  int
		generate int
		symbol   string
	}{
		{SlipStitch, 1, 1, "sl"},
		{Chain, 0, 1, "ch"},
		{TurningChain, 0, 0, "ch"},
		{Skip, 1, 0, "skip"},
		{SingleCrochet, 1, 1, "X"},
		{SingleCrochetIncrease, 1, 2, "V"},
		{SingleCrochetDecrease, 2, 1, "A"},
		{TrebleCrochetDecrease, 2, 1, "EA"},
		{FrontPostHalfDoubleCrochet, 1, 1, "OM"},
	}
	for _, tc := range cases {
		s, ok := Lookup(tc.id)
		if !ok {
			t.Fatalf("stitch %d missing", tc.id)
		}
		if s.ID != tc.id || s.Consume != tc.consume || s.Generate != tc.generate || s.Symbol != tc.symbol {
			t.Fatalf("stitch %d: got %+v", tc.id, s)
		}
	}
	if len(All()) != 18 {
		t.Fatalf("expected 18 stitches, got %d", len(All()))
	}
	if _, ok := Lookup(18); ok {
		t.Fatal("expected id 18 to be unknown")
	}
	if _, ok := Lookup(-1); ok {
		t.Fatal("expected negative id to be unknown")
	}
}

func TestVariantOf(t *testing.T) {
	for _, base := range []int{SingleCrochet, HalfDoubleCrochet, DoubleCrochet, TrebleCrochet} {
		inc, ok := VariantOf(base, Increase)
		if !ok || inc != base+1 {
			t.Fatalf("increase of %d: got %d ok=%v", base, inc, ok)
		}
		dec, ok := VariantOf(base, Decrease)
		if !ok || dec != base+2 {
			t.Fatalf("decrease of %d: got %d ok=%v", base, dec, ok)
		}
		if s, _ := Lookup(inc); s.Consume != 1 || s.Generate != 2 {
			t.Fatalf("increase %d arity: %+v", inc, s)
		}
		if s, _ := Lookup(dec); s.Consume != 2 || s.Generate != 1 {
			t.Fatalf("decrease %d arity: %+v", dec, s)
		}
	}
	for _, base := range []int{SlipStitch, Chain, SingleCrochetIncrease, FrontPostDoubleCrochet, 99} {
		if _, ok := VariantOf(base, Increase); ok {
			t.Fatalf("expected no increase variant for %d", base)
		}
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant(" DEC "); err != nil || v != Decrease {
		t.Fatalf("ParseVariant dec: %v %v", v, err)
	}
	if v, err := ParseVariant("increase"); err != nil || v != Increase {
		t.Fatalf("ParseVariant increase: %v %v", v, err)
	}
	if _, err := ParseVariant("twist"); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestLookupBySymbolAndKey(t *testing.T) {
	if s, ok := BySymbol("TV"); !ok || s.ID != HalfDoubleCrochetIncrease {
		t.Fatalf("BySymbol TV: %+v %v", s, ok)
	}
	if s, ok := BySymbol("ch"); !ok || s.ID != Chain {
		t.Fatalf("BySymbol ch should resolve to chain, got %+v", s)
	}
	if s, ok := ByNameKey("doubleCrochet"); !ok || s.ID != DoubleCrochet {
		t.Fatalf("ByNameKey short: %+v %v", s, ok)
	}
	if s, ok := ByNameKey("crochet.stitches.skip"); !ok || s.ID != Skip {
		t.Fatalf("ByNameKey full: %+v %v", s, ok)
	}
}

func TestDisplayName(t *testing.T) {
	if got := StitchName(HalfDoubleCrochetIncrease, language.English); got != "Half Double Crochet Increase" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := DisplayName("crochet.castOn.magicRing", language.English); got != "Magic Ring" {
		t.Fatalf("unexpected cast-on name %q", got)
	}
	if got := StitchName(42, language.English); got != "" {
		t.Fatalf("expected empty name for unknown id, got %q", got)
	}
}
