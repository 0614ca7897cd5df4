package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"stitchbook/internal/catalog"
	"stitchbook/internal/project"
)

// parseStitch resolves a stitch id, symbol ("X", "V") or name ("singleCrochet").
func parseStitch(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("stitch is required")
	}
	if id, err := strconv.Atoi(value); err == nil {
		if _, ok := catalog.Lookup(id); !ok {
			return 0, fmt.Errorf("unknown stitch id %d", id)
		}
		return id, nil
	}
	if s, ok := catalog.BySymbol(value); ok {
		return s.ID, nil
	}
	if s, ok := catalog.ByNameKey(value); ok {
		return s.ID, nil
	}
	return 0, fmt.Errorf("unknown stitch %q (see `stitchbook catalog`)", value)
}

// parseCastOn resolves a cast-on id or name ("magicRing").
func parseCastOn(value string) (int, error) {
	value = strings.TrimSpace(value)
	if id, err := strconv.Atoi(value); err == nil {
		if _, ok := catalog.LookupCastOn(id); !ok {
			return 0, fmt.Errorf("unknown cast-on id %d", id)
		}
		return id, nil
	}
	for _, c := range catalog.CastOns() {
		if strings.EqualFold(c.NameKey, value) || strings.EqualFold(strings.TrimPrefix(c.NameKey, "crochet.castOn."), value) {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown cast-on %q", value)
}

// parseComponentSpec reads "name" or "name:count".
func parseComponentSpec(spec string) (project.Component, error) {
	name, countText, hasCount := strings.Cut(strings.TrimSpace(spec), ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return project.Component{}, fmt.Errorf("component %q: name is required", spec)
	}
	count := 1
	if hasCount {
		n, err := strconv.Atoi(strings.TrimSpace(countText))
		if err != nil || n < 1 {
			return project.Component{}, fmt.Errorf("component %q: count must be a positive number", spec)
		}
		count = n
	}
	return project.Component{Name: name, Count: count}, nil
}

// position converts a 1-based flag value to a 0-based index.
func position(flag string, value int) (int, error) {
	if value < 1 {
		return 0, fmt.Errorf("--%s must be 1 or greater", flag)
	}
	return value - 1, nil
}

func countLabel(count int) string {
	if count > 1 {
		return "x" + strconv.Itoa(count)
	}
	return ""
}
