package config

import (
	"maps"
	"slices"
)

func sortedComponentIDs(overrides map[string]map[string]any) []string {
	return slices.Sorted(maps.Keys(overrides))
}
