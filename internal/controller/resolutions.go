package controller

import (
	"sort"

	m "github.com/mouse-blink/undefender/internal/model"
)

// sortedResolutions flattens a table into display rows ordered by kind then fragment.
func sortedResolutions(table m.ResolutionTable) []resolutionItem {
	items := make([]resolutionItem, 0, table.Resolved())

	for fragment, text := range table.Blocks {
		items = append(items, resolutionItem{kind: m.FragmentBlock, fragment: fragment, replacement: text})
	}

	for fragment, value := range table.Values {
		items = append(items, resolutionItem{kind: m.FragmentAccess, fragment: fragment, replacement: value.Text})
	}

	for fragment, value := range table.Expressions {
		items = append(items, resolutionItem{kind: m.FragmentArithmetic, fragment: fragment, replacement: value.Text})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].kind != items[j].kind {
			return items[i].kind < items[j].kind
		}

		return items[i].fragment < items[j].fragment
	})

	return items
}
