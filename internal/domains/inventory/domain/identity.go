package domain

import "strings"

// NormalizeName folds a free-text product name into its identity key:
// whitespace trimmed, case lowered. Two names denote the same product iff
// their keys are equal; there is no fuzzy matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Merge collapses products that share a normalized name key. The first-seen
// record of each group survives carrying the union of all variant/color
// stocks, with quantities summed when the same (size, color) pair appears in
// more than one member. Merging an already-merged collection is a no-op.
func Merge(products []*Product) []*Product {
	merged := make([]*Product, 0, len(products))
	byKey := make(map[string]*Product, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		key := p.NameKey
		if key == "" {
			key = NormalizeName(p.Name)
		}
		survivor, seen := byKey[key]
		if !seen {
			clone := p.Clone()
			clone.NameKey = key
			byKey[key] = clone
			merged = append(merged, clone)
			continue
		}
		absorbStock(survivor, p)
	}
	for _, p := range merged {
		p.RecomputeStatus()
	}
	return merged
}

func absorbStock(into, from *Product) {
	for _, v := range from.Variants {
		for _, cs := range v.Colors {
			if cs.Quantity <= 0 {
				continue
			}
			_ = into.AddStock(v.Size, cs.Color, cs.Quantity)
		}
	}
}
