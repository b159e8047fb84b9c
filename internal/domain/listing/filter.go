package listing

import "strings"

// FilterAll is the category query value that passes every listing.
const FilterAll = "All"

// Filter projects the visible subset of a catalog for the browse views.
// Category "All" matches everything, otherwise the match is exact. Search is
// a case-insensitive substring match against the title only. Both conditions
// must hold, and the input order is preserved.
func Filter(listings []Listing, search, category string) []Listing {
	needle := strings.ToLower(search)
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if category != FilterAll && string(l.Category) != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(l.Title), needle) {
			continue
		}
		out = append(out, l)
	}
	return out
}
