package catalog

import (
	"strings"

	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
)

// TagResolver derives product tags from meta keywords and category names.
type TagResolver struct{}

// NewTagResolver creates a new TagResolver.
func NewTagResolver() *TagResolver {
	return &TagResolver{}
}

// Tags returns the distinct, trimmed tags of p in first-seen order.
// Duplicates are detected case-insensitively. Returns nil when p has none.
func (r *TagResolver) Tags(p orderitem.Product) []string {
	candidates := strings.Split(p.MetaKeywords, ",")
	candidates = append(candidates, p.Categories...)

	var tags []string
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		tag := strings.TrimSpace(c)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}
