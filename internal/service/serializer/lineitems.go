package serializer

import (
	"log/slog"

	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
)

// Collapser folds configurable parents and their simple children into one
// canonical line item per simple SKU.
type Collapser struct {
	media ProductMedia
	tags  ProductTags
}

// NewCollapser creates a new Collapser.
func NewCollapser(media ProductMedia, tags ProductTags) *Collapser {
	if media == nil {
		media = noopMedia{}
	}
	if tags == nil {
		tags = noopTags{}
	}

	return &Collapser{media: media, tags: tags}
}

// Collapse returns the canonical items for items, preserving input order.
//
// A simple item is skipped only when a configurable parent carrying its SKU
// was seen earlier in the sequence. A simple item that precedes its parent is
// kept, so the result depends on input order.
func (c *Collapser) Collapse(items []orderitem.LineItem) []event.CanonicalLineItem {
	result := make([]event.CanonicalLineItem, 0, len(items))
	seen := make(map[string]struct{})

	for _, item := range items {
		var canonical event.CanonicalLineItem

		if item.IsConfigurable() {
			simpleSKU := item.Options.SimpleSKU
			canonical = event.CanonicalLineItem{
				ID:           simpleSKU,
				Title:        item.Name,
				Options:      NormalizeOptions(item, true),
				Configurable: true,
			}
			if simpleSKU != "" {
				seen[simpleSKU] = struct{}{}
			}
		} else {
			if _, ok := seen[item.SKU]; ok {
				continue
			}
			canonical = event.CanonicalLineItem{
				ID:    item.SKU,
				Title: item.Name,
			}
		}

		if canonical.ID == "" {
			slog.Debug("Dropping line item without identifier",
				"item_id", item.ID,
				"product_type", item.ProductType,
			)

			continue
		}

		canonical.Qty = item.QtyOrdered.IntPart()
		canonical.URL = item.Product.URL
		canonical.Image = c.media.SmallImageURL(item.Product)
		canonical.Price = item.Price.InexactFloat64()
		if tags := c.tags.Tags(item.Product); len(tags) > 0 {
			canonical.Tags = append([]string(nil), tags...)
		}

		result = append(result, canonical)
	}

	return result
}
