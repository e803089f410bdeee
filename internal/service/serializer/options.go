package serializer

import (
	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
)

// NormalizeOptions returns the option attributes of item, or nil when the
// item has none. With keepLabelValue the ordered label/value records are
// kept as is; otherwise they are collapsed into a label to value mapping
// where later labels overwrite earlier ones.
func NormalizeOptions(item orderitem.LineItem, keepLabelValue bool) *event.ItemOptions {
	attrs := item.Options.AttributesInfo
	if attrs == nil {
		return nil
	}

	if keepLabelValue {
		return event.NewVerboseOptions(attrs)
	}

	values := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		values[attr.Label] = attr.Value
	}

	return event.NewFlatOptions(values)
}
