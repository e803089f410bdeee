package catalog

import (
	"strings"

	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
)

const (
	smallImagePath        = "/catalog/product/cache/small_image"
	smallImagePlaceholder = "/catalog/product/placeholder/small_image.jpg"
	noSelection           = "no_selection"
)

// MediaResolver builds product image URLs under a media base URL.
type MediaResolver struct {
	baseURL string
}

// NewMediaResolver creates a new MediaResolver.
func NewMediaResolver(baseURL string) *MediaResolver {
	return &MediaResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// SmallImageURL returns the small image URL of p, or the placeholder when
// the product has no image.
func (r *MediaResolver) SmallImageURL(p orderitem.Product) string {
	image := strings.TrimSpace(p.SmallImage)
	if image == "" || image == noSelection {
		return r.baseURL + smallImagePlaceholder
	}
	if !strings.HasPrefix(image, "/") {
		image = "/" + image
	}

	return r.baseURL + smallImagePath + image
}
