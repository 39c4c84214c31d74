// Package imageurl builds CDN transform URLs from the opaque image references
// the backend stores. Each view bakes its own size/crop/quality preset.
package imageurl

import (
	"fmt"
	"net/url"
)

const transformBase = "https://images.weserv.nl/"

type preset struct {
	width   int
	height  int
	quality int
}

var (
	catalogCard = preset{width: 400, height: 300, quality: 75}
	detail      = preset{width: 800, height: 600, quality: 85}
	cartThumb   = preset{width: 120, height: 120, quality: 60}
	orderThumb  = preset{width: 96, height: 96, quality: 60}
)

func build(ref string, p preset) string {
	if ref == "" {
		return ""
	}
	v := url.Values{}
	v.Set("url", ref)
	v.Set("w", fmt.Sprint(p.width))
	v.Set("h", fmt.Sprint(p.height))
	v.Set("fit", "cover")
	v.Set("q", fmt.Sprint(p.quality))
	return transformBase + "?" + v.Encode()
}

func CatalogCard(ref string) string { return build(ref, catalogCard) }
func Detail(ref string) string      { return build(ref, detail) }
func CartThumb(ref string) string   { return build(ref, cartThumb) }
func OrderThumb(ref string) string  { return build(ref, orderThumb) }
