package usvg

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// decodeImageHref decodes an <image> element's href: either a data: URI
// (the common case for embedded raster/SVG images) or left as an external
// reference path for the caller to load relative to a resources directory
//.
func decodeImageHref(href string) ([]byte, string, bool) {
	if strings.HasPrefix(href, "data:") {
		rest := href[len("data:"):]
		comma := strings.IndexByte(rest, ',')
		if comma < 0 {
			return nil, "", false
		}
		meta := rest[:comma]
		payload := rest[comma+1:]

		mime := meta
		if semi := strings.IndexByte(meta, ';'); semi >= 0 {
			mime = meta[:semi]
		}
		format := strings.TrimPrefix(mime, "image/")

		if strings.Contains(meta, "base64") {
			data, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				return nil, "", false
			}
			return data, format, true
		}
		decoded, err := url.QueryUnescape(payload)
		if err != nil {
			return nil, "", false
		}
		return []byte(decoded), format, true
	}
	// External file reference: left for the raster package to resolve
	// against Options.ResourcesDir; returning the path itself as "data"
	// with format "path" lets callers distinguish the two cases.
	return []byte(href), "path", true
}
