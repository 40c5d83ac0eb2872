// Package vision talks to the external vision model that reads clothing tags.
package vision

import (
	"context"
	"strings"
)

// DefaultMediaType is assumed when an upload carries no data-URL header.
const DefaultMediaType = "image/jpeg"

// TagPrompt is the fixed instruction sent with every tag image.
const TagPrompt = "This is a clothing tag label. Please extract ONLY these three pieces of information in this exact format:\n\n" +
	"Style Number: [first line - the style/item number]\n" +
	"Description: [second line - the product description]\n" +
	"PO Number: [last line - the PO/order number]\n\n" +
	"Be precise and extract exactly what you see on the tag."

// Image is a base64-encoded image payload.
type Image struct {
	MediaType string
	Data      string
}

// Extractor returns the model's raw answer for an image, unparsed.
type Extractor interface {
	Extract(ctx context.Context, img Image) (string, error)
}

// SplitDataURL strips an optional "data:<type>;base64," header.
// It returns the bare payload and the media type named in the header,
// or DefaultMediaType when there is none.
func SplitDataURL(s string) (data, mediaType string) {
	s = strings.TrimSpace(s)
	header, payload, found := strings.Cut(s, ",")
	if !found {
		return s, DefaultMediaType
	}

	mediaType = DefaultMediaType
	if rest, ok := strings.CutPrefix(header, "data:"); ok {
		mt, _, _ := strings.Cut(rest, ";")
		if mt = strings.TrimSpace(mt); strings.HasPrefix(mt, "image/") {
			mediaType = mt
		}
	}
	return payload, mediaType
}
