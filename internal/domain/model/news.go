package model

import (
	"encoding/json"
	"strings"
)

// Text is a news field decoded from the gateway. It normalizes the two value
// encodings the list endpoint emits into one plain string:
//   - a JSON string: "Breaking News"
//   - a store-native wrapped string: {"S": "Breaking News"}
//
// Anything else (null, numbers, booleans, arrays, objects without a string S
// member, or a missing field) decodes to "".
type Text string

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text(DecodeText(data))
	return nil
}

// String returns the plain value.
func (t Text) String() string { return string(t) }

// DecodeText normalizes a raw JSON field value. See Text for accepted inputs.
func DecodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return ""
	}
	inner, ok := wrapped["S"]
	if !ok {
		return ""
	}
	if err := json.Unmarshal(inner, &s); err != nil {
		return ""
	}
	return s
}

// TextOf normalizes an already-decoded JSON value (as produced by decoding into any).
func TextOf(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val["S"].(string); ok {
			return s
		}
	}
	return ""
}

// NewsItem is a user-submitted news record as returned by the list endpoint.
// Items carry no identifier; callers key them by position.
type NewsItem struct {
	Title       Text `json:"title"`
	Description Text `json:"description"`
	Image       Text `json:"image"`
	FileName    Text `json:"fileName"`
	FileType    Text `json:"fileType"`
}

// NewsItemFromMap builds an item from a generic decoded JSON object.
func NewsItemFromMap(m map[string]any) NewsItem {
	return NewsItem{
		Title:       Text(TextOf(m["title"])),
		Description: Text(TextOf(m["description"])),
		Image:       Text(TextOf(m["image"])),
		FileName:    Text(TextOf(m["fileName"])),
		FileType:    Text(TextOf(m["fileType"])),
	}
}

// ImageSource resolves how the item's image should be displayed.
func (n NewsItem) ImageSource() ImageSource {
	return ResolveImage(string(n.Image), string(n.FileType))
}

// ImageKind classifies an item's image payload.
type ImageKind string

const (
	// ImageNone means no usable image; render a placeholder.
	ImageNone ImageKind = "none"
	// ImageRemote means the payload is an absolute URL.
	ImageRemote ImageKind = "remote"
	// ImageInline means the payload is raw base64 rendered as a data URI.
	ImageInline ImageKind = "inline"
)

// ImageSource is the resolved display form of a news image.
type ImageSource struct {
	Kind ImageKind
	Src  string
}

// ResolveImage distinguishes URL from base64 payloads by the "http" prefix,
// since the wire format has no discriminator. fileType is ignored for URLs.
func ResolveImage(image, fileType string) ImageSource {
	switch {
	case strings.HasPrefix(image, "http"):
		return ImageSource{Kind: ImageRemote, Src: image}
	case image != "" && fileType != "":
		return ImageSource{Kind: ImageInline, Src: "data:" + fileType + ";base64," + image}
	default:
		return ImageSource{Kind: ImageNone}
	}
}
