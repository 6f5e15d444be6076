package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// MediaKind identifies which shape a content store media field arrived in.
type MediaKind int

const (
	// MediaNone is a null or absent field.
	MediaNone MediaKind = iota
	// MediaExpandedAsset is {asset: {url, _ref?}}, the asset already dereferenced.
	MediaExpandedAsset
	// MediaInlineRef is {asset: {_ref}}; the URL must be built from the id.
	MediaInlineRef
	// MediaDirectRef is {_ref}.
	MediaDirectRef
	// MediaDirectURL is {url}.
	MediaDirectURL
	// MediaMalformed is an object carrying none of the known fields.
	MediaMalformed
)

func (k MediaKind) String() string {
	switch k {
	case MediaNone:
		return "none"
	case MediaExpandedAsset:
		return "expanded_asset"
	case MediaInlineRef:
		return "inline_ref"
	case MediaDirectRef:
		return "direct_ref"
	case MediaDirectURL:
		return "direct_url"
	case MediaMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("MediaKind(%d)", int(k))
	}
}

// MediaReference is an image or file reference from the content store,
// normalized to exactly one shape.
type MediaReference struct {
	Kind MediaKind
	URL  string // set for MediaExpandedAsset and MediaDirectURL
	Ref  string // set for MediaInlineRef and MediaDirectRef; optional on MediaExpandedAsset
	Type string // the store's _type tag, informational only
}

func ExpandedAsset(url, ref string) MediaReference {
	return MediaReference{Kind: MediaExpandedAsset, URL: url, Ref: ref}
}

func InlineRef(ref string) MediaReference {
	return MediaReference{Kind: MediaInlineRef, Ref: ref}
}

func DirectRef(ref string) MediaReference {
	return MediaReference{Kind: MediaDirectRef, Ref: ref}
}

func DirectURL(url string) MediaReference {
	return MediaReference{Kind: MediaDirectURL, URL: url}
}

// IsZero reports whether the reference is null.
func (m MediaReference) IsZero() bool {
	return m.Kind == MediaNone
}

// wireMedia is the union of every shape the content store emits.
type wireMedia struct {
	Type  string     `json:"_type,omitempty"`
	Asset *wireAsset `json:"asset,omitempty"`
	Ref   string     `json:"_ref,omitempty"`
	URL   string     `json:"url,omitempty"`
}

type wireAsset struct {
	Ref string `json:"_ref,omitempty"`
	URL string `json:"url,omitempty"`
}

// ParseMediaReference converts a raw JSON media field into a MediaReference.
// Shapes are tried in fixed precedence: asset.url, asset._ref, _ref, url.
// Values that are valid JSON but not a usable media object (a bare string, an
// array, a mistyped field) are MediaMalformed, not an error, so one bad field
// never fails the document around it. Only syntactically invalid JSON fails.
func ParseMediaReference(raw []byte) (MediaReference, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return MediaReference{}, nil
	}
	if !json.Valid(trimmed) {
		return MediaReference{}, errors.New("decode media reference: invalid JSON")
	}

	var w wireMedia
	if err := json.Unmarshal(trimmed, &w); err != nil {
		slog.Debug("undecodable media reference treated as malformed", "error", err)
		return MediaReference{Kind: MediaMalformed}, nil
	}

	ref := MediaReference{Type: w.Type}
	switch {
	case w.Asset != nil && w.Asset.URL != "":
		ref.Kind, ref.URL, ref.Ref = MediaExpandedAsset, w.Asset.URL, w.Asset.Ref
	case w.Asset != nil && w.Asset.Ref != "":
		ref.Kind, ref.Ref = MediaInlineRef, w.Asset.Ref
	case w.Ref != "":
		ref.Kind, ref.Ref = MediaDirectRef, w.Ref
	case w.URL != "":
		ref.Kind, ref.URL = MediaDirectURL, w.URL
	default:
		ref.Kind = MediaMalformed
	}
	return ref, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MediaReference) UnmarshalJSON(data []byte) error {
	ref, err := ParseMediaReference(data)
	if err != nil {
		return err
	}
	*m = ref
	return nil
}

// MarshalJSON writes the reference back in its content store shape.
func (m MediaReference) MarshalJSON() ([]byte, error) {
	w := wireMedia{Type: m.Type}
	switch m.Kind {
	case MediaNone:
		return []byte("null"), nil
	case MediaExpandedAsset:
		w.Asset = &wireAsset{URL: m.URL, Ref: m.Ref}
	case MediaInlineRef:
		w.Asset = &wireAsset{Ref: m.Ref}
	case MediaDirectRef:
		w.Ref = m.Ref
	case MediaDirectURL:
		w.URL = m.URL
	}
	return json.Marshal(w)
}
