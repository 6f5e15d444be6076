package trust

import (
	"errors"
	"fmt"
	"log/slog"

	"contentgate/internal/domain/models/content"
)

// ErrBuilderPanic wraps a panic raised inside an AssetURLBuilder.
var ErrBuilderPanic = errors.New("asset url builder panicked")

// ResolutionStatus is the outcome of resolving one media reference.
type ResolutionStatus int

const (
	// StatusEmpty: the reference was null; nothing to render.
	StatusEmpty ResolutionStatus = iota
	// StatusResolved: URL is set and passed validation.
	StatusResolved
	// StatusMalformed: the reference could not produce a candidate URL.
	StatusMalformed
	// StatusRejected: a candidate URL was produced but failed validation.
	StatusRejected
)

func (s ResolutionStatus) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusResolved:
		return "resolved"
	case StatusMalformed:
		return "malformed"
	case StatusRejected:
		return "rejected"
	default:
		return fmt.Sprintf("ResolutionStatus(%d)", int(s))
	}
}

// Resolution is the result of resolving a media reference.
type Resolution struct {
	Status ResolutionStatus
	Kind   content.MediaKind
	URL    string // only set when Status is StatusResolved
	Err    error  // builder failure behind a StatusMalformed, if any
}

// OK reports whether the resolution produced a usable URL.
func (r Resolution) OK() bool {
	return r.Status == StatusResolved
}

// AssetResolver derives validated image and file URLs from media references.
// It never panics into the caller and never substitutes a fallback asset.
type AssetResolver struct {
	validator *URLValidator
	builder   AssetURLBuilder
	logger    *slog.Logger
}

// NewAssetResolver creates a resolver.
func NewAssetResolver(validator *URLValidator, builder AssetURLBuilder, logger *slog.Logger) *AssetResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AssetResolver{
		validator: validator,
		builder:   builder,
		logger:    logger,
	}
}

// ImageURL returns a validated image URL, or false when the image must be omitted.
func (r *AssetResolver) ImageURL(ref content.MediaReference) (string, bool) {
	res := r.ResolveImage(ref)
	return res.URL, res.OK()
}

// FileURL returns a validated file URL, or false when the link must be omitted.
func (r *AssetResolver) FileURL(ref content.MediaReference) (string, bool) {
	res := r.ResolveFile(ref)
	return res.URL, res.OK()
}

// ResolveImage resolves ref against the image builder and image allow-list.
func (r *AssetResolver) ResolveImage(ref content.MediaReference) Resolution {
	return r.resolve(ref, "image", r.builder.ImageURL, r.validator.ValidateImageURL)
}

// ResolveFile resolves ref against the file builder and the file CDN host.
func (r *AssetResolver) ResolveFile(ref content.MediaReference) Resolution {
	return r.resolve(ref, "file", r.builder.FileURL, r.validator.ValidateFileURL)
}

func (r *AssetResolver) resolve(
	ref content.MediaReference,
	purpose string,
	build func(string) (string, error),
	validate func(string) (string, bool),
) Resolution {
	res := Resolution{Kind: ref.Kind}

	var candidate string
	switch ref.Kind {
	case content.MediaNone:
		res.Status = StatusEmpty
		return res
	case content.MediaExpandedAsset, content.MediaDirectURL:
		candidate = ref.URL
	case content.MediaInlineRef, content.MediaDirectRef:
		u, err := safeBuild(build, ref.Ref)
		if err != nil {
			r.logger.Warn("asset url builder failed",
				"purpose", purpose,
				"kind", ref.Kind.String(),
				"ref", ref.Ref,
				"error", err,
			)
			res.Status = StatusMalformed
			res.Err = err
			return res
		}
		candidate = u
	default:
		r.logger.Info("malformed media reference",
			"purpose", purpose,
			"kind", ref.Kind.String(),
			"type", ref.Type,
		)
		res.Status = StatusMalformed
		return res
	}

	validated, ok := validate(candidate)
	if !ok {
		res.Status = StatusRejected
		return res
	}
	res.Status = StatusResolved
	res.URL = validated
	return res
}

// safeBuild calls the builder, converting a panic into an error.
func safeBuild(build func(string) (string, error), ref string) (u string, err error) {
	defer func() {
		if p := recover(); p != nil {
			u = ""
			err = fmt.Errorf("%w: %v", ErrBuilderPanic, p)
		}
	}()
	return build(ref)
}
