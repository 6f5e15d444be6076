package trust

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidAssetRef is returned by builders for ids outside the asset grammar.
var ErrInvalidAssetRef = errors.New("invalid asset reference")

// AssetURLBuilder turns an unexpanded content store asset id into a URL.
type AssetURLBuilder interface {
	ImageURL(ref string) (string, error)
	FileURL(ref string) (string, error)
}

var (
	// image-<id>-<width>x<height>-<ext>
	imageRefPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+x\d+)-([a-z0-9]+)$`)
	// file-<id>-<ext>
	fileRefPattern = regexp.MustCompile(`^file-([A-Za-z0-9]+)-([a-z0-9]+)$`)
)

// CDNBuilder builds asset URLs on the content store CDN:
//
//	image-abc-800x600-jpg -> https://<host>/images/<project>/<dataset>/abc-800x600.jpg
//	file-abc-pdf          -> https://<host>/files/<project>/<dataset>/abc.pdf
type CDNBuilder struct {
	Host      string
	ProjectID string
	Dataset   string
}

// NewCDNBuilder creates a builder for one project/dataset.
func NewCDNBuilder(host, projectID, dataset string) *CDNBuilder {
	return &CDNBuilder{Host: host, ProjectID: projectID, Dataset: dataset}
}

func (b *CDNBuilder) ImageURL(ref string) (string, error) {
	m := imageRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", fmt.Errorf("%w: %q is not an image id", ErrInvalidAssetRef, ref)
	}
	return fmt.Sprintf("https://%s/images/%s/%s/%s-%s.%s", b.Host, b.ProjectID, b.Dataset, m[1], m[2], m[3]), nil
}

func (b *CDNBuilder) FileURL(ref string) (string, error) {
	m := fileRefPattern.FindStringSubmatch(ref)
	if m == nil {
		return "", fmt.Errorf("%w: %q is not a file id", ErrInvalidAssetRef, ref)
	}
	return fmt.Sprintf("https://%s/files/%s/%s/%s.%s", b.Host, b.ProjectID, b.Dataset, m[1], m[2]), nil
}
