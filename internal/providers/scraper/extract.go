package scraper

import (
	"fmt"
	"net/url"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/domain/assets"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/types"
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
)

// DefaultFavicon is used when the page declares no icon link
const DefaultFavicon = "/favicon.ico"

const (
	selIcon       = `link[rel="icon"]`
	selShortcut   = `link[rel="shortcut icon"]`
	xpathAuthor   = `//meta[@name="author"]`
	xpathOGAuthor = `//meta[@property="og:author"]`
	xpathManifest = `//link[@rel="manifest"]`
	attrContent   = "content"
	attrHref      = "href"
	attrSrc       = "src"
	attrName      = "name"
	attrProperty  = "property"
)

// assetSources lists the referencing elements in collection order
var assetSources = []struct {
	selector string
	attr     string
}{
	{"link[href]", attrHref},
	{"script[src]", attrSrc},
	{"img[src]", attrSrc},
}

// Tags is everything extracted from one page
type Tags struct {
	// Favicon is the absolute icon URL
	Favicon string
	// FaviconRef is the raw reference it was resolved from
	FaviconRef string
	MetaTags   []types.MetaTag
	Author     *string
	// ManifestHref is empty when the page links no manifest
	ManifestHref string
	Assets       *assets.PathSet
}

// Extractor pulls tags and asset references out of parsed pages
type Extractor struct {
	excludes []string
}

// NewExtractor creates an extractor. Asset paths matching any exclude
// pattern are left out of the collected set.
func NewExtractor(excludes []string) *Extractor {
	return &Extractor{excludes: excludes}
}

// Extract reads doc, resolving references against base
func (e *Extractor) Extract(doc *Document, base *url.URL) (*Tags, error) {
	if doc == nil || doc.Root == nil || doc.Query == nil {
		return nil, ErrNilDocument
	}

	author, err := Author(doc)
	if err != nil {
		return nil, err
	}
	manifestHref, err := ManifestHref(doc)
	if err != nil {
		return nil, err
	}

	faviconRef := FaviconRef(doc)
	tags := &Tags{
		Favicon:      ResolveFavicon(base, faviconRef),
		FaviconRef:   faviconRef,
		MetaTags:     MetaTags(doc),
		Author:       author,
		ManifestHref: manifestHref,
		Assets:       assets.NewPathSet(e.excludes),
	}

	for _, src := range assetSources {
		doc.Query.Find(src.selector).Each(func(_ int, s *goquery.Selection) {
			if ref := s.AttrOr(src.attr, ""); ref != "" {
				tags.Assets.AddReference(base, ref)
			}
		})
	}

	tags.Assets.AddReference(base, faviconRef)
	if manifestHref != "" {
		tags.Assets.AddReference(base, manifestHref)
	}

	return tags, nil
}

// FaviconRef returns the first icon href, then the first shortcut icon
// href, else DefaultFavicon
func FaviconRef(doc *Document) string {
	for _, sel := range []string{selIcon, selShortcut} {
		if href := doc.Query.Find(sel).First().AttrOr(attrHref, ""); href != "" {
			return href
		}
	}
	return DefaultFavicon
}

// ResolveFavicon makes ref absolute. An unresolvable ref falls back to the
// default icon location on base.
func ResolveFavicon(base *url.URL, ref string) string {
	if resolved, err := assets.Resolve(base, ref); err == nil {
		return resolved.String()
	}
	resolved, _ := assets.Resolve(base, DefaultFavicon)
	return resolved.String()
}

// MetaTags returns every meta element that has a name or property, in
// document order. Absent attributes stay nil.
func MetaTags(doc *Document) []types.MetaTag {
	tags := make([]types.MetaTag, 0)
	doc.Query.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, hasName := s.Attr(attrName)
		property, hasProperty := s.Attr(attrProperty)
		if name == "" && property == "" {
			return
		}

		tag := types.MetaTag{}
		if hasName {
			tag.Name = &name
		}
		if hasProperty {
			tag.Property = &property
		}
		if content, ok := s.Attr(attrContent); ok {
			tag.Content = &content
		}
		tags = append(tags, tag)
	})
	return tags
}

// Author returns the author meta content, then og:author, else nil
func Author(doc *Document) (*string, error) {
	for _, expr := range []string{xpathAuthor, xpathOGAuthor} {
		n, err := htmlquery.Query(doc.Root, expr)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", expr, err)
		}
		if n == nil {
			continue
		}
		if content := htmlquery.SelectAttr(n, attrContent); content != "" {
			return &content, nil
		}
	}
	return nil, nil
}

// ManifestHref returns the href of the first manifest link
func ManifestHref(doc *Document) (string, error) {
	n, err := htmlquery.Query(doc.Root, xpathManifest)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", xpathManifest, err)
	}
	if n == nil {
		return "", nil
	}
	return htmlquery.SelectAttr(n, attrHref), nil
}
