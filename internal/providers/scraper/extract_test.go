package scraper

import (
	"net/url"
	"testing"

	"github.com/GriffinCanCode/SeoInspect/backend/internal/domain/assets"
	"github.com/GriffinCanCode/SeoInspect/backend/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBase(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func mustDoc(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := LoadHTML([]byte(s), "text/html; charset=utf-8")
	require.NoError(t, err)
	return doc
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestMetaTags(t *testing.T) {
	t.Run("keeps name and property tags in order", func(t *testing.T) {
		doc := mustDoc(t, `<html><head>
			<meta charset="utf-8">
			<meta name="description" content="x">
			<meta http-equiv="refresh" content="30">
			<meta property="og:title" content="y">
		</head></html>`)

		tags := MetaTags(doc)
		require.Len(t, tags, 2)

		assert.Equal(t, "description", deref(tags[0].Name))
		assert.Nil(t, tags[0].Property)
		assert.Equal(t, "x", deref(tags[0].Content))

		assert.Nil(t, tags[1].Name)
		assert.Equal(t, "og:title", deref(tags[1].Property))
		assert.Equal(t, "y", deref(tags[1].Content))
	})

	t.Run("content may be absent", func(t *testing.T) {
		doc := mustDoc(t, `<meta name="robots">`)
		tags := MetaTags(doc)
		require.Len(t, tags, 1)
		assert.Nil(t, tags[0].Content)
	})

	t.Run("empty name and property are dropped", func(t *testing.T) {
		doc := mustDoc(t, `<meta name="" property="" content="z"><meta name="" property="og:x">`)
		tags := MetaTags(doc)
		require.Len(t, tags, 1)
		assert.Equal(t, "", deref(tags[0].Name))
		assert.Equal(t, "og:x", deref(tags[0].Property))
	})

	t.Run("no meta tags yields empty slice", func(t *testing.T) {
		tags := MetaTags(mustDoc(t, `<p>hello</p>`))
		assert.NotNil(t, tags)
		assert.Empty(t, tags)
	})
}

func TestFavicon(t *testing.T) {
	base := mustBase(t, "https://example.com/blog/post")

	tests := []struct {
		name    string
		html    string
		wantRef string
		wantURL string
	}{
		{
			name:    "icon link",
			html:    `<link rel="icon" href="/static/icon.png">`,
			wantRef: "/static/icon.png",
			wantURL: "https://example.com/static/icon.png",
		},
		{
			name:    "icon wins over shortcut icon",
			html:    `<link rel="shortcut icon" href="/old.ico"><link rel="icon" href="/new.svg">`,
			wantRef: "/new.svg",
			wantURL: "https://example.com/new.svg",
		},
		{
			name:    "shortcut icon fallback",
			html:    `<link rel="shortcut icon" href="img/fav.ico">`,
			wantRef: "img/fav.ico",
			wantURL: "https://example.com/blog/img/fav.ico",
		},
		{
			name:    "default location",
			html:    `<title>none</title>`,
			wantRef: DefaultFavicon,
			wantURL: "https://example.com/favicon.ico",
		},
		{
			name:    "icon without href falls through",
			html:    `<link rel="icon"><link rel="shortcut icon" href="/s.ico">`,
			wantRef: "/s.ico",
			wantURL: "https://example.com/s.ico",
		},
		{
			name:    "absolute icon stays absolute",
			html:    `<link rel="icon" href="https://cdn.example.net/i.png">`,
			wantRef: "https://cdn.example.net/i.png",
			wantURL: "https://cdn.example.net/i.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, tt.html)
			ref := FaviconRef(doc)
			assert.Equal(t, tt.wantRef, ref)
			assert.Equal(t, tt.wantURL, ResolveFavicon(base, ref))
		})
	}

	t.Run("unresolvable ref uses default location", func(t *testing.T) {
		assert.Equal(t, "https://example.com/favicon.ico", ResolveFavicon(base, "%zz"))
	})
}

func TestAuthor(t *testing.T) {
	tests := []struct {
		name string
		html string
		want *string
	}{
		{"name author", `<meta name="author" content="Ada">`, strPtr("Ada")},
		{"og author fallback", `<meta property="og:author" content="Grace">`, strPtr("Grace")},
		{"name wins", `<meta property="og:author" content="Grace"><meta name="author" content="Ada">`, strPtr("Ada")},
		{"empty content falls through", `<meta name="author" content=""><meta property="og:author" content="Grace">`, strPtr("Grace")},
		{"absent", `<meta name="description" content="x">`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Author(mustDoc(t, tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManifestHref(t *testing.T) {
	href, err := ManifestHref(mustDoc(t, `<link rel="manifest" href="/site.webmanifest">`))
	require.NoError(t, err)
	assert.Equal(t, "/site.webmanifest", href)

	href, err = ManifestHref(mustDoc(t, `<link rel="stylesheet" href="/a.css">`))
	require.NoError(t, err)
	assert.Empty(t, href)
}

func TestExtract(t *testing.T) {
	base := mustBase(t, "https://example.com/")
	doc := mustDoc(t, `<!DOCTYPE html>
<html>
<head>
	<link rel="icon" href="/icons/favicon.png">
	<link rel="stylesheet" href="/css/site.css">
	<link rel="stylesheet" href="https://fonts.example.net/font.css">
	<link rel="manifest" href="/manifest.json">
	<script src="/js/app.js"></script>
	<script src="http://cdn.example.net/lib.js"></script>
	<script>inline()</script>
	<meta name="author" content="Ada">
</head>
<body>
	<img src="/img/logo.png">
	<img src="/css/site.css">
	<img src="data:image/png;base64,AAAA">
	<img src="">
</body>
</html>`)

	tags, err := NewExtractor(nil).Extract(doc, base)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/icons/favicon.png", tags.Favicon)
	assert.Equal(t, "/manifest.json", tags.ManifestHref)
	assert.Equal(t, "Ada", deref(tags.Author))
	assert.Equal(t, []string{
		"/icons/favicon.png",
		"/css/site.css",
		"/manifest.json",
		"/js/app.js",
		"/img/logo.png",
	}, tags.Assets.Paths())
	assert.Equal(t, 3, tags.Assets.Skipped())
}

func TestExtractDefaultFaviconCollected(t *testing.T) {
	tags, err := NewExtractor(nil).Extract(mustDoc(t, `<img src="a/b.png">`), mustBase(t, "https://example.com/docs/"))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/favicon.ico", tags.Favicon)
	assert.Equal(t, []string{"/docs/a/b.png", "/favicon.ico"}, tags.Assets.Paths())
	assert.Empty(t, tags.ManifestHref)
	assert.Nil(t, tags.Author)
}

func TestExtractExcludes(t *testing.T) {
	doc := mustDoc(t, `<script src="/_next/static/chunk.js"></script><script src="/app.js"></script>`)
	tags, err := NewExtractor([]string{"_next/**"}).Extract(doc, mustBase(t, "https://example.com"))
	require.NoError(t, err)

	assert.Equal(t, []string{"/app.js", "/favicon.ico"}, tags.Assets.Paths())
}

func TestExtractEmptyDocument(t *testing.T) {
	tags, err := NewExtractor(nil).Extract(mustDoc(t, ""), mustBase(t, "https://example.com"))
	require.NoError(t, err)

	assert.Empty(t, tags.MetaTags)
	assert.Nil(t, tags.Author)
	assert.Equal(t, []string{"/favicon.ico"}, tags.Assets.Paths())

	tree := assets.BuildTree(tags.Assets.Paths())
	assert.Equal(t, []types.FolderNode{{Name: "favicon.ico", Type: types.NodeFile}}, tree)
}

func TestExtractNilDocument(t *testing.T) {
	_, err := NewExtractor(nil).Extract(nil, mustBase(t, "https://example.com"))
	assert.ErrorIs(t, err, ErrNilDocument)
}

func strPtr(s string) *string {
	return &s
}
