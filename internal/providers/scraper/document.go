package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
	MaxHTMLSize = 10 * 1024 * 1024

	fallbackCharset = "utf-8"
)

var ErrHTMLTooLarge = fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)

// Document is one parsed page. Query and Root share the same node tree so
// CSS selectors and XPath expressions see identical content.
type Document struct {
	Root    *html.Node
	Query   *goquery.Document
	Charset string
}

// ValidateHTML checks HTML size. Empty documents are valid and simply
// yield no tags.
func ValidateHTML(data []byte) error {
	if len(data) > MaxHTMLSize {
		return ErrHTMLTooLarge
	}
	return nil
}

// DetectCharset guesses the charset of raw bytes
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil || result.Charset == "" {
		return fallbackCharset
	}
	return strings.ToLower(result.Charset)
}

// charsetLabel picks the encoding for data. A BOM, the Content-Type header,
// a <meta> declaration or valid UTF-8 win; otherwise chardet guesses.
func charsetLabel(data []byte, contentType string) string {
	_, name, certain := charset.DetermineEncoding(data, contentType)
	if certain || name != "windows-1252" {
		return name
	}
	return DetectCharset(data)
}

// LoadHTML decodes data to UTF-8 and parses it
func LoadHTML(data []byte, contentType string) (*Document, error) {
	if err := ValidateHTML(data); err != nil {
		return nil, err
	}

	label := charsetLabel(data, contentType)

	reader, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		// Unknown label, parse the bytes as they are
		label = fallbackCharset
		reader = bytes.NewReader(data)
	}

	root, err := htmlquery.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &Document{
		Root:    root,
		Query:   goquery.NewDocumentFromNode(root),
		Charset: label,
	}, nil
}

var ErrNilDocument = errors.New("nil document")
