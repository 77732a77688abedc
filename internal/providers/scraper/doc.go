// Package scraper parses fetched pages and extracts the SEO-relevant tags.
//
// Documents are decoded to UTF-8 (BOM, Content-Type, <meta> declaration,
// then saintfish/chardet as a last guess) and parsed once into a node
// tree shared by PuerkitoBio/goquery and antchfx/htmlquery.
package scraper
