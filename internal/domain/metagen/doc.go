// Package metagen renders the SEO <head> block (title, description,
// robots, Open Graph, Twitter card and icon links) for a site. Inputs are
// reduced to plain text with microcosm-cc/bluemonday before rendering.
package metagen
