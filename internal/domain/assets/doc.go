// Package assets turns raw href/src attribute values into same-origin asset
// paths and groups those paths into a folder tree.
//
// Pipeline:
//   - Normalize: resolve one reference against the page URL, keep the path
//   - PathSet: deduplicate paths in first-seen order, drop excluded globs
//   - BuildTree: merge shared prefixes into directory nodes
//
// Example Usage:
//
//	set := assets.NewPathSet(nil)
//	set.AddReference(base, "/static/app.js")
//	tree := assets.BuildTree(set.Paths())
package assets
