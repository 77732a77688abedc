// Package types provides shared data structures for the SEO inspector backend.
//
// Core Types:
//   - ScanResult: Complete output of one scan
//   - MetaTag: One <meta> element carrying a name or property
//   - FolderNode: Directory/file node of the synthesized asset tree
//   - Manifest: Raw Web App Manifest document, absent when unavailable
//
// Request Types:
//   - ScanRequest: Body of the scan endpoint
//   - GenerateRequest: Body of the head snippet generator endpoint
//   - ErrorResponse: Error body returned by every endpoint
//
// Example Usage:
//
//	result := &types.ScanResult{
//	    Favicon:    "https://example.com/favicon.ico",
//	    MetaTags:   []types.MetaTag{},
//	    FolderTree: []types.FolderNode{},
//	}
package types
