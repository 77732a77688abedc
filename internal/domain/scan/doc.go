// Package scan runs the inspection pipeline for one URL.
//
// A scan fetches the page, parses it, extracts favicon, meta tags, author
// and asset references, loads the linked manifest and builds the asset
// folder tree. Only a missing URL or a failed page fetch abort a scan with
// a user-facing error; manifest and reference failures are absorbed.
//
// Example Usage:
//
//	svc := scan.NewService(scan.Deps{Pages: httpClient, Logger: logger})
//	result, err := svc.Scan(ctx, "https://example.com")
//	if err != nil {
//		log.Println(scan.KindOf(err).Message())
//	}
package scan
