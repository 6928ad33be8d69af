// Package registry scrapes the Florida Sunbiz business registry.
//
// # Overview
//
// Sunbiz (https://search.sunbiz.org) exposes no API for name search, so
// this package fetches the public HTML results page and extracts matches
// from its markup.
//
// # Usage
//
//	client := registry.NewClient(registry.DefaultBaseURL)
//	matches, err := client.Search(ctx, "tesla")
//
// # Extraction
//
// [Extract] turns a results page into []Match using defensive selectors:
// a table-row primary strategy with a detail-link fallback. Extraction
// never fails; pages that don't look like results degrade to an empty
// slice. See Extract for the row rules.
//
// # Errors
//
// [Client.Search] distinguishes [ErrNetwork] (request never completed)
// from [*UpstreamError] (non-200 answer, status code attached). There are
// no retries; a failed fetch surfaces immediately.
package registry
