// Package domain contains the core entities of the crawl ingestion engine:
// folders and pages of the synchronised hierarchy, crawl configurations,
// document sections produced by the content pipeline, and the pure
// identifier functions that keep all of them stable across crawl passes.
//
// The package has no dependencies on adapters or external services.
package domain
