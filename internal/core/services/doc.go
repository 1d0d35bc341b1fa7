// Package services implements the crawl ingestion engine: the content
// pipeline, hierarchy and ancestry resolution, the permission tree
// projection, and the connector lifecycle manager. Services depend only on
// the driven ports; adapters are injected at construction.
package services
