// Package driving defines the interfaces the core exposes to callers:
// connector lifecycle management, per-node crawl reconciliation, ancestry
// resolution, and the permission tree projection.
package driving
